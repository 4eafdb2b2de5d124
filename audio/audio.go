// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
// Formats can also be resolved from a file extension or the first bytes of
// the encoded stream, see Detect.
type Registry struct {
	codecs     map[string]Decoder
	extensions map[string]string

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:     make(map[string]Decoder),
		extensions: make(map[string]string),
		mtx:        &sync.RWMutex{},
	}
}

// Register adds d under format. Extra arguments are file extensions (with or
// without the leading dot) that resolve to format; the format name itself is
// always treated as an extension.
func (r *Registry) Register(format string, d Decoder, exts ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
	r.extensions[normalizeExt(format)] = format

	for _, ext := range exts {
		r.extensions[normalizeExt(ext)] = format
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats lists the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	formats := make([]string, 0, len(r.codecs))
	for format := range r.codecs {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	return formats
}

// Detect picks a decoder for an encoded stream. The extension of name is
// consulted first, then the magic bytes in header. It returns the format key
// together with the decoder.
func (r *Registry) Detect(name string, header []byte) (string, Decoder, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	if ext := normalizeExt(path.Ext(stripQuery(name))); ext != "" {
		if format, ok := r.extensions[ext]; ok {
			if d, ok := r.codecs[format]; ok {
				return format, d, nil
			}
		}
	}

	if format := Sniff(header); format != "" {
		if d, ok := r.codecs[format]; ok {
			return format, d, nil
		}
	}

	return "", nil, ErrUnknownFormat
}

// Decode picks a decoder for data like Detect and decodes it. When the
// decoder chosen by the extension of name rejects the stream, the format
// sniffed from the content is tried before giving up, so misnamed files
// still play. Detection failures wrap ErrUnknownFormat.
func (r *Registry) Decode(name string, data []byte) (string, Source, error) {
	header := data[:min(len(data), SniffLen)]

	format, d, err := r.Detect(name, header)
	if err != nil {
		return "", nil, err
	}

	src, err := d.Decode(bytes.NewReader(data))
	if err == nil {
		return format, src, nil
	}

	if sniffed := Sniff(header); sniffed != "" && sniffed != format {
		if alt, ok := r.Get(sniffed); ok && alt != nil {
			if src, altErr := alt.Decode(bytes.NewReader(data)); altErr == nil {
				return sniffed, src, nil
			}
		}
	}

	return format, nil, fmt.Errorf("decoding as %s: %w", format, err)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func stripQuery(name string) string {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		return name[:i]
	}
	return name
}
