// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/aural/audio"
	"github.com/ik5/aural/utils"
)

const chunkSize = 8192

// WriteWAV16 writes interleaved 16-bit PCM samples as a canonical WAV file.
// Unlike go-audio's encoder it only needs an io.Writer, so it can stream to
// pipes and network connections.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if err := writeHeader(w, sampleRate, channels, len(samples)); err != nil {
		return err
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// WriteBuffer encodes a decoded buffer as 16-bit PCM WAV.
func WriteBuffer(w io.Writer, b *audio.Buffer) error {
	if err := writeHeader(w, b.SampleRate, b.Channels, len(b.Data)); err != nil {
		return err
	}

	buf := make([]byte, min(len(b.Data), chunkSize)*2)

	for i := 0; i < len(b.Data); i += chunkSize {
		chunk := b.Data[i:min(i+chunkSize, len(b.Data))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(utils.Float32ToInt16(s)))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

func writeHeader(w io.Writer, sampleRate, channels, samples int) error {
	const bitsPerSample = 16

	blockAlign := uint16(channels * bitsPerSample / 8)
	dataSize := uint32(samples * 2)

	header := make([]byte, 44)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate)*uint32(blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
