// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Mux dispatches to a fetcher by the source's URL scheme. Sources with no
// scheme, or a single-letter one such as a Windows drive, go to "file".
type Mux struct {
	mu       sync.RWMutex
	handlers map[string]Fetcher
}

func NewMux() *Mux {
	return &Mux{handlers: make(map[string]Fetcher)}
}

// Default returns a Mux serving file, http and https sources.
func Default() *Mux {
	m := NewMux()
	m.Handle("file", File{})

	h := HTTP{}
	m.Handle("http", h)
	m.Handle("https", h)

	return m
}

func (m *Mux) Handle(scheme string, f Fetcher) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[strings.ToLower(scheme)] = f
}

func (m *Mux) Fetch(ctx context.Context, source string) ([]byte, error) {
	scheme := Scheme(source)

	m.mu.RLock()
	f, ok := m.handlers[scheme]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}

	return f.Fetch(ctx, source)
}

// Scheme returns the lower-cased scheme of source, "file" when it has none.
func Scheme(source string) string {
	i := strings.Index(source, "://")
	if i <= 1 {
		return "file"
	}

	scheme := source[:i]
	for _, r := range scheme {
		if !isSchemeChar(r) {
			return "file"
		}
	}

	return strings.ToLower(scheme)
}

func isSchemeChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'
}
