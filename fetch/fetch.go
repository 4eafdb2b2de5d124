// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"context"
	"fmt"
	"io"
)

// DefaultMaxSize caps a single fetched payload.
const DefaultMaxSize int64 = 64 << 20

// Fetcher retrieves the encoded bytes of a clip.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// Func adapts a plain function to Fetcher.
type Func func(ctx context.Context, source string) ([]byte, error)

func (f Func) Fetch(ctx context.Context, source string) ([]byte, error) {
	return f(ctx, source)
}

// readLimited reads r fully, failing with ErrTooLarge once more than limit
// bytes arrive. A non-positive limit means DefaultMaxSize.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxSize
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}

	return data, nil
}
