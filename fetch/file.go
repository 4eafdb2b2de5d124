// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File reads sources from the local file system. A "file://" prefix is
// accepted. Relative paths resolve against Root when it is set.
type File struct {
	Root    string
	MaxSize int64
}

func (f File) Fetch(ctx context.Context, source string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimPrefix(source, "file://")
	if name == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidSource)
	}
	if f.Root != "" && !filepath.IsAbs(name) {
		name = filepath.Join(f.Root, name)
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer file.Close()

	return readLimited(file, f.MaxSize)
}
