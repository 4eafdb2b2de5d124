// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrUnsupportedBitDepth indicates a sample size above 32 bits or zero
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")

	// ErrInvalidStream indicates stream info with no channels or rate
	ErrInvalidStream = errors.New("invalid FLAC stream info")
)
