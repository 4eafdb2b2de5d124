// SPDX-License-Identifier: EPL-2.0

package aural

import "errors"

var (
	// ErrUnknownKey is returned by keyed operations on a key that was never
	// loaded or has been removed
	ErrUnknownKey = errors.New("unknown clip key")

	// ErrInvalidRate indicates a negative or NaN playback rate
	ErrInvalidRate = errors.New("invalid playback rate")

	// ErrInvalidVolume indicates a negative or NaN volume
	ErrInvalidVolume = errors.New("invalid volume")

	// ErrFetch wraps failures to retrieve a clip's bytes
	ErrFetch = errors.New("fetching clip")

	// ErrDecode wraps failures to decode a clip
	ErrDecode = errors.New("decoding clip")

	// ErrUnsupportedFormat indicates no registered decoder matches a clip
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrClosed is returned after Close
	ErrClosed = errors.New("registry closed")

	// ErrInvalidManifest indicates a manifest entry without key or source,
	// or a key listed twice
	ErrInvalidManifest = errors.New("invalid manifest")
)
