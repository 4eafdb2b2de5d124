// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	// ErrAlreadyStarted is returned when Start is called twice on a source
	ErrAlreadyStarted = errors.New("source already started")

	// ErrNotStarted is returned when stopping a source that never started
	ErrNotStarted = errors.New("source not started")

	// ErrAlreadyStopped is returned when Stop is called twice on a source
	ErrAlreadyStopped = errors.New("source already stopped")

	// ErrContextClosed is returned by operations on a closed Context
	ErrContextClosed = errors.New("audio context closed")

	// ErrInvalidConfig indicates a non-positive rate or channel count, or a
	// buffer whose layout does not match the context
	ErrInvalidConfig = errors.New("invalid audio configuration")
)
