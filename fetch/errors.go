// SPDX-License-Identifier: EPL-2.0

package fetch

import "errors"

var (
	// ErrUnsupportedScheme is returned by Mux for a scheme with no fetcher
	ErrUnsupportedScheme = errors.New("unsupported source scheme")

	// ErrInvalidSource indicates a source string that cannot be parsed
	ErrInvalidSource = errors.New("invalid source")

	// ErrStatus is returned for a non-2xx HTTP response
	ErrStatus = errors.New("unexpected response status")

	// ErrTooLarge is returned when a payload exceeds the size limit
	ErrTooLarge = errors.New("source exceeds size limit")
)
