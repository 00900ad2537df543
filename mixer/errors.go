// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrUnknownSound    = errors.New("mixer: unknown sound")
	ErrUnknownUnit     = errors.New("mixer: unknown unit")
	ErrUnknownInstance = errors.New("mixer: unknown instance")

	// ErrInvalidValue indicates a non-finite value, a volume below zero,
	// a panning outside [0,1] or a playback rate that is not positive.
	ErrInvalidValue = errors.New("mixer: invalid value")

	ErrClosed = errors.New("mixer: closed")
)
