// SPDX-License-Identifier: EPL-2.0

package assets

import "errors"

var (
	// ErrEmptyPath is recorded for Load("").
	ErrEmptyPath = errors.New("assets: empty path")

	// ErrClosed is recorded for loads requested after Close.
	ErrClosed = errors.New("assets: server closed")
)
