// SPDX-License-Identifier: EPL-2.0

package audcue

import "errors"

var (
	// ErrNoEngine is returned by Update when an Output has neither an engine
	// nor a factory to build one.
	ErrNoEngine = errors.New("audcue: no audio engine configured")

	// ErrEngineInit wraps the factory error of a lazy Output. It is sticky:
	// every later Update returns it too.
	ErrEngineInit = errors.New("audcue: audio engine initialization failed")
)
