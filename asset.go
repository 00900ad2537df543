// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"path/filepath"

	"github.com/ik5/audcue/audio"
)

// AssetRef identifies an audio asset by its cleaned, slash-separated path.
// Two refs are the same asset iff they compare equal.
type AssetRef struct {
	path string
}

func NewAssetRef(path string) AssetRef {
	return AssetRef{path: filepath.ToSlash(filepath.Clean(path))}
}

func (r AssetRef) Path() string   { return r.path }
func (r AssetRef) String() string { return r.path }
func (r AssetRef) IsZero() bool   { return r.path == "" }

// Resolver is the asset-loading collaborator. Resolve reports false while the
// asset is not ready yet.
type Resolver interface {
	Resolve(ref AssetRef) (*audio.Clip, bool)
}

// FailureReporter is implemented by resolvers that can tell "not loaded yet"
// apart from "will never load". Err returns nil unless loading ref failed.
type FailureReporter interface {
	Err(ref AssetRef) error
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ref AssetRef) (*audio.Clip, bool)

func (f ResolverFunc) Resolve(ref AssetRef) (*audio.Clip, bool) { return f(ref) }
