// SPDX-License-Identifier: EPL-2.0

package assets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ik5/audcue"
	"github.com/ik5/audcue/audio"
)

type state int

const (
	stateLoading state = iota
	stateReady
	stateFailed
)

type entry struct {
	state state
	clip  *audio.Clip
	err   error
}

// Server is an asynchronous asset store. It is safe for concurrent use.
type Server struct {
	root     string
	rate     int
	registry *audio.Registry
	logger   *slog.Logger

	mtx     sync.RWMutex
	entries map[audcue.AssetRef]*entry
	closed  bool
	wg      sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithRoot sets the directory asset paths are relative to.
func WithRoot(dir string) Option {
	return func(s *Server) { s.root = dir }
}

// WithSampleRate makes the server prepare every clip as stereo at rate.
// Zero keeps clips in their source layout.
func WithSampleRate(rate int) Option {
	return func(s *Server) { s.rate = rate }
}

func WithRegistry(reg *audio.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer returns a server with an empty registry unless WithRegistry is
// given.
func NewServer(opts ...Option) *Server {
	s := &Server{
		root:     ".",
		registry: audio.NewRegistry(),
		logger:   slog.Default(),
		entries:  make(map[audcue.AssetRef]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root is the directory asset paths are resolved against.
func (s *Server) Root() string { return s.root }

// Load starts loading path, relative to the root, and returns its ref.
// Loading an asset that is already known is a no-op.
func (s *Server) Load(path string) audcue.AssetRef {
	ref := audcue.NewAssetRef(path)

	s.mtx.Lock()
	if path == "" {
		s.entries[ref] = &entry{state: stateFailed, err: ErrEmptyPath}
		s.mtx.Unlock()
		return ref
	}
	if _, ok := s.entries[ref]; ok {
		s.mtx.Unlock()
		return ref
	}
	s.startLocked(ref)
	s.mtx.Unlock()

	return ref
}

// Reload loads ref again unless it is already loaded or loading. It reports
// whether a load was started.
func (s *Server) Reload(ref audcue.AssetRef) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	e, ok := s.entries[ref]
	if ok && e.state != stateFailed {
		return false
	}
	s.startLocked(ref)
	return true
}

func (s *Server) startLocked(ref audcue.AssetRef) {
	if s.closed {
		s.entries[ref] = &entry{state: stateFailed, err: ErrClosed}
		return
	}

	pending := &entry{state: stateLoading}
	s.entries[ref] = pending
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		clip, err := s.decode(ref)
		s.record(ref, pending, clip, err)
	}()
}

func (s *Server) decode(ref audcue.AssetRef) (*audio.Clip, error) {
	path := s.file(ref)

	dec, err := s.registry.Lookup(path)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", ref, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", ref, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", ref, err)
	}

	clip, err := audio.ReadClip(src)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", ref, err)
	}

	if s.rate > 0 {
		clip, err = clip.Prepare(s.rate)
		if err != nil {
			return nil, fmt.Errorf("assets: prepare %s: %w", ref, err)
		}
	}
	return clip, nil
}

// record stores the result of the load that created pending. A result whose
// entry was replaced meanwhile (by Insert) is discarded.
func (s *Server) record(ref audcue.AssetRef, pending *entry, clip *audio.Clip, err error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.entries[ref] != pending {
		s.logger.Debug("asset load superseded", "asset", ref.String())
		return
	}
	if err != nil {
		s.entries[ref] = &entry{state: stateFailed, err: err}
		s.logger.Warn("asset load failed", "asset", ref.String(), "err", err)
		return
	}
	s.entries[ref] = &entry{state: stateReady, clip: clip}
	s.logger.Debug("asset loaded", "asset", ref.String(),
		"frames", clip.Frames(), "duration", clip.Duration())
}

// Insert stores an already decoded clip under path, replacing any entry.
func (s *Server) Insert(path string, clip *audio.Clip) (audcue.AssetRef, error) {
	ref := audcue.NewAssetRef(path)
	if path == "" {
		return ref, ErrEmptyPath
	}
	if clip == nil || clip.Frames() == 0 {
		return ref, audio.ErrEmptyClip
	}

	if s.rate > 0 {
		var err error
		if clip, err = clip.Prepare(s.rate); err != nil {
			return ref, err
		}
	}

	s.mtx.Lock()
	s.entries[ref] = &entry{state: stateReady, clip: clip}
	s.mtx.Unlock()
	return ref, nil
}

// Resolve implements audcue.Resolver.
func (s *Server) Resolve(ref audcue.AssetRef) (*audio.Clip, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	e, ok := s.entries[ref]
	if !ok || e.state != stateReady {
		return nil, false
	}
	return e.clip, true
}

// Err implements audcue.FailureReporter.
func (s *Server) Err(ref audcue.AssetRef) error {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if e, ok := s.entries[ref]; ok {
		return e.err
	}
	return nil
}

// Known reports whether ref was ever requested or inserted.
func (s *Server) Known(ref audcue.AssetRef) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	_, ok := s.entries[ref]
	return ok
}

// Wait blocks until every load started so far has finished.
func (s *Server) Wait() { s.wg.Wait() }

// Close rejects new loads and waits for pending ones.
func (s *Server) Close() error {
	s.mtx.Lock()
	s.closed = true
	s.mtx.Unlock()

	s.wg.Wait()
	return nil
}

func (s *Server) file(ref audcue.AssetRef) string {
	return filepath.Join(s.root, filepath.FromSlash(ref.Path()))
}

// ref maps a file system path below the root back to its asset ref.
func (s *Server) ref(name string) (audcue.AssetRef, bool) {
	rel, err := filepath.Rel(s.root, name)
	if err != nil || !filepath.IsLocal(rel) {
		return audcue.AssetRef{}, false
	}
	return audcue.NewAssetRef(rel), true
}
