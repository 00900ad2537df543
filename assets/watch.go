// SPDX-License-Identifier: EPL-2.0

package assets

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before it is reloaded.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads assets whose files change below the server root. Only
// assets that were requested and are not loaded yet are reloaded; a clip
// already handed to an Output stays cached there.
type Watcher struct {
	srv      *Server
	watcher  *fsnotify.Watcher
	debounce time.Duration

	// Errors carries watcher failures. It is closed by Close.
	Errors chan error

	mtx     sync.Mutex
	pending map[string]*time.Timer

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the root directory tree. Directories created later
// are watched as they appear.
func (s *Server) Watch() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		srv:      s,
		watcher:  w,
		debounce: DefaultDebounce,
		Errors:   make(chan error, 1),
		pending:  make(map[string]*time.Timer),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done

		w.mtx.Lock()
		for name, t := range w.pending {
			t.Stop()
			delete(w.pending, name)
		}
		w.mtx.Unlock()
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				w.srv.logger.Warn("asset watcher error dropped", "err", err)
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.srv.logger.Warn("asset watcher add failed", "dir", event.Name, "err", err)
			}
			return
		}
	}

	if _, err := w.srv.registry.Lookup(event.Name); err != nil {
		return
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()

	if t, ok := w.pending[event.Name]; ok {
		t.Reset(w.debounce)
		return
	}
	name := event.Name
	w.pending[name] = time.AfterFunc(w.debounce, func() { w.fire(name) })
}

func (w *Watcher) fire(name string) {
	w.mtx.Lock()
	delete(w.pending, name)
	w.mtx.Unlock()

	select {
	case <-w.closeCh:
		return
	default:
	}

	ref, ok := w.srv.ref(name)
	if !ok || !w.srv.Known(ref) {
		return
	}
	if w.srv.Reload(ref) {
		w.srv.logger.Info("asset reload", "asset", ref.String())
	}
}
