package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// Watcher reports changes to configuration and script files.
//
// Files are watched through their parent directory so that editors that
// save by renaming are seen. A watched directory reports changes to the
// .lua files inside it.
type Watcher struct {
	mu sync.Mutex

	fsw      *fsnotify.Watcher
	files    map[string]bool
	dirs     map[string]bool
	debounce time.Duration
	closed   bool
}

// NewWatcher creates a watcher for the given files and directories.
// Paths that do not exist are skipped.
func NewWatcher(paths []string, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	for _, p := range paths {
		if err := w.add(p); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	if path == "" {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return err
	case info.IsDir():
		w.dirs[abs] = true
		return w.fsw.Add(abs)
	default:
		w.files[abs] = true
		return w.fsw.Add(filepath.Dir(abs))
	}
}

// Watched returns the watched files and directories, sorted.
func (w *Watcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files)+len(w.dirs))
	for p := range w.files {
		out = append(out, p)
	}
	for p := range w.dirs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// matches returns true if an event on name concerns a watched path.
func (w *Watcher) matches(name string) bool {
	if w.files[name] {
		return true
	}
	return w.dirs[filepath.Dir(name)] && filepath.Ext(name) == ".lua"
}

// Run delivers changed paths to onChange after the debounce interval
// until ctx is done or the watcher is closed. onErr, when set, receives
// watch errors. Run returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, onChange func(path string), onErr func(error)) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.mu.Unlock()

	pending := make(map[string]bool)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	flush := func() {
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		clear(pending)
		for _, p := range paths {
			onChange(p)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			w.mu.Lock()
			hit := w.matches(ev.Name)
			w.mu.Unlock()
			if !hit {
				continue
			}
			pending[ev.Name] = true
			if w.debounce == 0 {
				flush()
				continue
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			flush()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if onErr != nil {
				onErr(err)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsw.Close()
}
