package watch

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

type Option func(*FileWatcher)

func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(w *FileWatcher) {
		if log != nil {
			w.log = log
		}
	}
}

// FileWatcher reports changes to a set of files. It watches their parent
// directories so files replaced by rename, or created later, are still seen.
// Bursts of events collapse into one notification per debounce window.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	dirs     map[string]bool
	onChange chan struct{}
	mu       sync.Mutex
	timer    *time.Timer
	done     chan struct{}
	debounce time.Duration
	log      *slog.Logger
}

func NewFileWatcher(opts ...Option) (*FileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &FileWatcher{
		watcher:  fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		onChange: make(chan struct{}, 1),
		done:     make(chan struct{}),
		debounce: DefaultDebounce,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *FileWatcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if w.files[absPath] {
		return nil
	}

	dir := filepath.Dir(absPath)
	if !w.dirs[dir] {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	w.files[absPath] = true
	return nil
}

func (w *FileWatcher) Start() <-chan struct{} {
	go w.run()
	return w.onChange
}

func (w *FileWatcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			w.mu.Lock()
			watched := w.files[filepath.Clean(event.Name)]
			w.mu.Unlock()

			if watched {
				w.log.Debug("file changed", "path", event.Name, "op", event.Op.String())
				w.trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *FileWatcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.onChange <- struct{}{}:
		default:
		}
	})
}

func (w *FileWatcher) Close() error {
	close(w.done)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
