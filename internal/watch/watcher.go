package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"imgview/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change reports that image files in the watched directory appeared,
// vanished or were rewritten. Events arriving within the debounce window are
// folded into one Change.
type Change struct {
	Dir       string
	Paths     []string
	Timestamp time.Time
}

// Watcher follows a single directory using fsnotify
type Watcher struct {
	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Reports whether a file name is interesting; nil accepts everything
	filter func(name string) bool

	// Quiet period before pending events are delivered
	debounce time.Duration

	// Channel to deliver batched changes
	changes chan Change

	// Channel to signal stop, and the loop's exit notification
	stopChan chan struct{}
	done     chan struct{}

	// Lock for running state and the watched directory
	mutex sync.RWMutex

	dir     string
	running bool
	closed  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithFilter only reports files whose base name satisfies fn.
func WithFilter(fn func(name string) bool) Option {
	return func(w *Watcher) {
		w.filter = fn
	}
}

// WithDebounce sets the quiet period. Zero delivers every event on its own.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a new directory watcher using fsnotify
func New(opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		debounce:  250 * time.Millisecond,
		changes:   make(chan Change, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// SetDirectory makes dir the only watched directory. Passing the current
// directory again is a no-op.
func (w *Watcher) SetDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.dir == dir {
		return nil
	}
	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			log.LogWithFields(log.F("directory", w.dir), log.F("error", err.Error())).Debug("failed to remove watch")
		}
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		w.dir = ""
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	w.dir = dir
	log.LogWithFields(log.F("directory", dir)).Debug("watching directory")
	return nil
}

// Directory returns the watched directory, or "".
func (w *Watcher) Directory() string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.dir
}

// Changes returns the channel that delivers batched changes. It is closed by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins the file watching process using fsnotify
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return fmt.Errorf("watcher stopped")
	}
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop(w.stopChan, w.done)
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	flush := func() {
		fire = nil
		if len(pending) == 0 {
			return
		}
		dir := w.Directory()
		paths := make([]string, 0, len(pending))
		for p := range pending {
			if filepath.Dir(p) == dir {
				paths = append(paths, p)
			}
		}
		clear(pending)
		if len(paths) == 0 {
			return
		}
		w.deliver(Change{Dir: dir, Paths: paths, Timestamp: time.Now()})
	}

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			pending[event.Name] = struct{}{}
			if w.debounce == 0 {
				flush()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			flush()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err.Error())).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

// deliver queues change. A change still waiting for the consumer absorbs the
// new paths when both name the same directory and is replaced otherwise.
// Only the loop goroutine sends, so the second send cannot block.
func (w *Watcher) deliver(change Change) {
	select {
	case queued := <-w.changes:
		if queued.Dir == change.Dir {
			change.Paths = mergePaths(queued.Paths, change.Paths)
		}
		log.LogWithFields(log.F("directory", change.Dir), log.F("files", len(change.Paths))).Debug("change already pending, coalescing")
	default:
	}
	sort.Strings(change.Paths)
	select {
	case w.changes <- change:
	default:
	}
}

func mergePaths(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, p := range list {
			if _, dup := seen[p]; !dup {
				seen[p] = struct{}{}
				out = append(out, p)
			}
		}
	}
	return out
}

// relevant keeps create, remove, rename and write events for filtered files
// directly inside the watched directory.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Remove) &&
		!event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Write) {
		return false
	}
	if filepath.Dir(event.Name) != w.Directory() {
		return false
	}
	if w.filter != nil && !w.filter(filepath.Base(event.Name)) {
		return false
	}
	if event.Op.Has(fsnotify.Create) {
		// New subdirectories never hold listed images.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			return false
		}
	}
	return true
}

// Stop halts the file watching process, releases the fsnotify watcher and
// closes the Changes channel. A stopped watcher cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return
	}
	w.closed = true
	wasRunning := w.running
	w.running = false
	if wasRunning {
		close(w.stopChan)
	}
	done := w.done
	w.mutex.Unlock()

	if wasRunning {
		<-done
	}

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err.Error())).Error("Error closing fsnotify watcher")
	}
	close(w.changes)
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
