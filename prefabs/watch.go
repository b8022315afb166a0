package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeKind says what sort of prefab file changed.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

// Change is one debounced edit of a watched file.
type Change struct {
	Path string
	Kind ChangeKind
}

// Name returns the changed file's base name, as used by Load.
func (c Change) Name() string {
	return filepath.Base(c.Path)
}

const debounce = 100 * time.Millisecond

// WatchDirs lists the directories a hot-reloading host should watch.
func WatchDirs() []string {
	return []string{Dir, filepath.Join(Dir, ScriptsDir)}
}

// Watcher reports edits to prefab specs and scripts on disk. Events are
// buffered; the frame loop drains them with Drain.
type Watcher struct {
	watcher *fsnotify.Watcher
	log     *zap.Logger
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	done    sync.WaitGroup
}

func NewWatcher(log *zap.Logger, dirs ...string) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		log:     log,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	watcher.done.Add(1)
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.done.Wait()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// Drain returns the changes queued since the last call without blocking.
// Watch errors are logged and dropped.
func (w *Watcher) Drain() []Change {
	if w == nil {
		return nil
	}
	var out []Change
	for {
		select {
		case c, ok := <-w.Events:
			if !ok {
				return out
			}
			out = append(out, c)
		case err, ok := <-w.Errors:
			if ok {
				w.log.Warn("prefab watch error", zap.Error(err))
			}
		default:
			return out
		}
	}
}

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

func (w *Watcher) run() {
	defer w.done.Done()
	seen := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change, ok := w.filter(event, seen)
			if !ok {
				continue
			}
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				w.log.Warn("prefab watch error dropped", zap.Error(err))
			}
		case <-w.closeCh:
			return
		}
	}
}

// filter turns a raw event into a Change, dropping unrelated files and
// repeats of the same file within the debounce window.
func (w *Watcher) filter(event fsnotify.Event, seen map[string]time.Time) (Change, bool) {
	if event.Op&relevantOps == 0 {
		return Change{}, false
	}
	kind, ok := classify(event.Name)
	if !ok {
		return Change{}, false
	}
	now := time.Now()
	if prev, ok := seen[event.Name]; ok && now.Sub(prev) < debounce {
		return Change{}, false
	}
	seen[event.Name] = now
	w.log.Debug("prefab changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
	return Change{Path: event.Name, Kind: kind}, true
}

func classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangeSpec, true
	case ".tengo":
		return ChangeScript, true
	}
	return 0, false
}
