package projects

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

type Reloader interface {
	Reload(ctx context.Context, name string) error
}

// Watcher re-ingests a project once file events under its root have been
// quiet for the debounce window.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	reloader Reloader
	roots    map[string]string
	pending  map[string]time.Time
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

const DefaultDebounce = 500 * time.Millisecond

func NewWatcher(reloader Reloader, roots map[string]string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  w,
		reloader: reloader,
		roots:    roots,
		pending:  map[string]time.Time{},
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start adds every directory below the project roots and returns immediately.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	logger := zerolog.Ctx(ctx)
	for name, root := range w.roots {
		if err := w.addTree(root); err != nil {
			logger.Warn().Err(err).Str("project", name).Msg("failed to watch project root")
		}
	}

	go w.run(ctx)
	return nil
}

// Stop ends the event loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	logger := zerolog.Ctx(ctx)

	tick := time.NewTicker(w.debounce / 4)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Msg("project watcher error")
		case <-tick.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	name, ok := w.projectOf(event.Name)
	if !ok {
		return
	}

	if event.Op.Has(fsnotify.Create) {
		// new asset folders need their own watch
		if err := w.addTree(event.Name); err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("path", event.Name).Msg("not watching created path")
		}
	}

	w.mu.Lock()
	w.pending[name] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var due []string
	for name, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			due = append(due, name)
			delete(w.pending, name)
		}
	}
	w.mu.Unlock()

	for _, name := range due {
		logger := zerolog.Ctx(ctx).With().Str("project", name).Logger()
		if err := w.reloader.Reload(ctx, name); err != nil {
			logger.Warn().Err(err).Msg("project reload failed")
			continue
		}
		logger.Info().Msg("project reloaded")
	}
}

func (w *Watcher) projectOf(path string) (string, bool) {
	for name, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return name, true
		}
	}
	return "", false
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}
