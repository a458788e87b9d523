package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/popup-menu/internal/definition"
	"github.com/fsnotify/fsnotify"
)

// Event conveys a freshly loaded definition or the error that stopped it
// from loading.
type Event struct {
	Path       string
	Definition definition.Definition
	Err        error
}

// Watcher reloads a menu definition whenever its file changes and publishes
// the result.
type Watcher struct {
	path     string
	debounce time.Duration

	fs       *fsnotify.Watcher
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	fire   chan struct{}
	wg     sync.WaitGroup

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher starts watching path. Bursts of writes closer together than
// debounce produce a single reload.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("backend: resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("backend: create watcher: %w", err)
	}
	// Editors often replace the file, so the directory is watched instead.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("backend: watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		debounce: debounce,
		fs:       fsw,
		throttle: newThrottle(debounce),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
		fire:     make(chan struct{}, 1),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of reload results. It is closed after Stop once
// the watcher goroutine has exited.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watcher goroutine has exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fs.Close()
	defer w.stopTimer()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.fire:
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.emit(Event{Path: w.path, Err: fmt.Errorf("backend: watch %s: %w", w.path, err)})
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != w.path {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		}
	}
}

// schedule arms the reload timer, pushing it back while writes keep coming.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) reload() {
	w.mu.Lock()
	w.timer = nil
	w.mu.Unlock()

	w.throttle.wait()
	def, err := definition.Load(w.path)
	w.emit(Event{Path: w.path, Definition: def, Err: err})
}

func (w *Watcher) emit(evt Event) {
	select {
	case <-w.ctx.Done():
	case w.events <- evt:
	}
}
