package preview

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type Watcher struct {
	watcher      *fsnotify.Watcher
	filename     string
	debounceTime time.Duration

	mu    sync.Mutex
	timer *time.Timer

	onUpdate chan<- error
	Update   <-chan error
}

const DEFAULT_DEBOUNCE_TIME = 100 * time.Millisecond

// WatchFile watches the directory of filename, editors often replace
// files instead of writing them in place.
func WatchFile(filename string, debounceTime time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	filename, err = filepath.Abs(filename)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	updateCh := make(chan error, 1)

	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		watcher.Close()
		return nil, err
	}

	out := &Watcher{
		watcher:      watcher,
		filename:     filename,
		debounceTime: debounceTime,
		onUpdate:     updateCh,
		Update:       updateCh,
	}

	go out.process(watcher.Events, watcher.Errors)

	return out, nil
}

func (w *Watcher) debounceUpdate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounceTime, func() {
		select {
		case w.onUpdate <- nil:
		default: // an update is already pending
		}
	})
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	return w.watcher.Close()
}

func (w *Watcher) process(events <-chan fsnotify.Event, errors <-chan error) {
	for {
		select {
		case err, ok := <-errors:
			if !ok {
				return
			}
			select {
			case w.onUpdate <- err:
			default:
			}
		case ev, ok := <-events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.filename {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.debounceUpdate()
			}
		}
	}
}
