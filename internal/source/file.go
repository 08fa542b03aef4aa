package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/marquee/internal/logging"
)

const fileDebounce = 100 * time.Millisecond

// File is the contents of a file, reloaded when it changes on disk.
type File struct {
	path    string
	watcher *fsnotify.Watcher

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
}

// NewFile watches path. The parent directory is watched so editors that
// replace the file by rename are still seen.
func NewFile(path string) (*File, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &File{path: path, watcher: watcher}, nil
}

// Path returns the watched file.
func (f *File) Path() string { return f.path }

func (f *File) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", err
	}
	return clean(string(data)), nil
}

func (f *File) Run(ctx context.Context, emit func(string)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-f.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != f.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				f.schedule(emit)
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("source: watch %s: %v", f.path, err)
		}
	}
}

func (f *File) schedule(emit func(string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	if f.timer == nil {
		f.timer = time.AfterFunc(fileDebounce, func() { f.reload(emit) })
	} else {
		f.timer.Reset(fileDebounce)
	}
}

func (f *File) reload(emit func(string)) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.timer = nil
	f.mu.Unlock()

	text, err := f.Load()
	if err != nil {
		// Mid-replace; the next event reloads.
		logging.Debug("source: reload %s: %v", f.path, err)
		return
	}
	logging.Debug("source: %s changed (%d bytes)", f.path, len(text))
	emit(text)
}

func (f *File) Close() error {
	var err error
	f.closeOnce.Do(func() {
		f.mu.Lock()
		f.closed = true
		if f.timer != nil {
			f.timer.Stop()
			f.timer = nil
		}
		f.mu.Unlock()
		err = f.watcher.Close()
	})
	return err
}
