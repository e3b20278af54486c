package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const debounce = 100 * time.Millisecond

// Watcher reloads the render section of a config file whenever it changes
// on disk and publishes valid results on Updates. Invalid edits are logged
// and skipped; the previous palette stays in effect.
type Watcher struct {
	Updates chan RenderConfig

	path    string
	log     *zap.Logger
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The parent directory is watched rather than
// the file itself so that editors which save by rename are still seen.
func Watch(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		Updates: make(chan RenderConfig, 4),
		path:    abs,
		log:     log.Named("config-watch"),
		watcher: fw,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit. Updates is
// closed afterwards. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	// Bursts of events (write + chmod, or rename + create) collapse into a
	// single reload once the file has been quiet for the debounce period.
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending = time.After(debounce)
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	render, err := loadRender(w.path)
	if err != nil {
		w.log.Warn("ignoring config change", zap.String("path", w.path), zap.Error(err))
		return
	}

	select {
	case w.Updates <- render:
		w.log.Info("render config reloaded", zap.String("path", w.path))
	case <-w.closeCh:
	default:
		w.log.Warn("dropping render config update, consumer is behind")
	}
}

func loadRender(path string) (RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RenderConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Render.Validate(); err != nil {
		return RenderConfig{}, err
	}
	return cfg.Render, nil
}
