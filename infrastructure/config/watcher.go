package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDelay = 500 * time.Millisecond

// Watcher reloads the YAML config file when it changes and notifies
// subscribers. Without a config file it only holds the initial value.
type Watcher struct {
	config    *Config
	callbacks []func(*Config)
	mu        sync.RWMutex
	logger    *zap.Logger
	watcher   *fsnotify.Watcher
	load      func() (*Config, error)
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewWatcher starts watching initial.ConfigFile, if set
func NewWatcher(initial *Config, logger *zap.Logger) (*Watcher, error) {
	w := &Watcher{
		config: initial,
		logger: logger,
		load:   LoadConfig,
		stopCh: make(chan struct{}),
	}

	if initial.ConfigFile == "" {
		logger.Debug("Configuration hot reloading disabled, no config file")
		return w, nil
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory rather than the inode
	if err := fsWatcher.Add(filepath.Dir(initial.ConfigFile)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch config file: %w", err)
	}
	w.watcher = fsWatcher

	go w.watchLoop()

	logger.Info("Configuration hot reloading enabled", zap.String("file", initial.ConfigFile))
	return w, nil
}

// OnChange registers a callback run after every successful reload
func (w *Watcher) OnChange(callback func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Config returns the current configuration
func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

// Stop stops watching
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
}

func (w *Watcher) watchLoop() {
	defer w.watcher.Close()

	target := filepath.Clean(w.config.ConfigFile)
	var debounce *time.Timer

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, w.Reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))

		case <-w.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return
		}
	}
}

// Reload reads the configuration again and notifies subscribers. An invalid
// file keeps the previous configuration.
func (w *Watcher) Reload() {
	next, err := w.load()
	if err != nil {
		w.logger.Error("Invalid configuration after reload, keeping previous", zap.Error(err))
		return
	}

	w.mu.Lock()
	prev := w.config
	w.config = next
	callbacks := append(([]func(*Config))(nil), w.callbacks...)
	w.mu.Unlock()

	w.logger.Info("Configuration reloaded",
		zap.Duration("generatorTimeout", next.GeneratorTimeout),
		zap.Duration("previousGeneratorTimeout", prev.GeneratorTimeout),
		zap.String("logLevel", next.LogLevel),
	)

	for i, cb := range callbacks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					w.logger.Error("Config callback panicked", zap.Int("callback", i), zap.Any("panic", r))
				}
			}()
			cb(next)
		}()
	}
}
