package am

import (
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/arcana/errors"
	"github.com/teranos/arcana/logger"
)

const defaultReloadDebounce = 500 * time.Millisecond

// ReloadCallback receives every configuration that loaded and validated
// after a change. Errors are logged; later callbacks still run.
type ReloadCallback func(*Config) error

// Loader produces a fresh configuration.
type Loader func() (*Config, error)

// ConfigWatcher reloads the configuration when its file changes on disk.
type ConfigWatcher struct {
	path     string
	load     Loader
	debounce time.Duration
	watcher  *fsnotify.Watcher
	log      *zap.SugaredLogger

	mu        sync.Mutex
	timer     *time.Timer
	callbacks []ReloadCallback

	ownWrite atomic.Bool
}

// WatcherOption configures a ConfigWatcher.
type WatcherOption func(*ConfigWatcher)

// WithLoader replaces the default reload, which re-reads the whole cascade.
func WithLoader(load Loader) WatcherOption {
	return func(cw *ConfigWatcher) { cw.load = load }
}

// WithDebounce sets how long a burst of writes must settle before reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(cw *ConfigWatcher) { cw.debounce = d }
}

// NewConfigWatcher watches configPath. The parent directory is watched so
// editors that replace the file on save are still noticed.
func NewConfigWatcher(configPath string, opts ...WatcherOption) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := w.Add(filepath.Dir(configPath)); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "failed to watch config file %s", configPath)
	}

	cw := &ConfigWatcher{
		path:     filepath.Clean(configPath),
		load:     reloadCascade,
		debounce: defaultReloadDebounce,
		watcher:  w,
		log:      logger.ComponentLogger("am.watcher"),
	}
	for _, opt := range opts {
		opt(cw)
	}
	return cw, nil
}

func reloadCascade() (*Config, error) {
	Reset()
	return Load()
}

// Path is the watched file.
func (cw *ConfigWatcher) Path() string {
	return cw.path
}

// OnReload registers a callback.
func (cw *ConfigWatcher) OnReload(callback ReloadCallback) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.callbacks = append(cw.callbacks, callback)
}

// MarkOwnWrite skips the next change event; SetValue calls it so that
// persisting a value does not trigger a reload.
func (cw *ConfigWatcher) MarkOwnWrite() {
	cw.ownWrite.Store(true)
}

// Start watches in the background until Stop.
func (cw *ConfigWatcher) Start() {
	go cw.run()
}

func (cw *ConfigWatcher) run() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !cw.relevant(event) {
				continue
			}
			if cw.ownWrite.CompareAndSwap(true, false) {
				cw.log.Debugw("ignoring own write", logger.FieldPath, event.Name)
				continue
			}
			cw.log.Infow("config changed", logger.FieldPath, event.Name, "op", event.Op.String())
			cw.schedule()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Warnw("config watcher error", logger.FieldError, err)
		}
	}
}

func (cw *ConfigWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != cw.path || isBackupFile(event.Name) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (cw *ConfigWatcher) schedule() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(cw.debounce, func() {
		if err := cw.reload(); err != nil {
			cw.log.Errorw("config reload failed", logger.FieldPath, cw.path, logger.FieldError, err)
		}
	})
}

// reload loads, validates and hands the new configuration to every callback.
// An invalid file leaves the callbacks untouched.
func (cw *ConfigWatcher) reload() error {
	cfg, err := cw.load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "reloaded config is invalid")
	}
	cw.log.Infow("config reloaded", logger.FieldPath, cw.path)

	cw.mu.Lock()
	callbacks := append([]ReloadCallback(nil), cw.callbacks...)
	cw.mu.Unlock()

	for _, callback := range callbacks {
		if err := callback(cfg); err != nil {
			cw.log.Warnw("config reload callback failed", logger.FieldError, err)
		}
	}
	return nil
}

// Stop ends watching; pending reloads are dropped.
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.mu.Unlock()
	return cw.watcher.Close()
}

// isBackupFile reports rotation backups (.back1 to .back3)
func isBackupFile(path string) bool {
	return strings.HasPrefix(filepath.Ext(path), ".back")
}

var (
	globalWatcher   *ConfigWatcher
	globalWatcherMu sync.Mutex
)

// SetGlobalWatcher registers the watcher that SetValue notifies of its own
// writes. Pass nil to clear it.
func SetGlobalWatcher(watcher *ConfigWatcher) {
	globalWatcherMu.Lock()
	defer globalWatcherMu.Unlock()
	globalWatcher = watcher
}
