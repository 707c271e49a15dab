package template

import (
	"context"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/teranos/arcana/errors"
	"github.com/teranos/arcana/logger"
	"github.com/teranos/arcana/metrics"
)

const (
	// DefaultCacheSize covers every page layout with room to spare.
	DefaultCacheSize = 32

	defaultDebounce = 250 * time.Millisecond
)

// LoadResolved loads path, checks its schema version and resolves it.
func LoadResolved(path string) (Document, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := doc.CheckSchema(); err != nil {
		return nil, errors.Wrapf(err, "template %s", path)
	}
	resolved, err := Resolve(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve template %s", path)
	}
	return resolved, nil
}

// Cache keeps resolved documents keyed by absolute source path. Resolved
// documents carry no client data, so one Cache may serve concurrent builds.
type Cache struct {
	docs     *lru.Cache[string, Document]
	loads    singleflight.Group
	load     func(path string) (Document, error)
	gen      atomic.Uint64 // bumped by every invalidation
	metrics  *metrics.Metrics
	logger   *zap.SugaredLogger
	debounce time.Duration
}

// NewCache creates a cache holding at most size documents. m may be nil.
func NewCache(size int, m *metrics.Metrics) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	docs, err := lru.New[string, Document](size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create template cache")
	}
	return &Cache{
		docs:     docs,
		load:     LoadResolved,
		metrics:  m,
		logger:   logger.ComponentLogger("template.cache"),
		debounce: defaultDebounce,
	}, nil
}

// Get returns the resolved document at path, loading it on a miss.
// Concurrent misses for one path share a single load.
func (c *Cache) Get(path string) (Document, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "bad template path %s", path)
	}
	if doc, ok := c.docs.Get(key); ok {
		c.metrics.CacheLookup(true)
		return doc, nil
	}
	c.metrics.CacheLookup(false)

	v, err, _ := c.loads.Do(key, func() (any, error) {
		gen := c.gen.Load()
		start := time.Now()
		doc, err := c.load(key)
		c.metrics.Resolution(err)
		if err != nil {
			return nil, err
		}
		// an invalidation during the load may have seen an older file
		if c.gen.Load() != gen {
			c.logger.Debugw("template invalidated while loading, not cached", logger.FieldPath, key)
			return doc, nil
		}
		c.docs.Add(key, doc)
		c.logger.Debugw("template resolved",
			logger.FieldPath, key,
			logger.FieldDurationMS, time.Since(start).Milliseconds())
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Document), nil
}

// Invalidate drops path from the cache and reports whether it was present.
func (c *Cache) Invalidate(path string) bool {
	key, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return c.drop(key)
}

func (c *Cache) drop(key string) bool {
	c.gen.Add(1)
	c.loads.Forget(key)
	return c.docs.Remove(key)
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.gen.Add(1)
	c.docs.Purge()
}

// Len is the number of cached documents.
func (c *Cache) Len() int {
	return c.docs.Len()
}

// Paths lists cached documents, least recently used first.
func (c *Cache) Paths() []string {
	return c.docs.Keys()
}

// Watch invalidates cached documents under dirs when their files change and
// calls onChange with the affected paths once a burst of events settles.
// It blocks until ctx is cancelled.
func (c *Cache) Watch(ctx context.Context, dirs []string, onChange func(paths []string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer w.Close()

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
		c.logger.Infow("watching templates", logger.FieldPath, dir)
	}

	pending := map[string]struct{}{}
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if _, err := FormatOf(event.Name); err != nil {
				continue
			}
			path, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			c.logger.Debugw("template changed",
				logger.FieldPath, path,
				"op", event.Op.String())
			pending[path] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(c.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(c.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for path := range pending {
				c.drop(path)
				changed = append(changed, path)
			}
			pending = map[string]struct{}{}
			sort.Strings(changed)
			c.logger.Infow("templates invalidated", logger.FieldCount, len(changed))
			if onChange != nil {
				onChange(changed)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger.Warnw("template watcher error", logger.FieldError, err)
		}
	}
}
