// Package metrics exposes Prometheus collectors for report builds and
// template resolution. arcana is a batch tool, so metrics are not scraped;
// they can be dumped to a node_exporter textfile after a run.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/teranos/arcana/errors"
)

const namespace = "arcana"

// Metrics holds the collectors shared by the template and report packages.
type Metrics struct {
	registry prometheus.Gatherer

	pagesBuilt      *prometheus.CounterVec
	elementsDropped *prometheus.CounterVec
	resolutions     *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	buildDuration   *prometheus.HistogramVec
}

var (
	defaultOnce sync.Once
	shared      *Metrics
)

// Default returns the process-wide instance registered with its own registry.
func Default() *Metrics {
	defaultOnce.Do(func() {
		shared = MustNew(prometheus.NewRegistry())
	})
	return shared
}

// MustNew registers the collectors with reg. Collectors that are already
// registered are reused, so calling it twice on one registry is safe.
// reg must also be a Gatherer for WriteTextfile to work.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		pagesBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "pages_built_total",
			Help:      "Pages built, by page kind and scenario.",
		}, []string{"page", "scenario"}),
		elementsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "elements_dropped_total",
			Help:      "Labels without a matching template element, by page.",
		}, []string{"page"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "template",
			Name:      "resolutions_total",
			Help:      "Template loads with $ref resolution, by outcome.",
		}, []string{"status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "template",
			Name:      "cache_lookups_total",
			Help:      "Resolved template cache lookups, by result.",
		}, []string{"result"}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "build_duration_seconds",
			Help:      "Wall time of a scenario build.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"scenario"}),
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.registry = g
	}

	m.pagesBuilt = register(reg, m.pagesBuilt)
	m.elementsDropped = register(reg, m.elementsDropped)
	m.resolutions = register(reg, m.resolutions)
	m.cacheLookups = register(reg, m.cacheLookups)
	m.buildDuration = register(reg, m.buildDuration)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// PageBuilt counts one finished page.
func (m *Metrics) PageBuilt(page, scenario string) {
	if m == nil {
		return
	}
	m.pagesBuilt.WithLabelValues(page, scenario).Inc()
}

// ElementsDropped counts labels that had no template element.
func (m *Metrics) ElementsDropped(page string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.elementsDropped.WithLabelValues(page).Add(float64(n))
}

// Resolution records a template resolution outcome.
func (m *Metrics) Resolution(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.resolutions.WithLabelValues(status).Inc()
}

// CacheLookup records a cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveBuild records the duration of one scenario build.
func (m *Metrics) ObserveBuild(scenario string, d time.Duration) {
	if m == nil {
		return
	}
	m.buildDuration.WithLabelValues(scenario).Observe(d.Seconds())
}

// WriteTextfile dumps every collector in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || m.registry == nil {
		return errors.New("metrics registry is not gatherable")
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}
