package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/arcana/errors"
)

func TestCounters(t *testing.T) {
	m := MustNew(prometheus.NewRegistry())

	m.PageBuilt("fullstar", "adult")
	m.PageBuilt("fullstar", "adult")
	m.ElementsDropped("triangle", 3)
	m.ElementsDropped("triangle", 0)
	m.Resolution(nil)
	m.Resolution(errors.New("boom"))
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.pagesBuilt.WithLabelValues("fullstar", "adult")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.elementsDropped.WithLabelValues("triangle")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutions.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutions.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
}

func TestMustNewTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := MustNew(reg)
	b := MustNew(reg)

	a.PageBuilt("predict", "adult")
	assert.Equal(t, 1.0, testutil.ToFloat64(b.pagesBuilt.WithLabelValues("predict", "adult")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.PageBuilt("x", "y")
		m.ElementsDropped("x", 1)
		m.Resolution(nil)
		m.CacheLookup(true)
		m.ObserveBuild("adult", time.Second)
	})
	assert.Error(t, m.WriteTextfile(filepath.Join(t.TempDir(), "m.prom")))
}

func TestWriteTextfile(t *testing.T) {
	m := MustNew(prometheus.NewRegistry())
	m.PageBuilt("couple", "couple")
	m.ObserveBuild("couple", 20*time.Millisecond)

	path := filepath.Join(t.TempDir(), "arcana.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `arcana_report_pages_built_total{page="couple",scenario="couple"} 1`)
	assert.Contains(t, string(data), "arcana_report_build_duration_seconds_count")
}
