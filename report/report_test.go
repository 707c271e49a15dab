package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/arcana/am"
	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/errors"
	"github.com/teranos/arcana/metrics"
	"github.com/teranos/arcana/render"
)

func testConfig(t *testing.T) *am.Config {
	t.Helper()
	v := viper.New()
	am.SetDefaults(v)
	cfg, err := am.LoadWithViper(v)
	require.NoError(t, err)
	cfg.Templates.Dir = filepath.Join("..", "configs", "pages")
	return cfg
}

func newBuilder(t *testing.T, reg *prometheus.Registry) *Builder {
	t.Helper()
	var m *metrics.Metrics
	if reg != nil {
		m = metrics.MustNew(reg)
	}
	b, err := NewBuilder(testConfig(t), nil, m)
	require.NoError(t, err)
	return b
}

func person(name string, year int, month time.Month, day int, g arcane.Gender) arcane.Client {
	return arcane.NewClient(name, time.Date(year, month, day, 0, 0, 0, 0, time.UTC), g)
}

func anna() arcane.Client { return person("Anna", 1990, time.May, 15, arcane.GenderFemale) }

func counterSum(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestParseScenario(t *testing.T) {
	for _, in := range []string{"adult", "Child", " couple "} {
		_, err := ParseScenario(in)
		assert.NoError(t, err, in)
	}

	_, err := ParseScenario("family")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgumentError(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestRequestValidate(t *testing.T) {
	assert.NoError(t, Request{Scenario: ScenarioAdult, Clients: []arcane.Client{anna()}}.Validate())

	err := Request{Scenario: ScenarioCouple, Clients: []arcane.Client{anna()}}.Validate()
	assert.True(t, errors.IsInvalidArgumentError(err))

	err = Request{Scenario: "solo", Clients: []arcane.Client{anna()}}.Validate()
	assert.True(t, errors.IsInvalidArgumentError(err))
}

func TestBuildAdult(t *testing.T) {
	reg := prometheus.NewRegistry()
	b := newBuilder(t, reg)

	r, err := b.Build(context.Background(), Request{Scenario: ScenarioAdult, Clients: []arcane.Client{anna()}})
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, []string{
		"Anna_fullstar",
		"Anna_personality", "Anna_spirituality", "Anna_money", "Anna_relationship", "Anna_health",
		"Anna_predict",
		"Anna_pythagorian",
	}, r.PageNames())
	assert.Equal(t, float64(8), counterSum(t, reg, "arcana_report_pages_built_total"))
	assert.Zero(t, counterSum(t, reg, "arcana_render_elements_dropped_total"))

	full, ok := r.Page("Anna_fullstar")
	require.True(t, ok)
	assert.Equal(t, KindFullstar, full.Kind)
	assert.Equal(t, filepath.Join("templates", FullstarImage), full.Image)
	assert.Equal(t, 34, full.Context.Len())
	header, _ := full.Context.Get("header_text")
	assert.Equal(t, "Anna 15.05.90", header.Text)
	personality, _ := full.Context.Get("personality")
	assert.Equal(t, "15", personality.Text)
	assert.Equal(t, "header_text", full.Context.Oldest().Key)

	predict, ok := r.Page("Anna_predict")
	require.True(t, ok)
	assert.Equal(t, 100, predict.Context.Len())
	_, hasHeader := predict.Context.Get("header_text")
	assert.False(t, hasHeader)
	_, hasDial := predict.Context.Get("main_20")
	assert.True(t, hasDial)

	grid, ok := r.Page("Anna_pythagorian")
	require.True(t, ok)
	assert.Equal(t, 9, grid.Context.Len())
}

func TestTrianglePageLayout(t *testing.T) {
	b := newBuilder(t, nil)
	g := arcane.NewGraph(anna())

	page, err := b.Triangle(context.Background(), g, arcane.Money)
	require.NoError(t, err)

	assert.Equal(t, "Anna_money", page.Name)
	assert.Equal(t, arcane.Money, page.Pointer)
	assert.Equal(t, filepath.Join("templates", "money.jpg"), page.Image)
	require.Equal(t, 8, page.Context.Len())

	vertex, ok := page.Context.Get("vertex")
	require.True(t, ok)
	assert.Equal(t, "19", vertex.Text)
	assert.Equal(t, render.Font{Name: "Montserrat-Bold", Size: 10}, vertex.Font)
	assert.Equal(t, [3]uint8{107, 63, 160}, vertex.Color.RGB)
	assert.InDelta(t, 1190*render.DefaultScale, vertex.Position.X, 1e-9)
	assert.InDelta(t, 600*render.DefaultScale, vertex.Position.Y, 1e-9)
}

func TestBuildChild(t *testing.T) {
	b := newBuilder(t, nil)
	child := person("John", 2019, time.February, 6, arcane.GenderMale)

	r, err := b.Build(context.Background(), Request{Scenario: ScenarioChild, Clients: []arcane.Client{child}})
	require.NoError(t, err)
	assert.Equal(t, []string{"John_personality", "John_money", "John_pythagorian"}, r.PageNames())
}

func TestBuildCouple(t *testing.T) {
	reg := prometheus.NewRegistry()
	b := newBuilder(t, reg)
	john := person("John", 1963, time.December, 7, arcane.GenderFemale)
	jul := person("Jul", 1982, time.July, 23, arcane.GenderMale)

	r, err := b.Build(context.Background(), Request{Scenario: ScenarioCouple, Clients: []arcane.Client{john, jul}})
	require.NoError(t, err)

	names := r.PageNames()
	require.Len(t, names, 17)
	assert.Equal(t, "John_fullstar", names[0])
	assert.Equal(t, "Jul_fullstar", names[8])
	assert.Equal(t, "John_couple", names[16])
	assert.Equal(t, float64(17), counterSum(t, reg, "arcana_report_pages_built_total"))

	couple := r.Pages[16]
	header, _ := couple.Context.Get("header_text")
	assert.Equal(t, "John + Jul", header.Text)
	personality, _ := couple.Context.Get("personality")
	assert.Equal(t, "12", personality.Text)
	spirituality, _ := couple.Context.Get("spirituality")
	assert.Equal(t, "19", spirituality.Text)
}

func TestBuildCoupleSharedName(t *testing.T) {
	b := newBuilder(t, nil)
	first := person("Sam", 1980, time.March, 1, arcane.GenderMale)
	second := person("Sam", 1984, time.April, 9, arcane.GenderFemale)

	r, err := b.Build(context.Background(), Request{Scenario: ScenarioCouple, Clients: []arcane.Client{first, second}})
	require.NoError(t, err)

	names := r.PageNames()
	assert.Equal(t, "Sam_1_fullstar", names[0])
	assert.Equal(t, "Sam_2_fullstar", names[8])
	assert.Equal(t, "Sam_couple", names[16])
}

func TestBuildMissingLayout(t *testing.T) {
	cfg := testConfig(t)
	cfg.Templates.Dir = t.TempDir()
	b, err := NewBuilder(cfg, nil, nil)
	require.NoError(t, err)

	_, err = b.Build(context.Background(), Request{Scenario: ScenarioAdult, Clients: []arcane.Client{anna()}})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestBuildCancelled(t *testing.T) {
	b := newBuilder(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, Request{Scenario: ScenarioAdult, Clients: []arcane.Client{anna()}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestReportWrite(t *testing.T) {
	b := newBuilder(t, nil)
	r, err := b.Build(context.Background(), Request{Scenario: ScenarioAdult, Clients: []arcane.Client{anna()}})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := r.Write(dir, am.FormatJSON)
	require.NoError(t, err)
	require.Len(t, paths, 8)
	assert.Equal(t, filepath.Join(dir, "Anna_fullstar.json"), paths[0])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	var page struct {
		Name    string                    `json:"name"`
		Context map[string]render.Element `json:"context"`
	}
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, "Anna_fullstar", page.Name)
	assert.Equal(t, "Anna 15.05.90", page.Context["header_text"].Text)

	yamlPaths, err := r.Write(dir, am.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Anna_predict.yaml"), yamlPaths[6])

	_, err = r.Write(dir, "xml")
	assert.True(t, errors.IsInvalidArgumentError(err))
}

func TestReportWriteRejectsEscapingNames(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "out")
	for _, name := range []string{"../escaped_fullstar", "a/b_fullstar", `a\b_fullstar`, "/abs_fullstar"} {
		r := &Report{Pages: []Page{{Name: name, Kind: KindFullstar, Context: render.NewContext()}}}
		_, err := r.Write(dir, am.FormatJSON)
		assert.True(t, errors.IsInvalidArgumentError(err), name)
	}
	_, err := os.Stat(filepath.Join(root, "escaped_fullstar.json"))
	assert.True(t, os.IsNotExist(err))
}
