package dial

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/errors"
)

func anna() *arcane.Graph {
	return arcane.NewGraph(arcane.NewClient("Anna", time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC), arcane.GenderFemale))
}

func labelsOf(kv ...string) *arcane.Labels {
	l := arcane.NewLabels()
	for i := 0; i+1 < len(kv); i += 2 {
		l.Set(kv[i], kv[i+1])
	}
	return l
}

func TestMappingCoversTwentySlots(t *testing.T) {
	require.Len(t, Mapping, 20)
	seen := map[string]bool{}
	for i, row := range Mapping {
		assert.True(t, strings.HasPrefix(row.To, MainPrefix))
		assert.False(t, seen[row.From], "duplicate source %s", row.From)
		seen[row.From] = true
		assert.Equal(t, MainPrefix+strconv.Itoa(i+1), row.To)
	}
}

func TestSelect(t *testing.T) {
	inner, err := InnerStar(anna(), arcane.Pointers)
	require.NoError(t, err)

	d := Select(inner)
	want := []string{"15", "8", "20", "7", "5", "11", "6", "7", "19", "5", "4", "16", "12", "3", "18", "6", "6", "9", "21", "9"}
	got := make([]string, 0, d.Len())
	for pair := d.Oldest(); pair != nil; pair = pair.Next() {
		got = append(got, pair.Value)
	}
	assert.Equal(t, want, got)
}

func TestSelectSkipsMissingLabels(t *testing.T) {
	d := Select(labelsOf("err_health", "12", "personality", "6", "unrelated", "1"))
	assert.Equal(t, []string{"main_1", "main_19"}, arcane.LabelKeys(d))
}

func TestCountDialData(t *testing.T) {
	full, err := CountDialData(labelsOf("a", "1", "b", "2", "c", "22"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a", "inner_a_left", "inner_a_middle", "inner_a_right",
		"b", "inner_b_left", "inner_b_middle", "inner_b_right",
		"c", "inner_c_left", "inner_c_middle", "inner_c_right",
	}, arcane.LabelKeys(full))

	var values []string
	for pair := full.Oldest(); pair != nil; pair = pair.Next() {
		values = append(values, pair.Value)
	}
	assert.Equal(t, []string{
		"1", "4", "3", "5",
		"2", "8", "6", "10",
		"22", "9", "5", "6",
	}, values)
}

func TestCountDialDataRejectsNonNumeric(t *testing.T) {
	_, err := CountDialData(labelsOf("a", "1", "b", "x"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgumentError(err))
}

func TestCountDialDataEmpty(t *testing.T) {
	full, err := CountDialData(arcane.NewLabels())
	require.NoError(t, err)
	assert.Equal(t, 0, full.Len())
}

func TestFullDial(t *testing.T) {
	full, err := FullDial(anna(), arcane.Pointers)
	require.NoError(t, err)
	require.Equal(t, 80, full.Len())

	keys := arcane.LabelKeys(full)
	assert.Equal(t, []string{"main_1", "inner_main_1_left", "inner_main_1_middle", "inner_main_1_right", "main_2"}, keys[:5])
	assert.Equal(t, "inner_main_20_right", keys[79])

	assert.Equal(t, "20", full.Value("inner_main_1_left"))
	assert.Equal(t, "5", full.Value("inner_main_1_middle"))
	assert.Equal(t, "13", full.Value("inner_main_1_right"))

	// last entry wraps around to main_1
	assert.Equal(t, "15", full.Value("inner_main_20_left"))
	assert.Equal(t, "6", full.Value("inner_main_20_middle"))
	assert.Equal(t, "21", full.Value("inner_main_20_right"))

	for pair := full.Oldest(); pair != nil; pair = pair.Next() {
		n, err := strconv.Atoi(pair.Value)
		require.NoError(t, err)
		assert.True(t, n >= 1 && n <= arcane.MaxArcana, "%s=%s", pair.Key, pair.Value)
	}
}

func TestFullDialPartialPointers(t *testing.T) {
	full, err := FullDial(anna(), []arcane.Pointer{arcane.Money})
	require.NoError(t, err)
	// 10 main/error arcana + 2 money side vertices
	assert.Equal(t, 48, full.Len())
}

func TestFullDialInvalidPointer(t *testing.T) {
	_, err := FullDial(anna(), []arcane.Pointer{"luck"})
	assert.True(t, errors.IsInvalidArgumentError(err))
}

func TestInnerStar(t *testing.T) {
	inner, err := InnerStar(anna(), arcane.Pointers)
	require.NoError(t, err)

	assert.Equal(t, 20, inner.Len())
	_, ok := inner.Get("header_text")
	assert.False(t, ok)
	assert.Equal(t, "9", inner.Value("personality_inverted_left_vertex"))
	assert.Equal(t, "3", inner.Value("relationship_inverted_right_vertex"))
	_, ok = inner.Get("money_inverted_vertex")
	assert.False(t, ok)
}
