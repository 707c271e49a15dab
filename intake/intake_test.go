package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/errors"
)

var now = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseBirthday(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"15.05.1990", date(1990, time.May, 15)},
		{"6.2.2019", date(2019, time.February, 6)},
		{" 07.12.1963 ", date(1963, time.December, 7)},
		{"18.10.2026", date(2026, time.October, 18)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBirthday(tt.in, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseBirthdayRejects(t *testing.T) {
	for _, in := range []string{"", "1990-05-15", "31.02.1990", "15.13.1990", "19.10.2026", "abc"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseBirthday(in, now)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgumentError(err))
		})
	}
}

func TestAge(t *testing.T) {
	assert.Equal(t, 36, Age(date(1990, time.May, 15), now))
	assert.Equal(t, 11, Age(date(2014, time.October, 19), now))
	assert.Equal(t, 12, Age(date(2014, time.October, 18), now))
	assert.Equal(t, 0, Age(date(2026, time.January, 1), now))
}

func TestCheckAge(t *testing.T) {
	twelve := date(2014, time.October, 18)
	eleven := date(2014, time.October, 19)

	assert.NoError(t, CheckAge(twelve, Adult, now))
	assert.Error(t, CheckAge(eleven, Adult, now))
	assert.NoError(t, CheckAge(eleven, Child, now))
	assert.Error(t, CheckAge(twelve, Child, now))
	assert.NoError(t, CheckAge(eleven, AnyAge, now))
}

func TestParseGender(t *testing.T) {
	for _, in := range []string{"M", "m", "М", "м", "male", "Муж"} {
		g, err := ParseGender(in)
		require.NoError(t, err, in)
		assert.Equal(t, arcane.GenderMale, g, in)
	}
	for _, in := range []string{"F", "f", "Ж", "ж", "Female", " жен "} {
		g, err := ParseGender(in)
		require.NoError(t, err, in)
		assert.Equal(t, arcane.GenderFemale, g, in)
	}

	_, err := ParseGender("x")
	assert.True(t, errors.IsInvalidArgumentError(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestTrimName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Anna ", "Anna"},
		{"Anna Maria", "Anna Maria"},
		{"Anna Maria Smith", "Anna"},
		{"Анастасия Петровна", "Анастасия"},
		{"Ярослава", "Ярослава"},
	}
	for _, tt := range tests {
		got, err := TrimName(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := TrimName("   ")
	assert.Error(t, err)

	for _, name := range []string{"../x", "a/b", `a\b`} {
		_, err := TrimName(name)
		assert.True(t, errors.IsInvalidArgumentError(err), name)
	}
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(Input{Name: "Anna", Birthday: "15.05.1990", Gender: "Ж"}, Adult, now)
	require.NoError(t, err)
	assert.Equal(t, "Anna 15.05.90", c.Header())
	assert.Equal(t, arcane.GenderFemale, c.Gender)

	_, err = NewClient(Input{Name: "John", Birthday: "6.02.2019", Gender: "M"}, Adult, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client John")

	_, err = NewClient(Input{Name: "John", Birthday: "6.02.2019", Gender: "?"}, Child, now)
	assert.True(t, errors.IsInvalidArgumentError(err))
}

func TestAgeClassString(t *testing.T) {
	assert.Equal(t, "adult", Adult.String())
	assert.Equal(t, "child", Child.String())
	assert.Equal(t, "any", AnyAge.String())
}
