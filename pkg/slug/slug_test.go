package slug

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Bromo Sunrise Trip", "bromo-sunrise-trip"},
		{"  Padded   Title  ", "padded-title"},
		{"Jogja & Solo: 3 Days!", "jogja-solo-3-days"},
		{"already-slugged_title", "already-slugged-title"},
		{"UPPER CASE", "upper-case"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Make(tc.title), "title %q", tc.title)
	}
}

func TestWithStamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	got := WithStamp("bromo-sunrise-trip", now)
	want := "bromo-sunrise-trip-" + strconv.FormatInt(now.UnixMilli(), 36)
	assert.Equal(t, want, got)

	// Different instants give different slugs for the same base.
	later := WithStamp("bromo-sunrise-trip", now.Add(time.Millisecond))
	assert.NotEqual(t, got, later)
}
