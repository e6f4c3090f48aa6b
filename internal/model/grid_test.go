package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_IsEmptyAndHasNoFullRows(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	require.True(t, g.IsEmpty())
	for r := 0; r < Rows; r++ {
		assert.False(t, g.LineIsFull(r), "row %d", r)
		for c := 0; c < Cols; c++ {
			assert.Equal(t, Empty, g.Get(r, c))
		}
	}
	assert.Empty(t, g.FullRows())
}

func TestGridSet_ReturnsPreviousColor(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	assert.Equal(t, Empty, g.Set(3, 4, Red))
	assert.Equal(t, Red, g.Set(3, 4, Blue))
	assert.Equal(t, Blue, g.Get(3, 4))
	assert.Equal(t, 1, g.Count())
}

func TestGridGet_OutOfRangePanics(t *testing.T) {
	t.Parallel()

	cases := [][2]int{{-1, 0}, {0, -1}, {Rows, 0}, {0, Cols}}
	for _, rc := range cases {
		rc := rc
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic for %v", rc)
				_, ok := r.(*RangeError)
				require.True(t, ok, "expected *RangeError; got %T", r)
			}()
			g := NewGrid()
			g.Get(rc[0], rc[1])
		}()
	}
}

func TestLineIsFull_OnlyWhenNoEmptyCell(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	for c := 0; c < Cols-1; c++ {
		g.Set(7, c, Orange)
	}
	assert.False(t, g.LineIsFull(7))
	g.Set(7, Cols-1, White)
	assert.True(t, g.LineIsFull(7))
	assert.Equal(t, []int{7}, g.FullRows())
}

func TestGridJSON_UsesCSSNamesAndRejectsBadDimensions(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	g.Set(0, 0, Teal)
	g.Set(0, 1, Yellow)
	b, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(b), `[["cyan","gold","black"`)

	var back Grid
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, g, back)

	err = json.Unmarshal([]byte(`[["black"]]`), &back)
	require.Error(t, err)
}

func TestParseColor_AcceptsKeysAndCSSValues(t *testing.T) {
	t.Parallel()

	for _, c := range Palette() {
		got, err := ParseColor(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)

		got, err = ParseColor(c.CSS())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := ParseColor("  GOLD ")
	require.NoError(t, err)
	assert.Equal(t, Yellow, got)

	_, err = ParseColor("magenta")
	assert.ErrorIs(t, err, ErrUnknownColor)
}

func TestRecordJSON_LineClearKeepsRemovedRow(t *testing.T) {
	t.Parallel()

	var row Row
	for i := range row {
		row[i] = Red
	}
	rec := LineClearRecord(12, row)
	b, err := json.Marshal(rec)
	require.NoError(t, err)

	var back Record
	require.NoError(t, json.Unmarshal(b, &back))
	require.NotNil(t, back.Removed)
	assert.Equal(t, RecordLineClear, back.Kind)
	assert.Equal(t, 12, back.Row)
	assert.Equal(t, row, *back.Removed)
}
