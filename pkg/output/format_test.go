package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	f := New(FormatJSON)
	f.SetWriter(&buf)

	require.NoError(t, f.JSON(map[string]int{"total": 3}))
	assert.JSONEq(t, `{"total": 3}`, buf.String())
}

func TestTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	f := New(FormatText)
	f.SetWriter(&buf)

	err := f.Table(
		[]string{"ID", "NAME", "PRICE"},
		[][]string{
			{"1", "Iceland Aurora", "2100.00"},
			{"2", "Rome", "890.50"},
		},
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "Iceland Aurora")
	// Columns line up: PRICE header and both values start at the same offset.
	assert.Equal(t, strings.Index(lines[1], "2100.00"), strings.Index(lines[2], "890.50"))
}

func TestTablePadsShortRows(t *testing.T) {
	var buf bytes.Buffer
	f := New(FormatText)
	f.SetWriter(&buf)

	require.NoError(t, f.Table([]string{"A", "B"}, [][]string{{"only"}}))
	assert.Contains(t, buf.String(), "only")
}

func TestFormatPredicates(t *testing.T) {
	assert.True(t, New(FormatJSON).IsJSON())
	assert.False(t, New(FormatJSON).IsText())
	assert.True(t, New(FormatText).IsText())
}
