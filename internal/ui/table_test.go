package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// KeyValueBlock
// ---------------------------------------------------------------------------

func TestKeyValueBlockContainsTitleAndPairs(t *testing.T) {
	result := KeyValueBlock("Object", [][2]string{
		{"ID", "0x5"},
		{"Version", "42"},
	})
	assert.Contains(t, result, "Object")
	assert.Contains(t, result, "ID:")
	assert.Contains(t, result, "0x5")
	assert.Contains(t, result, "Version:")
	assert.Contains(t, result, "42")
	assert.Contains(t, result, "╭", "rounded border")
}

func TestKeyValueBlockPreservesOrder(t *testing.T) {
	result := KeyValueBlock("", [][2]string{{"First", "1"}, {"Second", "2"}})
	assert.Less(t, strings.Index(result, "First"), strings.Index(result, "Second"))
}

func TestKeyValueBlockNoPairs(t *testing.T) {
	result := KeyValueBlock("Empty", nil)
	assert.Contains(t, result, "Empty")
}

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

func coinTable() *Table {
	return NewTable([]Column{{Title: "Object", Width: 12}, {Title: "Balance", Width: 10}})
}

func TestNewTable(t *testing.T) {
	tbl := coinTable()
	assert.Len(t, tbl.Columns, 2)
	assert.Empty(t, tbl.Rows)
	assert.Equal(t, -1, tbl.SelIdx)
}

func TestTableRender(t *testing.T) {
	tbl := coinTable()
	tbl.AddRow(Row{"0xaaa", "50"})
	tbl.AddRow(Row{"0xbbb", "30"})

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4, "header, divider, two rows")

	assert.Contains(t, lines[0], "Object")
	assert.Contains(t, lines[1], "─")
	assert.Contains(t, lines[2], "0xaaa")
	assert.Contains(t, lines[3], "0xbbb")
}

func TestTableRenderAlignsColumns(t *testing.T) {
	tbl := coinTable()
	tbl.AddRow(Row{"0xa", "1"})
	tbl.AddRow(Row{"0xabcdef", "1000000"})

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	for _, l := range lines {
		assert.Equal(t, 12+1+10, lipgloss.Width(l), "line %q", l)
	}
}

func TestTableRenderShortRow(t *testing.T) {
	tbl := coinTable()
	tbl.AddRow(Row{"0xonly"})
	assert.Contains(t, tbl.Render(), "0xonly")
}

func TestTableRenderTruncatesLongCells(t *testing.T) {
	tbl := coinTable()
	tbl.AddRow(Row{"0x304af458e90e97c841685b8c", "1"})
	out := tbl.Render()
	assert.Contains(t, out, "0x304af458e…")
	assert.NotContains(t, out, "0x304af458e90")
}

// ---------------------------------------------------------------------------
// padR / trimErr
// ---------------------------------------------------------------------------

func TestPadR(t *testing.T) {
	assert.Equal(t, "hi        ", padR("hi", 10))
	assert.Equal(t, "hello", padR("hello", 5))
	assert.Equal(t, "toolongstring", padR("toolongstring", 5))
	assert.Equal(t, "    ", padR("", 4))
}

func TestTrimErr(t *testing.T) {
	assert.Equal(t, "short error", trimErr("short error"))

	s := strings.Repeat("a", 30)
	assert.Equal(t, s, trimErr(s))

	long := trimErr(strings.Repeat("x", 50))
	assert.Contains(t, long, "…")
	assert.LessOrEqual(t, len(long), 34)

	got := trimErr(`Post "https://fullnode.devnet.sui.io:443": dial tcp: lookup failed`)
	assert.True(t, strings.HasPrefix(got, "dial tcp"))
}
