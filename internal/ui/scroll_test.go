package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestItemAtRow(t *testing.T) {
	m, _ := newTestModel(t, 10)

	// Change 0 covers rows 0-1, its two files rows 2-3, change 1 rows 4-5.
	assert.Equal(t, 0, m.itemAtRow(0))
	assert.Equal(t, 0, m.itemAtRow(1))
	assert.Equal(t, 1, m.itemAtRow(2))
	assert.Equal(t, 2, m.itemAtRow(3))
	assert.Equal(t, 3, m.itemAtRow(4))
	assert.Equal(t, 3, m.itemAtRow(5))
}

func TestEnsureVisibleScrollsDown(t *testing.T) {
	m, _ := newTestModel(t, 30)
	require.Equal(t, 0, m.offset)

	last := len(m.nodes) - 1
	m.setSelected(last)

	vh := m.viewportHeight()
	start := m.rowStarts[last]
	end := start + m.items[last].Height()
	assert.GreaterOrEqual(t, start, m.offset, "selected item visible")
	assert.LessOrEqual(t, end, m.offset+vh)
	assert.LessOrEqual(t, m.offset, m.maxOffset())

	m.setSelected(0)
	assert.Equal(t, 0, m.offset, "padding gives way at the top edge")
}

func TestScrollRowsDragsSelection(t *testing.T) {
	m, _ := newTestModel(t, 30)
	m.setSelected(0)

	// Scroll the selection out through the top of the padded band.
	for i := 0; i < 8; i++ {
		m.scrollRows(1)
	}
	assert.Greater(t, m.selected, 0, "selection dragged along")
	assert.GreaterOrEqual(t, m.rowStarts[m.selected], m.offset, "selection stays visible")

	// Scrolling back up drags it the other way.
	for i := 0; i < 20; i++ {
		m.scrollRows(-1)
	}
	assert.Equal(t, 0, m.offset)
	end := m.rowStarts[m.selected] + m.items[m.selected].Height()
	assert.LessOrEqual(t, end, m.offset+m.viewportHeight()-m.padding())
}

func TestScrollRowsClampsAtEdges(t *testing.T) {
	m, _ := newTestModel(t, 30)

	m.scrollRows(-5)
	assert.Equal(t, 0, m.offset)

	for i := 0; i < 1000; i++ {
		m.scrollRows(1)
	}
	assert.Equal(t, m.maxOffset(), m.offset)
}

func TestPageKeepsScreenRow(t *testing.T) {
	m, _ := newTestModel(t, 40)
	m.setSelected(3)
	distBefore := m.rowStarts[m.selected] - m.offset

	m.page(1)
	assert.Greater(t, m.offset, 0)
	distAfter := m.rowStarts[m.selected] - m.offset
	// Variable item heights can shift the landing row by a row.
	assert.InDelta(t, distBefore, distAfter, 1)
}

func TestPageAtEdges(t *testing.T) {
	m, _ := newTestModel(t, 40)

	m.page(-1)
	assert.Equal(t, 0, m.selected, "pinned at top selects the first item")

	for i := 0; i < 50; i++ {
		m.page(1)
	}
	offset, sel := m.offset, m.selected
	m.page(1)
	assert.Equal(t, offset, m.offset, "paging past the end holds position")
	assert.Equal(t, sel, m.selected)
}

func TestPageDownShortLogHoldsPosition(t *testing.T) {
	m, _ := newTestModel(t, 3)

	// The whole log fits on one screen; paging down must not move.
	m.page(1)
	assert.Equal(t, 0, m.offset)
	assert.Equal(t, 0, m.selected)
}

func TestDownPastLastItemNoDrift(t *testing.T) {
	m, _ := newTestModel(t, 30)

	last := len(m.nodes) - 1
	m.setSelected(last)
	offset := m.offset
	for i := 0; i < 5; i++ {
		m.setSelected(m.selected + 1)
	}
	assert.Equal(t, last, m.selected, "selection stays on the last item")
	assert.Equal(t, offset, m.offset, "offset does not drift")
}

func TestClickRow(t *testing.T) {
	m, _ := newTestModel(t, 10)

	m.clickRow(4)
	assert.Equal(t, 3, m.selected)
	assert.Equal(t, 0, m.offset, "clicks never scroll")

	before := m.selected
	m.clickRow(m.totalRows + 5)
	assert.Equal(t, before, m.selected, "clicks past the end select nothing")
}

func TestScrollInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m, _ := newTestModel(t, rapid.IntRange(1, 50).Draw(t, "changes"))

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for range steps {
			switch rapid.IntRange(0, 4).Draw(t, "op") {
			case 0:
				m.scrollRows(1)
			case 1:
				m.scrollRows(-1)
			case 2:
				m.page(1)
			case 3:
				m.page(-1)
			case 4:
				m.setSelected(rapid.IntRange(0, len(m.nodes)-1).Draw(t, "sel"))
			}

			require.GreaterOrEqual(t, m.offset, 0)
			require.LessOrEqual(t, m.offset, m.maxOffset())
			require.GreaterOrEqual(t, m.selected, 0)
			require.Less(t, m.selected, len(m.nodes))
		}
	})
}
