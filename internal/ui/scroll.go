package ui

// Viewport geometry. Items render to a variable number of rows, so row
// math goes through a line-distance walk over item heights rather than
// assuming a uniform height.

func (m *Model) viewportHeight() int {
	h := m.height - headerLines - statusLines - len(m.bottomPanelLines())
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) maxOffset() int {
	mo := m.totalRows - m.viewportHeight()
	if mo < 0 {
		return 0
	}
	return mo
}

func (m *Model) clampOffset() {
	if m.offset > m.maxOffset() {
		m.offset = m.maxOffset()
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// walkRows walks item by item from start, accumulating item heights until
// the total exceeds target rows or the boundary is reached, and returns the
// item the walk stopped on. Every scroll and click mapping goes through
// this.
func (m *Model) walkRows(start, dir, target int) int {
	i := start
	acc := m.items[i].Height()
	for acc <= target {
		next := i + dir
		if next < 0 || next >= len(m.items) {
			break
		}
		i = next
		acc += m.items[i].Height()
	}
	return i
}

// itemAtRow maps a document row to the item covering it.
func (m *Model) itemAtRow(row int) int {
	if len(m.nodes) == 0 || row <= 0 {
		return 0
	}
	return m.walkRows(0, 1, row)
}

// padding caps the configured scroll padding so the bands never overlap on
// a short viewport.
func (m *Model) padding() int {
	pad := m.cfg.UI.ScrollPadding
	if limit := (m.viewportHeight() - 1) / 2; pad > limit {
		pad = limit
	}
	if pad < 0 {
		pad = 0
	}
	return pad
}

// ensureVisible scrolls just enough to keep the selected item inside the
// padded band. Near the document edges the padding gives way so the first
// and last rows stay reachable.
func (m *Model) ensureVisible() {
	if len(m.nodes) == 0 {
		m.offset = 0
		return
	}
	vh := m.viewportHeight()
	pad := m.padding()
	start := m.rowStarts[m.selected]
	end := start + m.items[m.selected].Height()

	if end+pad > m.offset+vh {
		m.offset = end + pad - vh
	}
	if start-pad < m.offset {
		m.offset = start - pad
	}
	m.clampOffset()
}

// scrollRows moves the viewport by delta rows. When the selection would end
// up inside the padding band at the edge the viewport is moving away from,
// it is nudged one item along. Decrementing past offset 0 is a no-op.
func (m *Model) scrollRows(delta int) {
	if len(m.nodes) == 0 {
		return
	}
	old := m.offset
	m.offset += delta
	m.clampOffset()
	if m.offset == old {
		return
	}

	vh := m.viewportHeight()
	pad := m.padding()
	start := m.rowStarts[m.selected]
	end := start + m.items[m.selected].Height()

	if delta > 0 && start < m.offset+pad && m.selected < len(m.nodes)-1 {
		m.selected++
	} else if delta < 0 && end > m.offset+vh-pad && m.selected > 0 {
		m.selected--
	}
}

// page moves the viewport a full screen, keeping the selection at the same
// screen row. Paging down holds position when the page-distance walk lands
// on the last item, so short logs never strand blank space below. Paging up
// with the viewport already at the top jumps the selection to the first
// item.
func (m *Model) page(dir int) {
	if len(m.nodes) == 0 {
		return
	}
	vh := m.viewportHeight()
	dist := m.rowStarts[m.selected] - m.offset
	if dist < 0 {
		dist = 0
	}

	if dir > 0 {
		landing := m.itemAtRow(m.offset + vh)
		if landing == len(m.nodes)-1 {
			return
		}
		m.offset += vh
		m.clampOffset()
	} else {
		if m.offset == 0 {
			m.selected = 0
			return
		}
		m.offset -= vh
		m.clampOffset()
	}

	m.selected = m.itemAtRow(m.offset + dist)
}

// clickRow selects the item at a viewport-relative row via the same walk
// the scroller uses. The viewport does not move; clicks past the document
// end select nothing.
func (m *Model) clickRow(y int) {
	row := m.offset + y
	if row < 0 || row >= m.totalRows {
		return
	}
	m.selected = m.itemAtRow(row)
}
