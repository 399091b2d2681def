package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

var resultColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "query", Width: 8},
	{Title: "segment", Width: 8},
	{Title: "distance", Width: 10},
	{Title: "where", Width: 28},
}

// refreshResults fills the table from the last collide query. The table is
// hidden when there is nothing to show.
func (m *Model) refreshResults() {
	rows := m.resultRows()
	if len(rows) == 0 {
		m.showResults = false
		m.status = "no query results"
		return
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(resultColumns)
	m.tbl.SetRows(rows)
}

func (m *Model) resultRows() []table.Row {
	rows := make([]table.Row, 0, len(m.hits)+len(m.nearest))
	for _, h := range m.hits {
		rows = append(rows, table.Row{
			strconv.Itoa(len(rows) + 1),
			"hit",
			"#" + strconv.Itoa(h.shapeID),
			"0",
			fmt.Sprintf("at %s (%d frag)", h.at, h.fragments),
		})
	}
	for _, n := range m.nearest {
		rows = append(rows, table.Row{
			strconv.Itoa(len(rows) + 1),
			"nearest",
			"#" + strconv.Itoa(n.ShapeID),
			strconv.FormatFloat(n.Distance, 'f', 2, 64),
			fmt.Sprintf("%s %s", n.ShapeFragment.LT, n.ShapeFragment.RB),
		})
	}
	return rows
}
