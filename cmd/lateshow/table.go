package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
)

// column describes one table column: its header and whether values are
// numeric and so right aligned.
type column struct {
	title   string
	numeric bool
}

var (
	episodeColumns    = []column{{"ID", true}, {"Date", false}, {"Number", true}}
	guestColumns      = []column{{"ID", true}, {"Name", false}, {"Occupation", false}}
	appearanceColumns = []column{{"ID", true}, {"Episode", true}, {"Date", false}, {"Guest", false}, {"Rating", true}}
)

// renderTable draws rows under cols.  Short rows are padded with blanks and
// cells beyond the last column are dropped.
func renderTable(cols []column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(lo.Map(cols, func(c column, _ int) any { return c.title }))
	for _, row := range rows {
		tw.AppendRow(lo.Times(len(cols), func(i int) any {
			if i < len(row) {
				return row[i]
			}
			return ""
		}))
	}
	tw.SetColumnConfigs(lo.Map(cols, func(c column, i int) table.ColumnConfig {
		align := text.AlignLeft
		if c.numeric {
			align = text.AlignRight
		}
		return table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}))
	return tw.Render()
}
