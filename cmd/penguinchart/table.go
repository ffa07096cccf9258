package main

import (
	"os"
	"strconv"

	"github.com/couchcryptid/penguin-chart/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// renderSummary lists the points plotted per species in the fixed order.
// Plain ASCII is used when stdout is not a terminal.
func renderSummary(chart domain.Chart, tty bool) string {
	tw := table.NewWriter()
	if tty {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"Species", "Color", "Points"})
	total := 0
	for _, cat := range chart.Categories {
		tw.AppendRow(table.Row{string(cat.Species), cat.Color, strconv.Itoa(cat.Count)})
		total += cat.Count
	}
	tw.AppendFooter(table.Row{"Total", "", strconv.Itoa(total)})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
