package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

const defaultTermWidth = 80

// TerminalWidth returns the width of the terminal behind w, or
// defaultTermWidth when w is not a terminal.
func TerminalWidth(w io.Writer) int {
	type fder interface{ Fd() uintptr }
	if f, ok := w.(fder); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 { //nolint:gosec // uintptr→int is safe for file descriptors
			return width
		}
	}
	return defaultTermWidth
}

// columnWidth is the widest a wrapped cell may get: the terminal width minus
// overhead (borders, padding, fixed columns), never below minWidth.
func columnWidth(w io.Writer, minWidth, overhead int) int {
	return max(minWidth, TerminalWidth(w)-overhead)
}

func rowConfig(width int, merge int) tablewriter.Config {
	return tablewriter.Config{
		Row: tw.CellConfig{
			Formatting:   tw.CellFormatting{MergeMode: merge, AutoWrap: tw.WrapNormal},
			ColMaxWidths: tw.CellWidth{Global: width},
		},
	}
}

// NewWrappingTable returns a table whose cells wrap to fit the terminal.
// Used for one-row-per-entity listings.
func NewWrappingTable(w io.Writer, minWidth, overhead int) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(rowConfig(columnWidth(w, minWidth, overhead), tw.MergeNone)),
	)
}

// NewGroupedWrappingTable is NewWrappingTable with equal first-column cells
// merged and a rule between groups. Used for per-section detail records.
func NewGroupedWrappingTable(w io.Writer, minWidth, overhead int) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})),
		tablewriter.WithConfig(rowConfig(columnWidth(w, minWidth, overhead), tw.MergeHierarchical)),
	)
}
