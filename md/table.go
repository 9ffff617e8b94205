package md

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/structdown/structdown/internal/textutil"
)

// TableStart opens a pipe table and writes its header row plus the separator
// row. The separator dash count per column is the header's display width + 2,
// matching the cell's surrounding spaces. Table state is tracked even inside
// a filtered-out section so a later active section cannot be confused about
// what operation may legally follow.
func (w *Writer) TableStart(headers ...string) error {
	if w.err != nil {
		return w.err
	}
	if w.inTable {
		w.err = ErrTableAlreadyOpen
		return w.err
	}
	w.inTable = true
	w.tableCols = len(headers)
	if !w.active {
		return nil
	}
	w.blockSep()
	cells := make([]string, len(headers))
	dashes := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = textutil.Cell(h)
		dashes[i] = strings.Repeat("-", runewidth.StringWidth(cells[i])+2)
	}
	w.print("| " + strings.Join(cells, " | ") + " |\n")
	w.print("|" + strings.Join(dashes, "|") + "|\n")
	w.wroteAny = true
	return w.err
}

// TableRow writes one data row. Calling it without an open table is a fatal
// usage error. Missing cells render empty; extra cells are dropped so the row
// always matches the header's column count.
func (w *Writer) TableRow(cells ...string) error {
	if w.err != nil {
		return w.err
	}
	if !w.inTable {
		w.err = ErrNoOpenTable
		return w.err
	}
	if !w.active {
		return nil
	}
	row := make([]string, w.tableCols)
	for i := range row {
		if i < len(cells) {
			row[i] = textutil.Cell(cells[i])
		}
	}
	w.print("| " + strings.Join(row, " | ") + " |\n")
	w.wroteAny = true
	return w.err
}

// TableEnd closes the open table.
func (w *Writer) TableEnd() error {
	if w.err != nil {
		return w.err
	}
	if !w.inTable {
		w.err = ErrNoOpenTable
		return w.err
	}
	w.inTable = false
	w.tableCols = 0
	if !w.active {
		return nil
	}
	w.pendingBlank = true
	return w.err
}
