// Package textutil holds small text-sanitization helpers shared by the
// Markdown writer and the renderer. Internal; not part of the public API.
package textutil

import "strings"

var cellEscaper = strings.NewReplacer(
	"|", "\\|",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// Cell flattens a value onto a single line and escapes pipes so it cannot
// break out of a table cell.
func Cell(s string) string {
	return cellEscaper.Replace(s)
}

// Line strips line breaks from text destined for a single-line construct
// such as a heading or a field value.
func Line(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
