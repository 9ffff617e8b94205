// Package md implements the streaming Markdown writer: a single-pass state
// machine that turns semantic operations (heading, field, array, table, tree)
// into well-formed Markdown while tracking blank-line placement, section
// numbering, and table well-formedness.
package md

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/structdown/structdown/internal/textutil"
)

// Sentinel errors for contract violations. These are usage errors, not data
// errors: the writer stops emitting after the first one.
var (
	ErrInvalidHeadingLevel = errors.New("heading level outside 1-6")
	ErrNoOpenTable         = errors.New("table operation without open table")
	ErrTableAlreadyOpen    = errors.New("table start inside open table")
)

// Options configures a Writer for one output.
type Options struct {
	// HardLineBreaks appends two trailing spaces to field lines so Markdown
	// renderers treat consecutive fields as hard-broken lines of one block.
	HardLineBreaks bool

	// IncludeSections restricts output to the listed 1-based section numbers.
	// Empty means all sections. Section 0 (content before the first level-2
	// heading) is always emitted.
	IncludeSections []int

	// ExcludeSections drops the listed section numbers. Exclusion wins over
	// inclusion.
	ExcludeSections []int
}

// Writer is a mutable, single-pass Markdown emitter. It owns its state
// exclusively; one Writer serves exactly one logical render.
type Writer struct {
	out     io.Writer
	opt     Options
	include map[int]struct{}
	exclude map[int]struct{}

	wroteAny     bool // any line emitted yet
	pendingBlank bool // a blank line is owed before the next content
	section      int  // current section number; 0 before the first H2
	active       bool // current section passes the filter
	inTable      bool
	tableCols    int
	err          error
}

// NewWriter returns a Writer emitting to out. Behavior is identical whether
// out is an in-memory buffer or a streaming sink.
func NewWriter(out io.Writer, opt Options) *Writer {
	w := &Writer{out: out, opt: opt, active: true}
	if len(opt.IncludeSections) > 0 {
		w.include = map[int]struct{}{}
		for _, n := range opt.IncludeSections {
			w.include[n] = struct{}{}
		}
	}
	if len(opt.ExcludeSections) > 0 {
		w.exclude = map[int]struct{}{}
		for _, n := range opt.ExcludeSections {
			w.exclude[n] = struct{}{}
		}
	}
	return w
}

// Err returns the first usage or sink error, if any. After an error every
// subsequent operation is a no-op returning the same error.
func (w *Writer) Err() error { return w.err }

// Section returns the current 1-based section number (0 before the first
// level-2 heading).
func (w *Writer) Section() int { return w.section }

// sectionActive recomputes the filter verdict for section n. Section 0 is
// never filterable.
func (w *Writer) sectionActive(n int) bool {
	if n == 0 {
		return true
	}
	if _, drop := w.exclude[n]; drop {
		return false
	}
	if w.include == nil {
		return true
	}
	_, keep := w.include[n]
	return keep
}

func (w *Writer) print(s string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.out, s); err != nil {
		w.err = err
	}
}

// flushPending emits the owed blank line before a line-level operation.
func (w *Writer) flushPending() {
	if w.pendingBlank {
		w.print("\n")
		w.pendingBlank = false
	}
}

// blockSep separates a block-level operation from any prior content with
// exactly one blank line. At the start of output it emits nothing.
func (w *Writer) blockSep() {
	if w.wroteAny {
		w.print("\n")
	}
	w.pendingBlank = false
}

// Heading writes a level 1-6 heading, optionally suffixed with " (context)".
// A level-2 heading starts a new section and re-evaluates the section filter.
func (w *Writer) Heading(level int, text, context string) error {
	if w.err != nil {
		return w.err
	}
	if level < 1 || level > 6 {
		w.err = fmt.Errorf("%w: %d", ErrInvalidHeadingLevel, level)
		return w.err
	}
	if level == 2 {
		w.section++
		w.active = w.sectionActive(w.section)
	}
	if !w.active {
		return nil
	}
	w.blockSep()
	line := strings.Repeat("#", level) + " " + textutil.Line(text)
	if context != "" {
		line += " (" + textutil.Line(context) + ")"
	}
	w.print(line + "\n")
	w.wroteAny = true
	w.pendingBlank = true
	return w.err
}

// Paragraph writes a free-text paragraph.
func (w *Writer) Paragraph(text string) error {
	if w.err != nil {
		return w.err
	}
	if !w.active {
		return nil
	}
	w.blockSep()
	w.print(text + "\n")
	w.wroteAny = true
	w.pendingBlank = true
	return w.err
}

// Field writes a "Key: value" line. Consecutive fields form one block with no
// blank lines between them; with HardLineBreaks each line carries two
// trailing spaces.
func (w *Writer) Field(key, value string) error {
	if w.err != nil {
		return w.err
	}
	if !w.active {
		return nil
	}
	w.flushPending()
	line := textutil.Line(key) + ": " + textutil.Line(value)
	if w.opt.HardLineBreaks {
		line += "  "
	}
	w.print(line + "\n")
	w.wroteAny = true
	return w.err
}

// StringArray writes an optional "Key:" line followed by "- item" bullets.
func (w *Writer) StringArray(key string, items []string) error {
	if w.err != nil {
		return w.err
	}
	if !w.active {
		return nil
	}
	w.blockSep()
	if key != "" {
		w.print(textutil.Line(key) + ":\n")
	}
	for _, item := range items {
		w.print("- " + textutil.Line(item) + "\n")
	}
	w.wroteAny = true
	w.pendingBlank = true
	return w.err
}

// BlankLine forces a single blank line.
func (w *Writer) BlankLine() error {
	if w.err != nil {
		return w.err
	}
	if !w.active {
		return nil
	}
	if w.wroteAny {
		w.print("\n")
	}
	w.pendingBlank = false
	return w.err
}
