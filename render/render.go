// Package render drives a md.Writer from a classification plan and a decoded
// object value. It is the runtime face of the emitter: the plan decides the
// strategy per field, the value supplies the content.
package render

import (
	"fmt"

	structdown "github.com/structdown/structdown"
	"github.com/structdown/structdown/codec"
	"github.com/structdown/structdown/md"
)

// Document renders value as a full document rooted at shape. The root heading
// is the value of the shape's title field when one is declared (the field is
// then consumed and not repeated as a "Key: value" line), optionally suffixed
// with the title-context field's value; otherwise the type name.
func Document(w *md.Writer, shape *structdown.TypeShape, value map[string]any) error {
	title := shape.Name
	context := ""
	consumed := map[string]bool{}
	if shape.TitleField != "" {
		if f := shape.Field(shape.TitleField); f != nil && f.Kind.IsScalar() {
			title = codec.Scalar(f.Kind.Scalar, value[f.Name])
			consumed[f.Name] = true
		}
	}
	if shape.TitleContextField != "" {
		if f := shape.Field(shape.TitleContextField); f != nil && f.Kind.IsScalar() {
			context = codec.Scalar(f.Kind.Scalar, value[f.Name])
			consumed[f.Name] = true
		}
	}
	if err := w.Heading(1, title, context); err != nil {
		return err
	}
	return fields(w, shape, value, 1, consumed)
}

// fields renders every visible field of shape at the given heading depth.
func fields(w *md.Writer, shape *structdown.TypeShape, value map[string]any, depth int, consumed map[string]bool) error {
	for _, f := range shape.Fields {
		if f.Excluded || consumed[f.Name] {
			continue
		}
		if err := field(w, f, value[f.Name], depth); err != nil {
			return err
		}
	}
	return w.Err()
}

func field(w *md.Writer, f structdown.FieldPlan, v any, depth int) error {
	if f.Sectioned {
		return section(w, f, v, depth)
	}
	switch f.Kind.Kind {
	case structdown.KindScalar:
		return w.Field(f.Display, codec.Scalar(f.Kind.Scalar, v))
	case structdown.KindStringSequence:
		return w.StringArray(f.Display, stringItems(v))
	case structdown.KindNestedRecord:
		return nestedRecord(w, f, v, depth)
	case structdown.KindRecordSequence:
		return recordSequence(w, f, v, depth)
	default:
		// Unsupported: diagnosed at classification time, skipped at render time.
		return nil
	}
}

// section renders an explicitly-sectioned field as an independent subsection,
// regardless of its kind.
func section(w *md.Writer, f structdown.FieldPlan, v any, depth int) error {
	name := f.SectionName
	if name == "" {
		name = f.Display
	}
	d := f.SectionDepth
	if d == 0 {
		d = depth + 1
	}
	switch f.Kind.Kind {
	case structdown.KindScalar:
		if err := w.Heading(d, name, ""); err != nil {
			return err
		}
		return w.Paragraph(codec.Scalar(f.Kind.Scalar, v))
	case structdown.KindStringSequence:
		if err := w.Heading(d, name, ""); err != nil {
			return err
		}
		return w.StringArray("", stringItems(v))
	case structdown.KindNestedRecord:
		if err := w.Heading(d, name, ""); err != nil {
			return err
		}
		return fields(w, f.Kind.Record, record(v), d, nil)
	case structdown.KindRecordSequence:
		if err := w.Heading(d, name, ""); err != nil {
			return err
		}
		es := f.Kind.Element
		if tabular(es) {
			return table(w, es, items(v))
		}
		return elements(w, es, items(v), d)
	default:
		return nil
	}
}

func nestedRecord(w *md.Writer, f structdown.FieldPlan, v any, depth int) error {
	d := depth + 1
	if d > 6 {
		d = 6
	}
	if err := w.Heading(d, f.Display, ""); err != nil {
		return err
	}
	return fields(w, f.Kind.Record, record(v), d, nil)
}

// recordSequence picks the strategy from the element shape: flat elements
// render as a table, elements with nested content render each as a
// subsection.
func recordSequence(w *md.Writer, f structdown.FieldPlan, v any, depth int) error {
	es := f.Kind.Element
	rows := items(v)
	d := depth + 1
	if d > 6 {
		d = 6
	}
	if err := w.Heading(d, f.Display, ""); err != nil {
		return err
	}
	if tabular(es) {
		return table(w, es, rows)
	}
	return elements(w, es, rows, d)
}

// tabular reports whether the element shape fits a table: no nested content
// and at least one legal column.
func tabular(es *structdown.ElementShape) bool {
	return !es.HasNestedContent && len(tableColumns(es.Shape)) > 0
}

// table renders a record sequence as one pipe table: one column per visible
// scalar field, one row per element in input order.
func table(w *md.Writer, es *structdown.ElementShape, rows []map[string]any) error {
	cols := tableColumns(es.Shape)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Display
	}
	if err := w.TableStart(headers...); err != nil {
		return err
	}
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = codec.Scalar(c.Kind.Scalar, row[c.Name])
		}
		if err := w.TableRow(cells...); err != nil {
			return err
		}
	}
	return w.TableEnd()
}

// tableColumns returns the element fields that may legally occupy a cell:
// visible-in-table scalars, in declaration order.
func tableColumns(shape *structdown.TypeShape) []structdown.FieldPlan {
	var cols []structdown.FieldPlan
	for _, f := range shape.Fields {
		if !f.Visible(true) || f.Sectioned {
			continue
		}
		if f.Kind.IsScalar() {
			cols = append(cols, f)
		}
	}
	return cols
}

// elements renders each sequence element as its own subsection, titled by the
// element's title field when declared, else by its 1-based position.
func elements(w *md.Writer, es *structdown.ElementShape, rows []map[string]any, depth int) error {
	d := depth + 1
	if d > 6 {
		d = 6
	}
	for i, row := range rows {
		title := fmt.Sprintf("%d", i+1)
		consumed := map[string]bool{}
		if es.Shape.TitleField != "" {
			if f := es.Shape.Field(es.Shape.TitleField); f != nil && f.Kind.IsScalar() {
				if s := codec.Scalar(f.Kind.Scalar, row[f.Name]); s != "" {
					title = s
					consumed[f.Name] = true
				}
			}
		}
		if err := w.Heading(d, title, ""); err != nil {
			return err
		}
		if err := fields(w, es.Shape, row, d, consumed); err != nil {
			return err
		}
	}
	return w.Err()
}

// ---- value coercion helpers ----

func record(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func items(v any) []map[string]any {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(seq))
	for _, el := range seq {
		out = append(out, record(el))
	}
	return out
}

func stringItems(v any) []string {
	switch seq := v.(type) {
	case []string:
		return seq
	case []any:
		out := make([]string, 0, len(seq))
		for _, el := range seq {
			if s, ok := el.(string); ok {
				out = append(out, s)
			} else if el != nil {
				out = append(out, fmt.Sprintf("%v", el))
			}
		}
		return out
	default:
		return nil
	}
}
