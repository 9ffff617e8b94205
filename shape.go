package structdown

// FieldPlan is the per-field slice of a classification result: what the field
// is called, how it renders, and the annotation-driven flags the emitter must
// honor.
type FieldPlan struct {
	Owner   string // Owning type name.
	Name    string // Declared field name.
	Display string // Display name; defaults to Name.
	Kind    RenderingKind

	Excluded        bool // Never rendered.
	ExcludedInTable bool // Rendered as a document field but dropped from table rows.
	Sectioned       bool // Rendered as an independent subsection, never as a cell.
	SectionName     string
	SectionDepth    int // Heading depth override; 0 means "parent depth + 1".
}

// Visible reports whether the field renders at all in the given context.
func (f FieldPlan) Visible(tableRow bool) bool {
	if f.Excluded {
		return false
	}
	if tableRow && f.ExcludedInTable {
		return false
	}
	return true
}

// TypeShape is the classification of one record type in one context. Field
// order is declaration order and is semantically meaningful: it is the column
// order in tables and the field order in documents.
type TypeShape struct {
	Name       string
	IsTableRow bool // True when the type is used as a sequence element.
	ValueType  bool

	// Title fields apply only when the type is a render root.
	TitleField        string
	TitleContextField string

	Fields []FieldPlan

	// Diags are the diagnostics attached to this shape, in field order.
	Diags Diagnostics
}

// Field returns the plan for the named field, or nil.
func (s *TypeShape) Field(name string) *FieldPlan {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// ElementShape is the shape of a sequence's element type together with the
// derived strategy hint for emitters.
type ElementShape struct {
	Shape *TypeShape

	// HasNestedContent is true iff any non-excluded field of the element is a
	// nested record or a record sequence. Emitters use it to choose between
	// "render as table" and "render each element as its own subsection".
	HasNestedContent bool
}
