package structdown

import (
	gojson "github.com/goccy/go-json"
)

// PlanExport is the stable JSON projection of a TypeShape for downstream
// tooling. Keep this struct small and extend incrementally.
type PlanExport struct {
	Name       string        `json:"name"`
	TableRow   bool          `json:"tableRow,omitempty"`
	ValueType  bool          `json:"valueType,omitempty"`
	TitleField string        `json:"titleField,omitempty"`
	Fields     []FieldExport `json:"fields"`
}

type FieldExport struct {
	Name     string      `json:"name"`
	Display  string      `json:"display,omitempty"`
	Kind     string      `json:"kind"`
	Scalar   string      `json:"scalar,omitempty"`
	Element  *PlanExport `json:"element,omitempty"`
	Record   *PlanExport `json:"record,omitempty"`
	Excluded bool        `json:"excluded,omitempty"`
	Section  bool        `json:"section,omitempty"`
}

// ExportPlan projects a shape into its export form. Self-referential shapes
// are cut at the repeated type with a name-only stub.
func ExportPlan(s *TypeShape) *PlanExport {
	return exportPlan(s, map[*TypeShape]bool{})
}

func exportPlan(s *TypeShape, seen map[*TypeShape]bool) *PlanExport {
	if s == nil {
		return nil
	}
	if seen[s] {
		return &PlanExport{Name: s.Name, TableRow: s.IsTableRow}
	}
	seen[s] = true
	defer delete(seen, s)
	out := &PlanExport{
		Name:       s.Name,
		TableRow:   s.IsTableRow,
		ValueType:  s.ValueType,
		TitleField: s.TitleField,
	}
	for _, f := range s.Fields {
		fe := FieldExport{
			Name:     f.Name,
			Kind:     f.Kind.Kind.String(),
			Excluded: f.Excluded,
			Section:  f.Sectioned,
		}
		if f.Display != f.Name {
			fe.Display = f.Display
		}
		switch f.Kind.Kind {
		case KindScalar:
			fe.Scalar = f.Kind.Scalar.String()
		case KindRecordSequence:
			fe.Element = exportPlan(f.Kind.Element.Shape, seen)
		case KindNestedRecord:
			fe.Record = exportPlan(f.Kind.Record, seen)
		}
		out.Fields = append(out.Fields, fe)
	}
	return out
}

// MarshalPlan renders a shape as indented JSON.
func MarshalPlan(s *TypeShape) ([]byte, error) {
	return gojson.MarshalIndent(ExportPlan(s), "", "  ")
}
