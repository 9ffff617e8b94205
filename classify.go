package structdown

import (
	"fmt"

	"github.com/structdown/structdown/i18n"
)

// DefaultMaxDepth caps recursive classification. The type graph is static, so
// the cap only guards against pathological self-referential registries.
const DefaultMaxDepth = 32

// ClassifyOpt bundles classification options.
type ClassifyOpt struct {
	// TableCellPolicy is the severity attached to the "non-scalar field in a
	// table row" diagnostic. Zero value means Warn. Policy lives here, not in
	// the classifier: Ignore suppresses the diagnostic but never changes the
	// field's RenderingKind, so emitters still skip the cell instead of
	// printing an opaque value.
	TableCellPolicy Severity

	// MaxDepth caps recursion through nested records and sequences.
	// Zero value means DefaultMaxDepth.
	MaxDepth int
}

func (o ClassifyOpt) tablePolicy() Severity {
	if o.TableCellPolicy == severityUnset {
		return Warn
	}
	return o.TableCellPolicy
}

func (o ClassifyOpt) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

type memoKey struct {
	name     string
	tableRow bool
}

// run owns the caches for one classification pass. Caches are never shared
// across runs; independent render jobs each get a fresh run.
type run struct {
	reg     *Registry
	opt     ClassifyOpt
	memo    map[memoKey]*TypeShape
	seqElem map[string]bool
	diags   Diagnostics
}

// Classify classifies the named type against the registry and returns its
// shape for the context the registry implies: a type used anywhere as a
// sequence element is classified under table-row rules.
//
// Classification is best-effort: unsupported shapes surface as diagnostics,
// never as a failed run. The returned error is reserved for caller mistakes
// (unknown root type).
func Classify(reg *Registry, name string, opt ClassifyOpt) (*TypeShape, Diagnostics, error) {
	if _, ok := reg.Lookup(name); !ok {
		return nil, nil, fmt.Errorf("classify: unknown type %q", name)
	}
	r := newRun(reg, opt)
	shape := r.classify(name, r.usedAsSequenceElement(name), 0)
	return shape, r.diags, nil
}

// ClassifyAll classifies every declared root and returns the shapes in root
// declaration order together with the flat diagnostic list of the whole run.
func ClassifyAll(reg *Registry, opt ClassifyOpt) ([]*TypeShape, Diagnostics, error) {
	roots := reg.Roots()
	if len(roots) == 0 {
		roots = reg.Types()
	}
	r := newRun(reg, opt)
	shapes := make([]*TypeShape, 0, len(roots))
	for _, name := range roots {
		if _, ok := reg.Lookup(name); !ok {
			return nil, nil, fmt.Errorf("classify: unknown type %q", name)
		}
		shapes = append(shapes, r.classify(name, r.usedAsSequenceElement(name), 0))
	}
	return shapes, r.diags, nil
}

func newRun(reg *Registry, opt ClassifyOpt) *run {
	return &run{
		reg:     reg,
		opt:     opt,
		memo:    map[memoKey]*TypeShape{},
		seqElem: map[string]bool{},
	}
}

// usedAsSequenceElement reports whether target appears as the element type of
// a sequence field anywhere in the registry. The scan is linear over all
// fields of all types and cached per target for the duration of the run.
func (r *run) usedAsSequenceElement(target string) bool {
	if v, ok := r.seqElem[target]; ok {
		return v
	}
	found := false
	for _, name := range r.reg.Types() {
		d, _ := r.reg.Lookup(name)
		for _, f := range d.Fields {
			if f.Type.Kind == RefSequence && f.Type.Elem.Kind == RefRecord && f.Type.Elem.Record == target {
				found = true
			}
		}
	}
	r.seqElem[target] = found
	return found
}

// classify builds the TypeShape of name in the given context. Memoized per
// (type, context) pair: a type used both nested and inside a sequence yields
// two shapes, because table-context constraints differ.
func (r *run) classify(name string, tableRow bool, depth int) *TypeShape {
	key := memoKey{name: name, tableRow: tableRow}
	if s, ok := r.memo[key]; ok {
		return s
	}
	d, _ := r.reg.Lookup(name)
	shape := &TypeShape{
		Name:              name,
		IsTableRow:        tableRow,
		ValueType:         d.ValueType,
		TitleField:        d.TitleField,
		TitleContextField: d.TitleContextField,
	}
	// Install before recursing so self-referential types terminate.
	r.memo[key] = shape

	for _, fd := range d.Fields {
		plan := FieldPlan{
			Owner:           name,
			Name:            fd.Name,
			Display:         fd.Name,
			Excluded:        fd.Exclude,
			ExcludedInTable: fd.ExcludeInTable,
			Sectioned:       fd.Section,
			SectionName:     fd.SectionName,
			SectionDepth:    fd.SectionDepth,
		}
		if fd.Display != "" {
			plan.Display = fd.Display
		}
		plan.Kind = r.classifyField(shape, fd, depth)
		r.checkTableCell(shape, &plan)
		shape.Fields = append(shape.Fields, plan)
	}
	return shape
}

// classifyField resolves one field's RenderingKind following the fixed
// precedence: nullable unwrap, scalar, string sequence, record sequence,
// nested record, unsupported.
func (r *run) classifyField(owner *TypeShape, fd FieldDescriptor, depth int) RenderingKind {
	if depth >= r.opt.maxDepth() {
		return r.unsupported(owner, fd, CodeUnsupportedShape, Warn)
	}
	ref := fd.Type
	switch ref.Kind {
	case RefScalar:
		// Nullable wrappers collapse to the wrapped scalar before
		// classification; Nullable only affects value formatting.
		return ScalarKind(ref.Scalar)

	case RefSequence:
		elem := *ref.Elem
		switch {
		case elem.Kind == RefScalar && elem.Scalar == ScalarString && !elem.Nullable:
			return RenderingKind{Kind: KindStringSequence}
		case elem.Kind == RefRecord:
			es, ok := r.elementShape(elem.Record, depth)
			if !ok {
				return r.unsupported(owner, fd, CodeUnknownType, Warn)
			}
			return RenderingKind{Kind: KindRecordSequence, Element: es}
		default:
			// Sequences of sequences, maps, or non-string scalars have no
			// single rendering strategy.
			return r.unsupported(owner, fd, CodeUnsupportedShape, Warn)
		}

	case RefRecord:
		d, ok := r.reg.Lookup(ref.Record)
		if !ok {
			return r.unsupported(owner, fd, CodeUnknownType, Warn)
		}
		if len(d.Fields) == 0 {
			return r.unsupported(owner, fd, CodeEmptyRecord, Warn)
		}
		nested := r.classify(ref.Record, r.usedAsSequenceElement(ref.Record), depth+1)
		return RenderingKind{Kind: KindNestedRecord, Record: nested}

	case RefMap:
		return r.unsupported(owner, fd, CodeDictionaryNotSupported, Warn)

	default:
		return r.unsupported(owner, fd, CodeUnsupportedShape, Warn)
	}
}

// elementShape classifies a sequence's element type under table-row rules and
// derives the HasNestedContent strategy hint.
func (r *run) elementShape(elemName string, depth int) (*ElementShape, bool) {
	if _, ok := r.reg.Lookup(elemName); !ok {
		return nil, false
	}
	shape := r.classify(elemName, true, depth+1)
	es := &ElementShape{Shape: shape}
	for _, f := range shape.Fields {
		if f.Excluded {
			continue
		}
		if f.Kind.Kind == KindNestedRecord || f.Kind.Kind == KindRecordSequence {
			es.HasNestedContent = true
			break
		}
	}
	return es, true
}

// checkTableCell enforces the table-context constraint: a non-scalar field of
// a table-row type must be excluded or sectioned, otherwise it cannot fit a
// two-dimensional cell.
func (r *run) checkTableCell(owner *TypeShape, plan *FieldPlan) {
	if !owner.IsTableRow || plan.Kind.IsScalar() {
		return
	}
	if plan.Excluded || plan.ExcludedInTable || plan.Sectioned {
		return
	}
	sev := r.opt.tablePolicy()
	if sev == Ignore {
		return
	}
	d := Diagnostic{
		Type:     owner.Name,
		Field:    plan.Name,
		Code:     CodeUnsupportedInTable,
		Severity: sev,
		Shape:    plan.Kind.Kind.String(),
		Message: fmt.Sprintf("field %s of type %s %s", plan.Name, owner.Name,
			i18n.T(CodeUnsupportedInTable, nil)),
		Params: map[string]any{"kind": plan.Kind.Kind.String()},
	}
	owner.Diags = AppendDiagnostics(owner.Diags, d)
	r.diags = AppendDiagnostics(r.diags, d)
}

// unsupported records a shape diagnostic and returns the Unsupported kind.
func (r *run) unsupported(owner *TypeShape, fd FieldDescriptor, code string, sev Severity) RenderingKind {
	d := Diagnostic{
		Type:     owner.Name,
		Field:    fd.Name,
		Code:     code,
		Severity: sev,
		Shape:    fd.Type.String(),
		Message: fmt.Sprintf("field %s of type %s (%s): %s", fd.Name, owner.Name,
			fd.Type.String(), i18n.T(code, nil)),
		Params: map[string]any{"shape": fd.Type.String()},
	}
	owner.Diags = AppendDiagnostics(owner.Diags, d)
	r.diags = AppendDiagnostics(r.diags, d)
	return RenderingKind{Kind: KindUnsupported}
}
