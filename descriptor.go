package structdown

import (
	"fmt"
	"strings"
)

// RefKind identifies the declared shape of a field's type before
// classification.
type RefKind int

const (
	RefScalar RefKind = iota
	RefSequence
	RefRecord
	RefMap
	RefOpaque
)

// TypeRef describes the declared type of a field. It is the input vocabulary
// of the classifier; RenderingKind is its output vocabulary.
type TypeRef struct {
	Kind     RefKind
	Scalar   ScalarType // RefScalar
	Nullable bool       // Scalar wrapped in a nullable container; collapses before classification.
	Elem     *TypeRef   // RefSequence element, RefMap value.
	Record   string     // RefRecord: name of a registered type.
	Opaque   string     // RefOpaque: free-form description for diagnostics.
}

// ScalarRef builds a reference to a plain scalar.
func ScalarRef(st ScalarType) TypeRef { return TypeRef{Kind: RefScalar, Scalar: st} }

// NullableRef builds a reference to a nullable wrapper of a scalar.
func NullableRef(st ScalarType) TypeRef {
	return TypeRef{Kind: RefScalar, Scalar: st, Nullable: true}
}

// SequenceRef builds a reference to an array/slice/enumerable of elem.
func SequenceRef(elem TypeRef) TypeRef { return TypeRef{Kind: RefSequence, Elem: &elem} }

// RecordRef builds a reference to a registered record type by name.
func RecordRef(name string) TypeRef { return TypeRef{Kind: RefRecord, Record: name} }

// MapRef builds a reference to a dictionary with value type elem. Maps are
// always unsupported for rendering; the dedicated reference exists so the
// classifier can emit the dictionary-specific diagnostic.
func MapRef(elem TypeRef) TypeRef { return TypeRef{Kind: RefMap, Elem: &elem} }

// OpaqueRef builds a reference to a type the registry cannot describe.
func OpaqueRef(desc string) TypeRef { return TypeRef{Kind: RefOpaque, Opaque: desc} }

// String renders the reference in manifest syntax.
func (r TypeRef) String() string {
	switch r.Kind {
	case RefScalar:
		if r.Nullable {
			return r.Scalar.String() + "?"
		}
		return r.Scalar.String()
	case RefSequence:
		return "[]" + r.Elem.String()
	case RefRecord:
		return r.Record
	case RefMap:
		return "map[string]" + r.Elem.String()
	case RefOpaque:
		if r.Opaque != "" {
			return r.Opaque
		}
		return "opaque"
	default:
		return "ref(?)"
	}
}

// ParseTypeRef parses manifest type syntax: scalar names ("string", "int64",
// "datetime", ...), a trailing "?" for nullable scalars, "[]T" sequences,
// "map[string]T" dictionaries, and bare identifiers as record references.
func ParseTypeRef(s string) (TypeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeRef{}, fmt.Errorf("empty type expression")
	}
	if rest, ok := strings.CutPrefix(s, "[]"); ok {
		elem, err := ParseTypeRef(rest)
		if err != nil {
			return TypeRef{}, err
		}
		return SequenceRef(elem), nil
	}
	if rest, ok := strings.CutPrefix(s, "map[string]"); ok {
		elem, err := ParseTypeRef(rest)
		if err != nil {
			return TypeRef{}, err
		}
		return MapRef(elem), nil
	}
	if base, ok := strings.CutSuffix(s, "?"); ok {
		st, known := ParseScalarType(base)
		if !known {
			return TypeRef{}, fmt.Errorf("nullable wrapper of non-scalar %q", base)
		}
		return NullableRef(st), nil
	}
	if st, ok := ParseScalarType(s); ok {
		return ScalarRef(st), nil
	}
	return RecordRef(s), nil
}

// FieldDescriptor is the annotation surface for one field.
type FieldDescriptor struct {
	Name    string
	Display string // Optional display-name override.
	Type    TypeRef

	Exclude        bool
	ExcludeInTable bool
	Section        bool
	SectionName    string
	SectionDepth   int
}

// TypeDescriptor is the annotation surface for one record type.
type TypeDescriptor struct {
	Name              string
	ValueType         bool
	TitleField        string
	TitleContextField string
	Fields            []FieldDescriptor
}

// Registry is the closed universe of known types for one classification run.
// It is caller-supplied and explicit; the classifier never consults global
// state.
type Registry struct {
	order []string
	types map[string]*TypeDescriptor
	roots []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: map[string]*TypeDescriptor{}}
}

// Add registers a type descriptor. Registering the same name twice is an
// error.
func (r *Registry) Add(d *TypeDescriptor) error {
	if d == nil || d.Name == "" {
		return fmt.Errorf("registry: descriptor must have a name")
	}
	if _, dup := r.types[d.Name]; dup {
		return fmt.Errorf("registry: duplicate type %q", d.Name)
	}
	r.types[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// AddRoot marks a registered type as a render root.
func (r *Registry) AddRoot(name string) error {
	if _, ok := r.types[name]; !ok {
		return fmt.Errorf("registry: unknown root type %q", name)
	}
	for _, existing := range r.roots {
		if existing == name {
			return nil
		}
	}
	r.roots = append(r.roots, name)
	return nil
}

// Lookup returns the descriptor for name.
func (r *Registry) Lookup(name string) (*TypeDescriptor, bool) {
	d, ok := r.types[name]
	return d, ok
}

// Types returns all registered type names in registration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Roots returns the declared render roots in declaration order.
func (r *Registry) Roots() []string {
	out := make([]string, len(r.roots))
	copy(out, r.roots)
	return out
}
