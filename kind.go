package structdown

// ScalarType enumerates the field types with a direct, lossless, single-line
// text representation.
type ScalarType int

const (
	ScalarString ScalarType = iota
	ScalarBool
	ScalarInt32
	ScalarInt64
	ScalarFloat64
	ScalarDecimal
	ScalarDateTime       // local/zone-less instant, rendered in UTC
	ScalarDateTimeOffset // instant with explicit offset, offset preserved
)

var scalarNames = map[ScalarType]string{
	ScalarString:         "string",
	ScalarBool:           "bool",
	ScalarInt32:          "int32",
	ScalarInt64:          "int64",
	ScalarFloat64:        "float64",
	ScalarDecimal:        "decimal",
	ScalarDateTime:       "datetime",
	ScalarDateTimeOffset: "datetime-offset",
}

// String returns the canonical scalar name used by manifests and exports.
func (s ScalarType) String() string {
	if n, ok := scalarNames[s]; ok {
		return n
	}
	return "scalar(?)"
}

// ParseScalarType resolves a canonical scalar name. ok is false for unknown
// names.
func ParseScalarType(name string) (ScalarType, bool) {
	for st, n := range scalarNames {
		if n == name {
			return st, true
		}
	}
	return 0, false
}

// Kind identifies a rendering strategy. The set is closed; emitters switch
// exhaustively on it.
type Kind int

const (
	KindScalar Kind = iota
	KindStringSequence
	KindRecordSequence
	KindNestedRecord
	KindUnsupported
)

// String returns the kind name used in exports and diagnostics.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindStringSequence:
		return "string-sequence"
	case KindRecordSequence:
		return "record-sequence"
	case KindNestedRecord:
		return "nested-record"
	case KindUnsupported:
		return "unsupported"
	default:
		return "kind(?)"
	}
}

// RenderingKind is the classification result for one field. Exactly one
// payload is populated, matching Kind:
//
//	KindScalar         -> Scalar
//	KindRecordSequence -> Element
//	KindNestedRecord   -> Record
//
// KindStringSequence and KindUnsupported carry no payload.
type RenderingKind struct {
	Kind    Kind
	Scalar  ScalarType
	Element *ElementShape
	Record  *TypeShape
}

// ScalarKind builds a scalar RenderingKind.
func ScalarKind(st ScalarType) RenderingKind {
	return RenderingKind{Kind: KindScalar, Scalar: st}
}

// IsScalar reports whether the field renders on a single line and is
// therefore safe inside a table cell.
func (k RenderingKind) IsScalar() bool { return k.Kind == KindScalar }
