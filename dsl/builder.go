package dsl

import (
	"fmt"

	structdown "github.com/structdown/structdown"
)

// ---- field type references ----

// String returns a string scalar reference.
func String() structdown.TypeRef { return structdown.ScalarRef(structdown.ScalarString) }

// Bool returns a bool scalar reference.
func Bool() structdown.TypeRef { return structdown.ScalarRef(structdown.ScalarBool) }

// Int32 returns an int32 scalar reference.
func Int32() structdown.TypeRef { return structdown.ScalarRef(structdown.ScalarInt32) }

// Int64 returns an int64 scalar reference.
func Int64() structdown.TypeRef { return structdown.ScalarRef(structdown.ScalarInt64) }

// Float64 returns a float64 scalar reference.
func Float64() structdown.TypeRef { return structdown.ScalarRef(structdown.ScalarFloat64) }

// Decimal returns an exact-decimal scalar reference.
func Decimal() structdown.TypeRef { return structdown.ScalarRef(structdown.ScalarDecimal) }

// DateTime returns a zone-less datetime scalar reference.
func DateTime() structdown.TypeRef { return structdown.ScalarRef(structdown.ScalarDateTime) }

// DateTimeOffset returns an offset-carrying datetime scalar reference.
func DateTimeOffset() structdown.TypeRef {
	return structdown.ScalarRef(structdown.ScalarDateTimeOffset)
}

// Nullable wraps a scalar reference in a nullable container. The wrapper
// collapses to the underlying scalar during classification.
func Nullable(ref structdown.TypeRef) structdown.TypeRef {
	ref.Nullable = true
	return ref
}

// Slice returns a sequence reference over elem.
func Slice(elem structdown.TypeRef) structdown.TypeRef { return structdown.SequenceRef(elem) }

// Record returns a reference to a registered record type by name.
func Record(name string) structdown.TypeRef { return structdown.RecordRef(name) }

// Map returns a dictionary reference. Dictionaries are always unsupported for
// rendering; the reference exists so descriptors can state them honestly and
// receive the dedicated diagnostic.
func Map(elem structdown.TypeRef) structdown.TypeRef { return structdown.MapRef(elem) }

// ---- type builder ----

// TypeBuilder assembles one TypeDescriptor.
type TypeBuilder struct {
	d   structdown.TypeDescriptor
	err error
}

// fieldStep scopes chained modifiers to the most recently added field.
type fieldStep struct {
	b *TypeBuilder
}

// Type starts a builder for the named record type.
func Type(name string) *TypeBuilder {
	b := &TypeBuilder{}
	b.d.Name = name
	if name == "" {
		b.err = fmt.Errorf("dsl: type name must not be empty")
	}
	return b
}

// ValueType marks the type as a value type.
func (b *TypeBuilder) ValueType() *TypeBuilder {
	b.d.ValueType = true
	return b
}

// Title declares the field whose value becomes the document title when the
// type is a render root.
func (b *TypeBuilder) Title(field string) *TypeBuilder {
	b.d.TitleField = field
	return b
}

// TitleContext declares the field rendered as the title's context suffix.
func (b *TypeBuilder) TitleContext(field string) *TypeBuilder {
	b.d.TitleContextField = field
	return b
}

// Field appends a field with its type reference. Declaration order is
// preserved and becomes the column/field order in output.
func (b *TypeBuilder) Field(name string, ref structdown.TypeRef) *fieldStep {
	if name == "" {
		b.err = fmt.Errorf("dsl: field name must not be empty (type %s)", b.d.Name)
	}
	for _, f := range b.d.Fields {
		if f.Name == name {
			b.err = fmt.Errorf("dsl: duplicate field %q on type %s", name, b.d.Name)
		}
	}
	b.d.Fields = append(b.d.Fields, structdown.FieldDescriptor{Name: name, Type: ref})
	return &fieldStep{b: b}
}

func (f *fieldStep) last() *structdown.FieldDescriptor {
	return &f.b.d.Fields[len(f.b.d.Fields)-1]
}

// Display overrides the field's display name.
func (f *fieldStep) Display(name string) *fieldStep {
	f.last().Display = name
	return f
}

// Exclude removes the field from all output.
func (f *fieldStep) Exclude() *fieldStep {
	f.last().Exclude = true
	return f
}

// ExcludeInTable keeps the field in documents but drops it from table rows.
func (f *fieldStep) ExcludeInTable() *fieldStep {
	f.last().ExcludeInTable = true
	return f
}

// Section renders the field as an independent subsection instead of a cell
// or inline value; this exempts it from table-context diagnostics.
func (f *fieldStep) Section() *fieldStep {
	f.last().Section = true
	return f
}

// SectionNamed sections the field under the given heading text.
func (f *fieldStep) SectionNamed(name string) *fieldStep {
	f.last().Section = true
	f.last().SectionName = name
	return f
}

// SectionDepth overrides the section's heading depth (1-6).
func (f *fieldStep) SectionDepth(depth int) *fieldStep {
	f.last().Section = true
	f.last().SectionDepth = depth
	return f
}

// Field continues the chain with the next field.
func (f *fieldStep) Field(name string, ref structdown.TypeRef) *fieldStep {
	return f.b.Field(name, ref)
}

// Build finalizes the descriptor.
func (f *fieldStep) Build() (*structdown.TypeDescriptor, error) { return f.b.Build() }

// MustBuild finalizes the descriptor, panicking on builder misuse.
func (f *fieldStep) MustBuild() *structdown.TypeDescriptor { return f.b.MustBuild() }

// Build finalizes the descriptor.
func (b *TypeBuilder) Build() (*structdown.TypeDescriptor, error) {
	if b.err != nil {
		return nil, b.err
	}
	d := b.d
	return &d, nil
}

// MustBuild finalizes the descriptor, panicking on builder misuse.
func (b *TypeBuilder) MustBuild() *structdown.TypeDescriptor {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

// ---- registry builder ----

// RegistryBuilder assembles a Registry from built descriptors.
type RegistryBuilder struct {
	reg *structdown.Registry
	err error
}

// NewRegistry starts an empty registry builder.
func NewRegistry() *RegistryBuilder {
	return &RegistryBuilder{reg: structdown.NewRegistry()}
}

// Add registers a descriptor.
func (rb *RegistryBuilder) Add(d *structdown.TypeDescriptor) *RegistryBuilder {
	if rb.err == nil {
		rb.err = rb.reg.Add(d)
	}
	return rb
}

// Root declares one or more render roots.
func (rb *RegistryBuilder) Root(names ...string) *RegistryBuilder {
	for _, n := range names {
		if rb.err != nil {
			return rb
		}
		rb.err = rb.reg.AddRoot(n)
	}
	return rb
}

// Build finalizes the registry.
func (rb *RegistryBuilder) Build() (*structdown.Registry, error) {
	if rb.err != nil {
		return nil, rb.err
	}
	return rb.reg, nil
}

// MustBuild finalizes the registry, panicking on builder misuse.
func (rb *RegistryBuilder) MustBuild() *structdown.Registry {
	reg, err := rb.Build()
	if err != nil {
		panic(err)
	}
	return reg
}
