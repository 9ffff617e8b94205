package structdown_test

import (
	"testing"

	structdown "github.com/structdown/structdown"
)

const jsonManifest = `{
  "types": [
    {
      "name": "Invoice",
      "titleField": "Number",
      "fields": [
        {"name": "Number", "type": "string"},
        {"name": "Total", "type": "decimal"},
        {"name": "Paid", "type": "bool"},
        {"name": "Tags", "type": "[]string"},
        {"name": "Lines", "type": "[]Line"},
        {"name": "Notes", "type": "string?", "display": "Internal Notes", "excludeInTable": true}
      ]
    },
    {
      "name": "Line",
      "fields": [
        {"name": "SKU", "type": "string"},
        {"name": "Qty", "type": "int32"}
      ]
    }
  ],
  "roots": ["Invoice"]
}`

func TestRegistryFromJSON(t *testing.T) {
	reg, err := structdown.RegistryFromJSON([]byte(jsonManifest))
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if got := reg.Roots(); len(got) != 1 || got[0] != "Invoice" {
		t.Fatalf("unexpected roots: %v", got)
	}
	shape, diags, err := structdown.Classify(reg, "Invoice", structdown.ClassifyOpt{})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if k := shape.Field("Tags").Kind.Kind; k != structdown.KindStringSequence {
		t.Fatalf("Tags: expected string sequence, got %v", k)
	}
	if k := shape.Field("Lines").Kind.Kind; k != structdown.KindRecordSequence {
		t.Fatalf("Lines: expected record sequence, got %v", k)
	}
	notes := shape.Field("Notes")
	if notes.Display != "Internal Notes" || !notes.ExcludedInTable {
		t.Fatalf("Notes: display/exclusion flags not honored: %+v", notes)
	}
	if notes.Kind.Kind != structdown.KindScalar || notes.Kind.Scalar != structdown.ScalarString {
		t.Fatalf("Notes: nullable string must collapse to string, got %+v", notes.Kind)
	}
}

const yamlManifest = `
types:
  - name: Report
    fields:
      - name: Title
        type: string
      - name: Extras
        type: map[string]string
roots:
  - Report
`

func TestRegistryFromYAML(t *testing.T) {
	reg, err := structdown.RegistryFromYAML([]byte(yamlManifest))
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	_, diags, err := structdown.Classify(reg, "Report", structdown.ClassifyOpt{})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if len(diags) != 1 || diags[0].Code != structdown.CodeDictionaryNotSupported {
		t.Fatalf("expected dictionary diagnostic, got %v", diags)
	}
}

func TestParseTypeRef(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"string", "string"},
		{"int64?", "int64?"},
		{"[]string", "[]string"},
		{"[]Line", "[]Line"},
		{"map[string]Line", "map[string]Line"},
		{"Line", "Line"},
	}
	for _, c := range cases {
		ref, err := structdown.ParseTypeRef(c.in)
		if err != nil {
			t.Fatalf("parse %q: %v", c.in, err)
		}
		if got := ref.String(); got != c.want {
			t.Fatalf("parse %q: expected %q, got %q", c.in, c.want, got)
		}
	}

	if _, err := structdown.ParseTypeRef("Line?"); err == nil {
		t.Fatalf("nullable wrapper of a record must be rejected")
	}
	if _, err := structdown.ParseTypeRef(""); err == nil {
		t.Fatalf("empty type expression must be rejected")
	}
}

func TestRegistry_DuplicateTypeRejected(t *testing.T) {
	reg := structdown.NewRegistry()
	if err := reg.Add(&structdown.TypeDescriptor{Name: "A"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := reg.Add(&structdown.TypeDescriptor{Name: "A"}); err == nil {
		t.Fatalf("duplicate registration must fail")
	}
}
