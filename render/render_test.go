package render_test

import (
	"bytes"
	"strings"
	"testing"

	structdown "github.com/structdown/structdown"
	"github.com/structdown/structdown/dsl"
	"github.com/structdown/structdown/md"
	"github.com/structdown/structdown/render"
)

func classify(t *testing.T, reg *structdown.Registry, root string) *structdown.TypeShape {
	t.Helper()
	shape, _, err := structdown.Classify(reg, root, structdown.ClassifyOpt{})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	return shape
}

func renderDoc(t *testing.T, shape *structdown.TypeShape, value map[string]any, opt md.Options) string {
	t.Helper()
	var buf bytes.Buffer
	w := md.NewWriter(&buf, opt)
	if err := render.Document(w, shape, value); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestDocument_TitleFieldConsumed(t *testing.T) {
	reg := dsl.NewRegistry().
		Add(dsl.Type("Person").
			Title("Name").
			Field("Name", dsl.String()).
			Field("Age", dsl.Int32()).
			MustBuild()).
		MustBuild()
	shape := classify(t, reg, "Person")

	out := renderDoc(t, shape, map[string]any{"Name": "Ada", "Age": float64(36)}, md.Options{})
	if !strings.HasPrefix(out, "# Ada\n") {
		t.Fatalf("title field must become the document heading:\n%s", out)
	}
	if strings.Contains(out, "Name:") {
		t.Fatalf("title field must not repeat as a field line:\n%s", out)
	}
	if !strings.Contains(out, "Age: 36") {
		t.Fatalf("remaining fields must render:\n%s", out)
	}
}

func TestDocument_TitleContextSuffix(t *testing.T) {
	reg := dsl.NewRegistry().
		Add(dsl.Type("Person").
			Title("Name").TitleContext("Team").
			Field("Name", dsl.String()).
			Field("Team", dsl.String()).
			MustBuild()).
		MustBuild()
	shape := classify(t, reg, "Person")

	out := renderDoc(t, shape, map[string]any{"Name": "Ada", "Team": "Engines"}, md.Options{})
	if !strings.HasPrefix(out, "# Ada (Engines)\n") {
		t.Fatalf("title context must render as a suffix:\n%s", out)
	}
}

func TestDocument_FlatSequenceRendersAsTable(t *testing.T) {
	reg := dsl.NewRegistry().
		Add(dsl.Type("Board").
			Field("Rows", dsl.Slice(dsl.Record("Row"))).
			MustBuild()).
		Add(dsl.Type("Row").
			Field("Id", dsl.String()).
			Field("Score", dsl.Int64()).
			MustBuild()).
		MustBuild()
	shape := classify(t, reg, "Board")

	out := renderDoc(t, shape, map[string]any{
		"Rows": []any{
			map[string]any{"Id": "a1", "Score": float64(95)},
			map[string]any{"Id": "a2", "Score": float64(87)},
		},
	}, md.Options{})

	for _, want := range []string{
		"| Id | Score |\n",
		"|----|-------|\n",
		"| a1 | 95 |\n",
		"| a2 | 87 |\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "| a1 |") > strings.Index(out, "| a2 |") {
		t.Fatalf("rows must keep input order:\n%s", out)
	}
}

func TestDocument_NestedElementsRenderAsSubsections(t *testing.T) {
	// Line has a record-sequence field, so Lines cannot be a table: each
	// element becomes its own subsection instead.
	reg := dsl.NewRegistry().
		Add(dsl.Type("Invoice").
			Field("Lines", dsl.Slice(dsl.Record("Line"))).
			MustBuild()).
		Add(dsl.Type("Line").
			Title("SKU").
			Field("SKU", dsl.String()).
			Field("Adjustments", dsl.Slice(dsl.Record("Adjustment"))).Section().
			MustBuild()).
		Add(dsl.Type("Adjustment").
			Field("Reason", dsl.String()).
			Field("Amount", dsl.Decimal()).
			MustBuild()).
		MustBuild()
	shape := classify(t, reg, "Invoice")

	out := renderDoc(t, shape, map[string]any{
		"Lines": []any{
			map[string]any{
				"SKU": "W-1",
				"Adjustments": []any{
					map[string]any{"Reason": "discount", "Amount": "-2.00"},
				},
			},
		},
	}, md.Options{})

	if strings.Contains(out, "| SKU |") {
		t.Fatalf("elements with nested content must not render as a table:\n%s", out)
	}
	if !strings.Contains(out, "### W-1\n") {
		t.Fatalf("each element should become a subsection titled by its title field:\n%s", out)
	}
	if !strings.Contains(out, "| Reason | Amount |") {
		t.Fatalf("the sectioned inner sequence is flat and should render as a table:\n%s", out)
	}
}

func TestDocument_ExcludedInTableDropsColumn(t *testing.T) {
	reg := dsl.NewRegistry().
		Add(dsl.Type("Board").
			Field("Rows", dsl.Slice(dsl.Record("Row"))).
			MustBuild()).
		Add(dsl.Type("Row").
			Field("Id", dsl.String()).
			Field("Internal", dsl.String()).ExcludeInTable().
			MustBuild()).
		MustBuild()
	shape := classify(t, reg, "Board")

	out := renderDoc(t, shape, map[string]any{
		"Rows": []any{map[string]any{"Id": "a1", "Internal": "secret"}},
	}, md.Options{})
	if strings.Contains(out, "Internal") || strings.Contains(out, "secret") {
		t.Fatalf("excluded-in-table fields must not appear as columns:\n%s", out)
	}
}

func TestDocument_StringSequenceAndNestedRecord(t *testing.T) {
	reg := dsl.NewRegistry().
		Add(dsl.Type("Service").
			Title("Name").
			Field("Name", dsl.String()).
			Field("Tags", dsl.Slice(dsl.String())).
			Field("Owner", dsl.Record("Contact")).
			MustBuild()).
		Add(dsl.Type("Contact").
			Field("Email", dsl.String()).
			Field("OnCall", dsl.Bool()).
			MustBuild()).
		MustBuild()
	shape := classify(t, reg, "Service")

	out := renderDoc(t, shape, map[string]any{
		"Name": "billing",
		"Tags": []any{"internal", "critical"},
		"Owner": map[string]any{
			"Email":  "team@example.com",
			"OnCall": true,
		},
	}, md.Options{})

	want := "# billing\n\nTags:\n- internal\n- critical\n\n## Owner\n\nEmail: team@example.com\nOnCall: yes\n"
	if out != want {
		t.Fatalf("unexpected document:\n got: %q\nwant: %q", out, want)
	}
}

func TestDocument_SectionFilterAppliesToRenderedOutput(t *testing.T) {
	reg := dsl.NewRegistry().
		Add(dsl.Type("Service").
			Field("First", dsl.Record("Part")).
			Field("Second", dsl.Record("Part")).
			MustBuild()).
		Add(dsl.Type("Part").
			Field("V", dsl.String()).
			MustBuild()).
		MustBuild()
	shape := classify(t, reg, "Service")

	out := renderDoc(t, shape, map[string]any{
		"First":  map[string]any{"V": "one"},
		"Second": map[string]any{"V": "two"},
	}, md.Options{IncludeSections: []int{2}})

	if strings.Contains(out, "one") {
		t.Fatalf("section 1 should be filtered out:\n%s", out)
	}
	if !strings.Contains(out, "## Second") || !strings.Contains(out, "V: two") {
		t.Fatalf("section 2 should remain:\n%s", out)
	}
}

func TestDocument_MissingValuesRenderEmpty(t *testing.T) {
	reg := dsl.NewRegistry().
		Add(dsl.Type("Person").
			Field("Name", dsl.String()).
			Field("Age", dsl.Int32()).
			MustBuild()).
		MustBuild()
	shape := classify(t, reg, "Person")

	out := renderDoc(t, shape, map[string]any{"Name": "Ada"}, md.Options{})
	if !strings.Contains(out, "Age: \n") {
		t.Fatalf("absent values render as empty strings, not errors:\n%s", out)
	}
}
