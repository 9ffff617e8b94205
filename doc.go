package structdown

// Package structdown classifies structured record types for rendering into a
// constrained Markdown dialect and hosts the streaming writer that emits it.
//
// - A closed RenderingKind model (scalar, string sequence, record sequence,
//   nested record, unsupported) built once per (type, context) pair
// - A stable diagnostic model via Diagnostics (type, field, code, severity)
// - An explicit Registry of type descriptors; classification never consults
//   hidden global state
// - A streaming Markdown writer under md/ with section counting/filtering
//
// Design policy:
// - Keep only public APIs in the root package; put shared helpers under internal/.
// - Place the descriptor builder under dsl/, scalar formatting under codec/,
//   the runtime emitter under render/, and the CLI under cmd/structdown.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	reg := dsl.NewRegistry().
//		Add(dsl.Type("Order").Field("ID", dsl.String()).Field("Total", dsl.Decimal()).MustBuild()).
//		Root("Order").
//		MustBuild()
//	shape, diags, err := structdown.Classify(reg, "Order", structdown.ClassifyOpt{})
//
//	var buf bytes.Buffer
//	w := md.NewWriter(&buf, md.Options{})
//	err = render.Document(w, shape, value)
