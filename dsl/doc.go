// Package dsl provides the fluent builder face of the annotation surface:
// type descriptors, field references, and registries are assembled with
// method chains instead of hand-written structs or manifests.
//
//	reg := dsl.NewRegistry().
//		Add(dsl.Type("Invoice").
//			Title("Number").
//			Field("Number", dsl.String()).
//			Field("Paid", dsl.Bool()).
//			Field("Lines", dsl.Slice(dsl.Record("Line"))).
//			MustBuild()).
//		Add(dsl.Type("Line").
//			Field("SKU", dsl.String()).
//			Field("Qty", dsl.Int32()).
//			MustBuild()).
//		Root("Invoice").
//		MustBuild()
package dsl
