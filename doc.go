package dico

// Package dico declares the shape of records exchanged with loosely-typed
// stores and projects them into audience-specific views:
//
// - Schema: per record type, an ordered, immutable table of field constraints
//   (kind, required, default, bounds, pattern, aliases), declared once.
// - Document: one record instance; tracks which fields were mutated after
//   construction and cascades raw nested maps into embedded Documents.
// - Validation: Validate (presence + shape) and ValidatePartial (shape only),
//   both boolean by contract.
// - Projection: ForSave / ForOwner / ForPublic / Changes, each running an
//   ordered hook pipeline over the projected map before returning it.
//
// Design policy:
// - Keep the public model in the root package; put the fluent builder under
//   dsl/, the YAML schema importer under yamlschema/, and expression-backed
//   hooks under exprhook/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user := dsl.Doc("user").
//		Field("id", dsl.Int()).Alias("_id").
//		Field("title", dsl.String().Max(40)).Required().
//		Owner("title").
//		MustBuild()
//
//	doc, err := user.NewFrom(map[string]any{"_id": int64(4), "title": "hello"})
//	out, err := doc.ForSave()
