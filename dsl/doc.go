// Package dsl is the fluent declaration surface for dico schemas. One call
// chain per record type, evaluated once at declaration time:
//
//	user := dsl.Doc("user").
//		Field("id", dsl.ID().AutoDefault()).Alias("_id").
//		Field("firstname", dsl.String().Max(40)).Required().
//		Field("email", dsl.Email()).
//		Owner("firstname", "email").
//		Public("firstname").
//		MustBuild()
//
// Build reports declaration mistakes (duplicate fields, colliding aliases,
// visibility names without a field or derived value, bad patterns) as
// *dico.SchemaError; MustBuild panics on them, which is the intended mode
// for package-level schema variables.
package dsl
