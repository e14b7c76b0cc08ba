// Package discord contains the platform data types consumed and produced by
// the command compiler. It mirrors the wire representation of application
// command registration payloads and interaction option trees while keeping
// the surface Go-friendly (exported structs with json tags, integer enums
// with String methods, decimal-string ids).
//
// The package is intentionally free of transport logic: nothing here talks to
// the platform. Registration payloads are produced by the command package and
// handed to whatever HTTP client the application uses; interaction payloads
// are decoded by the application's gateway or webhook layer into
// CommandData / CommandInput and handed to the decoder.
//
// # Option trees
//
// A runtime option tree is a slice of InteractionOption. Each option carries
// a sealed OptionValue: one concrete type per platform option type
// (StringValue, IntegerValue, ..., SubCommandValue, SubCommandGroupValue).
// The JSON codec on InteractionOption selects the concrete type from the
// wire "type" field, so a tree decoded from JSON is always well-tagged.
//
// # Resolved entities
//
// Users, members, roles, channels and attachments referenced by id in an
// option tree are delivered in a side table (Resolved). The decoder looks ids
// up there but never fetches anything.
package discord
