// Package command describes slash commands once and derives two things from
// that description: the registration schema sent to the platform, and a
// decoder that turns incoming interaction option trees into typed values.
//
// The design separates three concerns:
//  1. Definition (what the command looks like: a tree of typed fields)
//  2. Schema construction (validating the tree and emitting platform options)
//  3. Decoding (checking an interaction against the tree and extracting values)
//
// Authoring
//
//	Builder     New("demo", ...) with fluent field methods (String, Number,
//	            Channel, Choice, Sub, ...) and FieldOptions (Optional,
//	            Description, Help, MinValue, ChannelTypes, ...).
//	Definition  A plain Definition/Field tree, as produced by the manifest
//	            loader from YAML or JSONC documents.
//
// Schema construction collects every problem in the tree into one
// *SchemaError rather than stopping at the first. A Definition whose fields
// are all subcommands or groups is a dispatching command; mixing them with
// plain options is rejected, as is nesting deeper than group/subcommand.
//
// Decoding
//
// Command.Decode is fail-fast and all-or-nothing: the first problem becomes a
// *DecodeError carrying the option path, and no partial Options are returned.
// Decoding enforces:
//   - Presence of required options and uniqueness of option names
//   - Wire type agreement with the declared kind
//   - Choice membership, mapping the literal back to its Variant
//   - Exactly one selected subcommand at every dispatching level
//   - No options the definition does not declare
//
// Numeric bounds, lengths and channel types are not re-checked; the platform
// enforces them before the interaction is sent. Options.Bind and DecodeInto
// copy a result into a tagged struct.
package command
