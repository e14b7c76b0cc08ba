// Package manifest loads command definitions from YAML or JSONC documents.
//
// A document describes one command:
//
//	name: demo
//	description: Demo command
//	help: |
//	  Longer text shown by the CLI, never registered.
//	options:
//	  - name: member
//	    type: user
//	    description: A member
//	  - name: number
//	    type: number
//	    description: A number
//	    autocomplete: true
//	    max_value: 50
//	  - name: channel
//	    type: channel
//	    optional: true
//	    description: A text channel
//	    channel_types: guild_text private
//
// Documents are first checked against a JSON Schema reflected from
// Document (see DocumentSchema), then converted attribute by attribute into
// a command.Definition. Platform rules such as name charset and nesting are
// left to command.Compile.
package manifest
