package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ggoodman/slashcmd-go/discord"
)

// ErrNilDefinition is returned when a nil *Definition is compiled.
var ErrNilDefinition = errors.New("command: nil definition")

// Reason classifies an AttributeError.
type Reason uint8

const (
	ReasonWrongKind Reason = iota + 1
	ReasonOutOfRange
	ReasonEmpty
)

func (r Reason) String() string {
	switch r {
	case ReasonWrongKind:
		return "wrong literal kind"
	case ReasonOutOfRange:
		return "out of range"
	case ReasonEmpty:
		return "empty"
	default:
		return "invalid"
	}
}

// AttributeError reports a metadata literal that cannot serve the attribute
// it was attached to.
type AttributeError struct {
	Field     string
	Attribute string
	Reason    Reason
	Detail    string
}

func (e *AttributeError) Error() string {
	msg := fmt.Sprintf("command: field %q attribute %s: %s", e.Field, e.Attribute, e.Reason)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Problem is one schema construction failure.
type Problem struct {
	// Path locates the offending node, root command first.
	Path      []string
	Attribute string
	Message   string
}

func (p Problem) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(p.Path, "."))
	if p.Attribute != "" {
		b.WriteString(" ")
		b.WriteString(p.Attribute)
	}
	b.WriteString(": ")
	b.WriteString(p.Message)
	return b.String()
}

// SchemaError aggregates every problem found while building a schema.
type SchemaError struct {
	Command  string
	Problems []Problem
}

func (e *SchemaError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("command %s: %s", e.Command, e.Problems[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "command %s: %d problems", e.Command, len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  ")
		b.WriteString(p.String())
	}
	return b.String()
}

// DecodeCode classifies a DecodeError.
type DecodeCode uint8

const (
	CodeMissingRequired DecodeCode = iota + 1
	CodeTypeMismatch
	CodeUnknownChoice
	CodeUnknownOption
	CodeDuplicateOption
	CodeNoSubcommand
	CodeAmbiguousSubcommand
	CodeUnknownSubcommand
	// CodeUnexpectedFocus is a focused autocomplete value reaching Decode.
	CodeUnexpectedFocus
	// CodeNoFocus is an autocomplete request with no focused option.
	CodeNoFocus
	// CodeNotAutocomplete is focus on an option without autocomplete.
	CodeNotAutocomplete
)

var decodeCodeNames = [...]string{
	CodeMissingRequired:     "missing required option",
	CodeTypeMismatch:        "type mismatch",
	CodeUnknownChoice:       "unknown choice",
	CodeUnknownOption:       "unknown option",
	CodeDuplicateOption:     "duplicate option",
	CodeNoSubcommand:        "no subcommand selected",
	CodeAmbiguousSubcommand: "more than one subcommand selected",
	CodeUnknownSubcommand:   "unknown subcommand",
	CodeUnexpectedFocus:     "unexpected focused value",
	CodeNoFocus:             "no focused option",
	CodeNotAutocomplete:     "option does not support autocomplete",
}

func (c DecodeCode) String() string {
	if int(c) < len(decodeCodeNames) && decodeCodeNames[c] != "" {
		return decodeCodeNames[c]
	}
	return fmt.Sprintf("DecodeCode(%d)", uint8(c))
}

// DecodeError is the first mismatch found between an interaction and its
// command definition.
type DecodeError struct {
	Code DecodeCode
	// Path runs from the root command to the offending option.
	Path []string
	// Expected and Got are set for type mismatches.
	Expected discord.OptionType
	Got      discord.OptionType
	// Value is the offending literal, if any.
	Value string
	// Suggestion is a near-miss declared name for unknown options and
	// subcommands.
	Suggestion string
}

// Field returns the name of the offending option.
func (e *DecodeError) Field() string {
	if len(e.Path) == 0 {
		return ""
	}
	return e.Path[len(e.Path)-1]
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("command: ")
	b.WriteString(strings.Join(e.Path, "."))
	b.WriteString(": ")
	b.WriteString(e.Code.String())
	switch {
	case e.Code == CodeTypeMismatch:
		fmt.Fprintf(&b, ": expected %s, got %s", e.Expected, e.Got)
	case e.Value != "":
		fmt.Fprintf(&b, " %s", e.Value)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	return b.String()
}

func joinPath(base []string, name string) []string {
	p := make([]string, 0, len(base)+1)
	p = append(p, base...)
	if name != "" {
		p = append(p, name)
	}
	return p
}
