package command

import (
	"maps"

	"github.com/ggoodman/slashcmd-go/discord"
)

// Command is a validated, immutable definition together with its schema
// and the name-keyed dispatch tables used by the decoder. It is safe for
// concurrent use.
type Command struct {
	def         *Definition
	schema      *Schema
	root        *level
	fingerprint string
}

// level is one decoding scope: the root command, a subcommand or a group.
type level struct {
	path     []string
	fields   []compiledField
	index    map[string]int
	variants bool
}

type compiledField struct {
	*Field
	wire discord.OptionType
	// child is the decoding scope of a subcommand or group.
	child *level
}

// Compile validates def and compiles it. On failure the returned error is
// a *SchemaError listing every problem found. def is copied; later changes
// to it do not affect the result.
func Compile(def *Definition) (*Command, error) {
	if def == nil {
		return nil, ErrNilDefinition
	}
	if problems := validateDefinition(def); len(problems) > 0 {
		return nil, &SchemaError{Command: def.Name, Problems: problems}
	}
	d := def.Clone()
	c := &Command{
		def:    d,
		schema: buildSchema(d),
		root:   compileLevel([]string{d.Name}, d.Fields),
	}
	fp, err := fingerprintOf(c.schema)
	if err != nil {
		return nil, err
	}
	c.fingerprint = fp
	return c, nil
}

// MustCompile panics on error.
func MustCompile(def *Definition) *Command {
	c, err := Compile(def)
	if err != nil {
		panic(err)
	}
	return c
}

// Build validates def and returns its schema.
func Build(def *Definition) (*Schema, error) {
	c, err := Compile(def)
	if err != nil {
		return nil, err
	}
	return c.Schema(), nil
}

// Decode compiles def and decodes input against it. Callers decoding more
// than once should Compile first.
func Decode(def *Definition, input discord.CommandInput) (*Options, error) {
	c, err := Compile(def)
	if err != nil {
		return nil, err
	}
	return c.Decode(input)
}

func compileLevel(path []string, fields []Field) *level {
	lv := &level{
		path:   path,
		fields: make([]compiledField, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i := range fields {
		f := &fields[i]
		cf := compiledField{Field: f, wire: f.Kind.optionType()}
		if f.Kind == KindChoice {
			cf.wire = f.Enum.OptionType()
		}
		if f.Kind.IsVariant() {
			lv.variants = true
			cf.child = compileLevel(joinPath(path, f.Name), f.Children)
		}
		lv.fields[i] = cf
		lv.index[f.Name] = i
	}
	return lv
}

func (c *Command) Name() string { return c.def.Name }

// Definition returns a copy of the compiled definition.
func (c *Command) Definition() *Definition { return c.def.Clone() }

// Schema returns a copy of the command schema.
func (c *Command) Schema() *Schema {
	s := *c.schema
	s.NameLocalizations = maps.Clone(s.NameLocalizations)
	s.DescriptionLocalizations = maps.Clone(s.DescriptionLocalizations)
	s.Options = cloneOptions(s.Options)
	return &s
}

// ApplicationCommand returns the registration payload.
func (c *Command) ApplicationCommand() discord.ApplicationCommand {
	return c.schema.ApplicationCommand()
}

// Fingerprint is a stable digest of the registration payload.
func (c *Command) Fingerprint() string { return c.fingerprint }
