package command

import (
	"maps"
	"slices"

	"github.com/ggoodman/slashcmd-go/discord"
)

// Definition is the root of a command description: a named command and its
// ordered fields. A definition whose fields are all subcommands or groups is
// a dispatching command; otherwise it is a leaf command.
type Definition struct {
	Name              string
	NameLocalizations map[string]string
	Description       Localizations
	// Help is long-form documentation. It appears in schemas but is never
	// part of the registration payload.
	Help                     string
	DefaultMemberPermissions *discord.Permissions
	DMPermission             *bool
	NSFW                     *bool
	Fields                   []Field
}

// Field is one node of a definition tree.
type Field struct {
	Name              string
	Kind              Kind
	Optional          bool
	NameLocalizations map[string]string
	Description       Localizations
	Help              string
	Autocomplete      bool
	Constraints       Constraints
	// Enum holds the variants of a KindChoice field.
	Enum *Enum
	// Children are the fields of a subcommand or the subcommands of a group.
	Children []Field
}

// Group reports whether the definition dispatches to subcommands or groups.
func (d *Definition) Group() bool {
	for _, f := range d.Fields {
		if f.Kind.IsVariant() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Enums are immutable and shared.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	out := *d
	out.NameLocalizations = maps.Clone(d.NameLocalizations)
	out.Description = d.Description.clone()
	if d.DefaultMemberPermissions != nil {
		p := *d.DefaultMemberPermissions
		out.DefaultMemberPermissions = &p
	}
	if d.DMPermission != nil {
		b := *d.DMPermission
		out.DMPermission = &b
	}
	if d.NSFW != nil {
		b := *d.NSFW
		out.NSFW = &b
	}
	out.Fields = cloneFields(d.Fields)
	return &out
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.NameLocalizations = maps.Clone(f.NameLocalizations)
		f.Description = f.Description.clone()
		f.Constraints = f.Constraints.clone()
		f.Children = cloneFields(f.Children)
		out[i] = f
	}
	return out
}

// AsField turns the definition into a subcommand field, or a group field
// when it dispatches to subcommands itself. Permissions and NSFW flags only
// apply to top-level commands and are dropped.
func (d *Definition) AsField() Field {
	c := d.Clone()
	kind := KindSubCommand
	if c.Group() {
		kind = KindSubCommandGroup
	}
	return Field{
		Name:              c.Name,
		Kind:              kind,
		NameLocalizations: c.NameLocalizations,
		Description:       c.Description,
		Help:              c.Help,
		Children:          c.Fields,
	}
}

// Builder assembles a Definition field by field.
//
//	def := command.New("demo", command.WithDescription("Demo command")).
//		User("member", command.Description("A member")).
//		Number("number", command.Description("A number"), command.MaxValue(discord.NumberBound(50))).
//		Channel("channel", command.Optional(), command.ChannelTypes(discord.ChannelGuildText)).
//		Definition()
type Builder struct {
	def Definition
}

// DefinitionOption configures the root of a Builder.
type DefinitionOption func(*Definition)

// FieldOption configures a field added through a Builder.
type FieldOption func(*Field)

// New starts a definition named name.
func New(name string, opts ...DefinitionOption) *Builder {
	b := &Builder{def: Definition{Name: name}}
	for _, o := range opts {
		if o != nil {
			o(&b.def)
		}
	}
	return b
}

func (b *Builder) String(name string, opts ...FieldOption) *Builder {
	return b.add(Field{Name: name, Kind: KindString}, opts)
}

func (b *Builder) Integer(name string, opts ...FieldOption) *Builder {
	return b.add(Field{Name: name, Kind: KindInteger}, opts)
}

func (b *Builder) Number(name string, opts ...FieldOption) *Builder {
	return b.add(Field{Name: name, Kind: KindNumber}, opts)
}

func (b *Builder) Boolean(name string, opts ...FieldOption) *Builder {
	return b.add(Field{Name: name, Kind: KindBoolean}, opts)
}

func (b *Builder) User(name string, opts ...FieldOption) *Builder {
	return b.add(Field{Name: name, Kind: KindUser}, opts)
}

func (b *Builder) Channel(name string, opts ...FieldOption) *Builder {
	return b.add(Field{Name: name, Kind: KindChannel}, opts)
}

func (b *Builder) Role(name string, opts ...FieldOption) *Builder {
	return b.add(Field{Name: name, Kind: KindRole}, opts)
}

func (b *Builder) Mentionable(name string, opts ...FieldOption) *Builder {
	return b.add(Field{Name: name, Kind: KindMentionable}, opts)
}

func (b *Builder) Attachment(name string, opts ...FieldOption) *Builder {
	return b.add(Field{Name: name, Kind: KindAttachment}, opts)
}

// ID adds a mentionable option whose value is kept as a bare id.
func (b *Builder) ID(name string, opts ...FieldOption) *Builder {
	return b.add(Field{Name: name, Kind: KindID}, opts)
}

// Choice adds an option restricted to the variants of e.
func (b *Builder) Choice(name string, e *Enum, opts ...FieldOption) *Builder {
	return b.add(Field{Name: name, Kind: KindChoice, Enum: e}, opts)
}

// Sub adds sub as a subcommand, or as a group when sub dispatches itself.
// Field options apply on top of sub's own metadata.
func (b *Builder) Sub(sub *Definition, opts ...FieldOption) *Builder {
	if sub == nil {
		return b
	}
	return b.add(sub.AsField(), opts)
}

// Field appends a prebuilt field.
func (b *Builder) Field(f Field) *Builder {
	b.def.Fields = append(b.def.Fields, f)
	return b
}

func (b *Builder) add(f Field, opts []FieldOption) *Builder {
	for _, o := range opts {
		if o != nil {
			o(&f)
		}
	}
	b.def.Fields = append(b.def.Fields, f)
	return b
}

// Definition returns a copy of the definition built so far.
func (b *Builder) Definition() *Definition { return b.def.Clone() }

// Build validates the definition and returns its schema.
func (b *Builder) Build() (*Schema, error) { return Build(&b.def) }

// Compile validates the definition and returns the compiled command.
func (b *Builder) Compile() (*Command, error) { return Compile(&b.def) }

// MustCompile panics on error.
func (b *Builder) MustCompile() *Command {
	c, err := b.Compile()
	if err != nil {
		panic(err)
	}
	return c
}

func WithDescription(desc string) DefinitionOption {
	return func(d *Definition) { d.Description = d.Description.Merge(Localizations{Fallback: desc}) }
}

// WithLocalizedDescription layers explicit localizations over the description.
func WithLocalizedDescription(l Localizations) DefinitionOption {
	return func(d *Definition) { d.Description = d.Description.Merge(l) }
}

func WithNameLocalizations(m map[string]string) DefinitionOption {
	return func(d *Definition) { d.NameLocalizations = maps.Clone(m) }
}

func WithHelp(help string) DefinitionOption {
	return func(d *Definition) { d.Help = help }
}

func WithDefaultMemberPermissions(p discord.Permissions) DefinitionOption {
	return func(d *Definition) { d.DefaultMemberPermissions = &p }
}

func WithDMPermission(allowed bool) DefinitionOption {
	return func(d *Definition) { d.DMPermission = &allowed }
}

func WithNSFW(nsfw bool) DefinitionOption {
	return func(d *Definition) { d.NSFW = &nsfw }
}

// Optional marks the field as not required. Fields are required by default.
func Optional() FieldOption { return func(f *Field) { f.Optional = true } }

// Required marks the field as required.
func Required() FieldOption { return func(f *Field) { f.Optional = false } }

func Description(desc string) FieldOption {
	return func(f *Field) { f.Description = f.Description.Merge(Localizations{Fallback: desc}) }
}

// LocalizedDescription layers explicit localizations over the description.
func LocalizedDescription(l Localizations) FieldOption {
	return func(f *Field) { f.Description = f.Description.Merge(l) }
}

func NameLocalizations(m map[string]string) FieldOption {
	return func(f *Field) { f.NameLocalizations = maps.Clone(m) }
}

// Rename overrides the field name, typically of a Sub definition.
func Rename(name string) FieldOption { return func(f *Field) { f.Name = name } }

func Help(help string) FieldOption { return func(f *Field) { f.Help = help } }

func Autocomplete() FieldOption { return func(f *Field) { f.Autocomplete = true } }

func MinValue(v discord.Bound) FieldOption {
	return func(f *Field) { f.Constraints.MinValue = &v }
}

func MaxValue(v discord.Bound) FieldOption {
	return func(f *Field) { f.Constraints.MaxValue = &v }
}

func MinLength(n int) FieldOption { return func(f *Field) { f.Constraints.MinLength = &n } }

func MaxLength(n int) FieldOption { return func(f *Field) { f.Constraints.MaxLength = &n } }

func ChannelTypes(types ...discord.ChannelType) FieldOption {
	return func(f *Field) { f.Constraints.ChannelTypes = slices.Clone(types) }
}
