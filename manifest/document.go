package manifest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ggoodman/slashcmd-go/command"
	"github.com/ggoodman/slashcmd-go/discord"
)

// Document is the on-disk shape of one command definition.
type Document struct {
	Name                     string            `json:"name" jsonschema:"required,minLength=1,maxLength=32"`
	NameLocalizations        map[string]string `json:"name_localizations,omitempty"`
	Description              string            `json:"description" jsonschema:"required"`
	DescriptionLocalizations map[string]string `json:"description_localizations,omitempty"`
	Help                     string            `json:"help,omitempty"`
	// DefaultMemberPermissions is a decimal permission bit set.
	DefaultMemberPermissions string      `json:"default_member_permissions,omitempty" jsonschema:"pattern=^[0-9]+$"`
	DMPermission             *bool       `json:"dm_permission,omitempty"`
	NSFW                     *bool       `json:"nsfw,omitempty"`
	Options                  []OptionDoc `json:"options,omitempty"`
}

// OptionDoc is one option, subcommand or group of a Document.
type OptionDoc struct {
	Name                     string            `json:"name" jsonschema:"required,minLength=1,maxLength=32"`
	Type                     string            `json:"type" jsonschema:"required,enum=string,enum=integer,enum=number,enum=boolean,enum=user,enum=channel,enum=role,enum=mentionable,enum=attachment,enum=id,enum=choice,enum=subcommand,enum=group"`
	NameLocalizations        map[string]string `json:"name_localizations,omitempty"`
	Description              string            `json:"description" jsonschema:"required"`
	DescriptionLocalizations map[string]string `json:"description_localizations,omitempty"`
	Help                     string            `json:"help,omitempty"`
	Optional                 any               `json:"optional,omitempty" jsonschema:"type=boolean"`
	Autocomplete             any               `json:"autocomplete,omitempty" jsonschema:"type=boolean"`
	MinValue                 any               `json:"min_value,omitempty" jsonschema:"type=number"`
	MaxValue                 any               `json:"max_value,omitempty" jsonschema:"type=number"`
	MinLength                any               `json:"min_length,omitempty" jsonschema:"type=integer"`
	MaxLength                any               `json:"max_length,omitempty" jsonschema:"type=integer"`
	// ChannelTypes is a whitespace separated list such as "guild_text private".
	ChannelTypes string      `json:"channel_types,omitempty"`
	Choices      []ChoiceDoc `json:"choices,omitempty"`
	Options      []OptionDoc `json:"options,omitempty"`
}

// ChoiceDoc is one choice of a "choice" option.
type ChoiceDoc struct {
	Name              string            `json:"name" jsonschema:"required,minLength=1,maxLength=100"`
	Key               string            `json:"key,omitempty"`
	NameLocalizations map[string]string `json:"name_localizations,omitempty"`
	Value             any               `json:"value" jsonschema:"required,oneof_type=string;number"`
}

// Definition converts the document into a command definition. Every
// attribute problem is reported, joined into one error.
func (d *Document) Definition() (*command.Definition, error) {
	c := converter{}
	def := &command.Definition{
		Name:              d.Name,
		NameLocalizations: d.NameLocalizations,
		Description:       describe(d.Description, d.DescriptionLocalizations),
		Help:              d.Help,
		DMPermission:      d.DMPermission,
		NSFW:              d.NSFW,
	}
	if d.DefaultMemberPermissions != "" {
		p, err := parsePermissions(d.DefaultMemberPermissions)
		if err != nil {
			c.fail(err)
		} else {
			def.DefaultMemberPermissions = &p
		}
	}
	def.Fields = c.fields(d.Name, d.Options)
	if err := errors.Join(c.errs...); err != nil {
		return nil, err
	}
	return def, nil
}

type converter struct {
	errs []error
}

func (c *converter) fail(err error) { c.errs = append(c.errs, err) }

func (c *converter) fields(parent string, docs []OptionDoc) []command.Field {
	if len(docs) == 0 {
		return nil
	}
	out := make([]command.Field, 0, len(docs))
	for i := range docs {
		out = append(out, c.field(parent, &docs[i]))
	}
	return out
}

func (c *converter) field(parent string, o *OptionDoc) command.Field {
	path := parent + "." + o.Name
	f := command.Field{
		Name:              o.Name,
		NameLocalizations: o.NameLocalizations,
		Description:       describe(o.Description, o.DescriptionLocalizations),
		Help:              o.Help,
	}
	kind, err := command.ParseKind(o.Type)
	if err != nil {
		c.fail(fmt.Errorf("%s: %w", path, err))
		return f
	}
	f.Kind = kind

	if lit := c.literal(path, "optional", o.Optional); !lit.IsZero() {
		if b, err := lit.AsBool(path, "optional"); err != nil {
			c.fail(err)
		} else {
			f.Optional = b
		}
	}
	if lit := c.literal(path, "autocomplete", o.Autocomplete); !lit.IsZero() {
		if b, err := lit.AsBool(path, "autocomplete"); err != nil {
			c.fail(err)
		} else {
			f.Autocomplete = b
		}
	}
	f.Constraints.MinValue = c.bound(path, "min_value", o.MinValue)
	f.Constraints.MaxValue = c.bound(path, "max_value", o.MaxValue)
	f.Constraints.MinLength = c.length(path, "min_length", o.MinLength)
	f.Constraints.MaxLength = c.length(path, "max_length", o.MaxLength)
	if o.ChannelTypes != "" {
		types, err := discord.ParseChannelTypes(o.ChannelTypes)
		if err != nil {
			c.fail(fmt.Errorf("%s: channel_types: %w", path, err))
		}
		f.Constraints.ChannelTypes = types
	}

	switch {
	case kind == command.KindChoice:
		f.Enum = c.enum(path, o.Choices)
	case len(o.Choices) > 0:
		c.fail(fmt.Errorf("%s: choices are only allowed on choice options", path))
	}
	if kind.IsVariant() {
		f.Children = c.fields(path, o.Options)
	} else if len(o.Options) > 0 {
		c.fail(fmt.Errorf("%s: only subcommands and groups have nested options", path))
	}
	return f
}

func (c *converter) enum(path string, docs []ChoiceDoc) *command.Enum {
	variants := make([]command.Variant, 0, len(docs))
	for _, d := range docs {
		lit := c.literal(path, "choices["+d.Name+"]", d.Value)
		if _, err := lit.AsChoiceValue(path, "choices["+d.Name+"]"); err != nil {
			c.fail(err)
			continue
		}
		variants = append(variants, command.Variant{
			Key:               d.Key,
			Name:              d.Name,
			NameLocalizations: d.NameLocalizations,
			Value:             lit,
		})
	}
	return command.NewEnum(variants...)
}

func (c *converter) literal(path, attr string, v any) command.Literal {
	lit, err := command.LiteralOf(v)
	if err != nil {
		c.fail(fmt.Errorf("%s: %s: %w", path, attr, err))
	}
	return lit
}

func (c *converter) bound(path, attr string, v any) *discord.Bound {
	lit := c.literal(path, attr, v)
	if lit.IsZero() {
		return nil
	}
	b, err := lit.AsNumericBound(path, attr)
	if err != nil {
		c.fail(err)
		return nil
	}
	return &b
}

func (c *converter) length(path, attr string, v any) *int {
	lit := c.literal(path, attr, v)
	if lit.IsZero() {
		return nil
	}
	n, err := lit.AsLength(path, attr)
	if err != nil {
		c.fail(err)
		return nil
	}
	return &n
}

func describe(fallback string, locales map[string]string) command.Localizations {
	return command.Localize(fallback, nil).Merge(command.Localizations{Locales: locales})
}

func parsePermissions(s string) (discord.Permissions, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("default_member_permissions: %w", err)
	}
	return discord.Permissions(v), nil
}
