package command

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ggoodman/slashcmd-go/discord"
)

// Schema is the platform-facing description of a command plus the help
// text that only humans see.
type Schema struct {
	Name                     string               `json:"name"`
	NameLocalizations        map[string]string    `json:"name_localizations,omitempty"`
	Description              string               `json:"description"`
	DescriptionLocalizations map[string]string    `json:"description_localizations,omitempty"`
	Help                     string               `json:"help,omitempty"`
	Options                  []Option             `json:"options,omitempty"`
	DefaultMemberPermissions *discord.Permissions `json:"default_member_permissions,omitempty"`
	DMPermission             *bool                `json:"dm_permission,omitempty"`
	NSFW                     *bool                `json:"nsfw,omitempty"`
	// Group is set when the command dispatches to subcommands or groups.
	Group bool `json:"group,omitempty"`
}

// Option is the single option shape used for every node kind. Attributes
// that do not apply to a node's type are left unset.
type Option struct {
	Type                     discord.OptionType    `json:"type"`
	Name                     string                `json:"name"`
	NameLocalizations        map[string]string     `json:"name_localizations,omitempty"`
	Description              string                `json:"description"`
	DescriptionLocalizations map[string]string     `json:"description_localizations,omitempty"`
	Help                     string                `json:"help,omitempty"`
	Required                 *bool                 `json:"required,omitempty"`
	Autocomplete             *bool                 `json:"autocomplete,omitempty"`
	Choices                  []discord.Choice      `json:"choices,omitempty"`
	ChannelTypes             []discord.ChannelType `json:"channel_types,omitempty"`
	MinValue                 *discord.Bound        `json:"min_value,omitempty"`
	MaxValue                 *discord.Bound        `json:"max_value,omitempty"`
	MinLength                *int                  `json:"min_length,omitempty"`
	MaxLength                *int                  `json:"max_length,omitempty"`
	Options                  []Option              `json:"options,omitempty"`
}

func buildSchema(d *Definition) *Schema {
	s := &Schema{
		Name:                     d.Name,
		NameLocalizations:        canonicalLocales(d.NameLocalizations),
		Description:              d.Description.Fallback,
		DescriptionLocalizations: canonicalLocales(d.Description.Locales),
		Help:                     d.Help,
		DefaultMemberPermissions: d.DefaultMemberPermissions,
		DMPermission:             d.DMPermission,
		NSFW:                     d.NSFW,
		Group:                    d.Group(),
	}
	s.Options = buildOptions(d.Fields)
	return s
}

func buildOptions(fields []Field) []Option {
	if len(fields) == 0 {
		return nil
	}
	out := make([]Option, len(fields))
	for i := range fields {
		out[i] = buildOption(&fields[i])
	}
	return out
}

func buildOption(f *Field) Option {
	o := Option{
		Type:                     f.Kind.optionType(),
		Name:                     f.Name,
		NameLocalizations:        canonicalLocales(f.NameLocalizations),
		Description:              f.Description.Fallback,
		DescriptionLocalizations: canonicalLocales(f.Description.Locales),
		Help:                     f.Help,
	}
	if f.Kind.IsVariant() {
		o.Options = buildOptions(f.Children)
		return o
	}
	if f.Kind == KindChoice {
		o.Type = f.Enum.OptionType()
		o.Choices = f.Enum.Choices()
	}
	required := !f.Optional
	o.Required = &required
	switch o.Type {
	case discord.OptionTypeString, discord.OptionTypeInteger, discord.OptionTypeNumber:
		auto := f.Autocomplete
		o.Autocomplete = &auto
	}
	c := f.Constraints.clone()
	o.MinValue, o.MaxValue = c.MinValue, c.MaxValue
	o.MinLength, o.MaxLength = c.MinLength, c.MaxLength
	o.ChannelTypes = c.ChannelTypes
	return o
}

// canonicalLocales rewrites locale keys to their canonical spelling. Keys
// are known to be valid once a definition has passed validation.
func canonicalLocales(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return checkLocales(m, func(string) error { return nil }, func(string, string) {}, "")
}

// AsOption embeds the schema as a subcommand option of another command, or
// as a group option when it dispatches to subcommands itself.
func (s *Schema) AsOption() Option {
	t := discord.OptionTypeSubCommand
	if s.Group {
		t = discord.OptionTypeSubCommandGroup
	}
	return Option{
		Type:                     t,
		Name:                     s.Name,
		NameLocalizations:        maps.Clone(s.NameLocalizations),
		Description:              s.Description,
		DescriptionLocalizations: maps.Clone(s.DescriptionLocalizations),
		Help:                     s.Help,
		Options:                  cloneOptions(s.Options),
	}
}

// ApplicationCommand returns the registration payload. Help text is
// dropped.
func (s *Schema) ApplicationCommand() discord.ApplicationCommand {
	return discord.ApplicationCommand{
		Type:                     discord.CommandTypeChatInput,
		Name:                     s.Name,
		NameLocalizations:        maps.Clone(s.NameLocalizations),
		Description:              s.Description,
		DescriptionLocalizations: maps.Clone(s.DescriptionLocalizations),
		Options:                  commandOptions(s.Options),
		DefaultMemberPermissions: s.DefaultMemberPermissions,
		DMPermission:             s.DMPermission,
		NSFW:                     s.NSFW,
	}
}

// CommandOption returns the registration form of a single option.
func (o Option) CommandOption() discord.CommandOption {
	return discord.CommandOption{
		Type:                     o.Type,
		Name:                     o.Name,
		NameLocalizations:        maps.Clone(o.NameLocalizations),
		Description:              o.Description,
		DescriptionLocalizations: maps.Clone(o.DescriptionLocalizations),
		Required:                 o.Required,
		Choices:                  slices.Clone(o.Choices),
		Options:                  commandOptions(o.Options),
		ChannelTypes:             slices.Clone(o.ChannelTypes),
		MinValue:                 o.MinValue,
		MaxValue:                 o.MaxValue,
		MinLength:                o.MinLength,
		MaxLength:                o.MaxLength,
		Autocomplete:             o.Autocomplete,
	}
}

func commandOptions(opts []Option) []discord.CommandOption {
	if len(opts) == 0 {
		return nil
	}
	out := make([]discord.CommandOption, len(opts))
	for i, o := range opts {
		out[i] = o.CommandOption()
	}
	return out
}

func cloneOptions(opts []Option) []Option {
	if opts == nil {
		return nil
	}
	out := make([]Option, len(opts))
	for i, o := range opts {
		o.NameLocalizations = maps.Clone(o.NameLocalizations)
		o.DescriptionLocalizations = maps.Clone(o.DescriptionLocalizations)
		o.Choices = slices.Clone(o.Choices)
		o.ChannelTypes = slices.Clone(o.ChannelTypes)
		o.Options = cloneOptions(o.Options)
		out[i] = o
	}
	return out
}

// HelpText renders the command tree with descriptions and help, one node
// per line, indented by depth.
func (s *Schema) HelpText() string {
	var b strings.Builder
	writeHelpLine(&b, 0, "/"+s.Name, s.Description, s.Help)
	writeHelpOptions(&b, 1, s.Options)
	return b.String()
}

func writeHelpOptions(b *strings.Builder, depth int, opts []Option) {
	for _, o := range opts {
		label := o.Name
		switch o.Type {
		case discord.OptionTypeSubCommand, discord.OptionTypeSubCommandGroup:
		default:
			label = fmt.Sprintf("%s <%s>", o.Name, strings.ToLower(o.Type.String()))
			if o.Required != nil && !*o.Required {
				label = "[" + label + "]"
			}
		}
		writeHelpLine(b, depth, label, o.Description, o.Help)
		for _, c := range o.Choices {
			fmt.Fprintf(b, "%s- %s = %s\n", strings.Repeat("  ", depth+1), c.Name, c.Value)
		}
		writeHelpOptions(b, depth+1, o.Options)
	}
}

func writeHelpLine(b *strings.Builder, depth int, label, desc, help string) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s  %s\n", indent, label, desc)
	for _, line := range strings.Split(help, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(b, "%s    %s\n", indent, line)
		}
	}
}
