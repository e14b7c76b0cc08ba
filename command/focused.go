package command

import (
	"slices"

	"github.com/ggoodman/slashcmd-go/discord"
)

// Focused describes the option a user is typing into during an
// autocomplete interaction.
type Focused struct {
	// Path runs from the root command to the focused option.
	Path []string
	Name string
	Kind Kind
	// Text is the partial input, unvalidated.
	Text string
	// Field is the declaration of the focused option.
	Field Field
}

// Focused locates the focused option of an autocomplete interaction. The
// other options of an autocomplete payload are partial and are not
// validated.
func (c *Command) Focused(input discord.CommandInput) (*Focused, error) {
	lv, opts := c.root, input.Options
	for lv.variants {
		switch len(opts) {
		case 0:
			return nil, &DecodeError{Code: CodeNoSubcommand, Path: lv.path}
		case 1:
		default:
			return nil, &DecodeError{Code: CodeAmbiguousSubcommand, Path: lv.path, Value: opts[0].Name + ", " + opts[1].Name}
		}
		i, ok := lv.index[opts[0].Name]
		if !ok {
			return nil, &DecodeError{Code: CodeUnknownSubcommand, Path: joinPath(lv.path, opts[0].Name), Suggestion: lv.suggest(opts[0].Name)}
		}
		f := &lv.fields[i]
		nested, err := subOptions(joinPath(lv.path, f.Name), f.wire, opts[0].Value)
		if err != nil {
			return nil, err
		}
		lv, opts = f.child, nested
	}

	for _, o := range opts {
		fv, ok := o.Value.(discord.FocusedValue)
		if !ok {
			continue
		}
		path := joinPath(lv.path, o.Name)
		i, declared := lv.index[o.Name]
		if !declared {
			return nil, &DecodeError{Code: CodeUnknownOption, Path: path, Suggestion: lv.suggest(o.Name)}
		}
		f := lv.fields[i]
		if !f.Autocomplete {
			return nil, &DecodeError{Code: CodeNotAutocomplete, Path: path}
		}
		return &Focused{
			Path:  slices.Clone(path),
			Name:  f.Name,
			Kind:  f.Kind,
			Text:  fv.Text,
			Field: cloneFields([]Field{*f.Field})[0],
		}, nil
	}
	return nil, &DecodeError{Code: CodeNoFocus, Path: lv.path}
}
