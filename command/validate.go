package command

import (
	"fmt"

	"github.com/ggoodman/slashcmd-go/discord"
	"github.com/ggoodman/slashcmd-go/internal/validation"
)

// validator walks a definition and collects every problem it finds.
type validator struct {
	problems []Problem
}

func (v *validator) reporter(path []string) func(attr, msg string) {
	return func(attr, msg string) {
		v.problems = append(v.problems, Problem{Path: path, Attribute: attr, Message: msg})
	}
}

func validateDefinition(d *Definition) []Problem {
	v := &validator{}
	path := []string{d.Name}
	report := v.reporter(path)
	if err := validation.Name(d.Name); err != nil {
		report("name", err.Error())
	}
	checkLocales(d.NameLocalizations, validation.Name, report, "name_localizations")
	v.describe(d.Description, report)
	checkHelp(d.Help, report)
	v.fields(path, d.Fields, 0, report)
	return v.problems
}

func (v *validator) describe(desc Localizations, report func(attr, msg string)) {
	if err := validation.Description(desc.Fallback); err != nil {
		report("description", err.Error())
	}
	checkLocales(desc.Locales, validation.Description, report, "description_localizations")
}

// fields validates one level. depth counts the subcommand levels above it:
// 0 for the root, 1 inside a subcommand or group, 2 inside a grouped
// subcommand.
func (v *validator) fields(path []string, fields []Field, depth int, report func(attr, msg string)) {
	if len(fields) > validation.MaxOptions {
		report("options", fmt.Sprintf("%d options, limit is %d", len(fields), validation.MaxOptions))
	}
	seen := make(map[string]bool, len(fields))
	var variants, scalars int
	optionalSeen := false
	for i := range fields {
		f := &fields[i]
		if seen[f.Name] {
			report("options", "duplicate option name "+f.Name)
		}
		seen[f.Name] = true
		if f.Kind.IsVariant() {
			variants++
		} else {
			scalars++
			if f.Optional {
				optionalSeen = true
			} else if optionalSeen {
				report("options", "required option "+f.Name+" follows an optional option")
			}
		}
		v.field(joinPath(path, f.Name), f, depth)
	}
	if variants > 0 && scalars > 0 {
		report("options", "subcommands cannot be mixed with plain options")
	}
}

func (v *validator) field(path []string, f *Field, depth int) {
	report := v.reporter(path)
	if err := validation.Name(f.Name); err != nil {
		report("name", err.Error())
	}
	checkLocales(f.NameLocalizations, validation.Name, report, "name_localizations")
	v.describe(f.Description, report)
	checkHelp(f.Help, report)

	if !f.Kind.IsValid() {
		report("type", fmt.Sprintf("unknown kind %d", uint8(f.Kind)))
		return
	}
	if f.Kind.IsVariant() {
		v.variant(path, f, depth, report)
		return
	}

	if len(f.Children) > 0 {
		report("options", f.Kind.String()+" options cannot have nested options")
	}
	t := f.Kind.optionType()
	if f.Kind == KindChoice {
		if f.Enum == nil {
			report("choices", "choice fields need an enum")
			return
		}
		f.Enum.check(report)
		t = f.Enum.OptionType()
	} else if f.Enum != nil {
		report("choices", "only choice fields carry an enum")
	}
	if t == 0 {
		return
	}
	f.Constraints.check(t, report)
	if f.Autocomplete {
		switch {
		case t != discord.OptionTypeString && t != discord.OptionTypeInteger && t != discord.OptionTypeNumber:
			report("autocomplete", "only string, integer and number options support autocomplete")
		case f.Kind == KindChoice:
			report("autocomplete", "cannot be combined with choices")
		}
	}
}

func (v *validator) variant(path []string, f *Field, depth int, report func(attr, msg string)) {
	if f.Optional {
		report("optional", "subcommands cannot be optional")
	}
	if f.Autocomplete {
		report("autocomplete", "subcommands cannot autocomplete")
	}
	if !f.Constraints.IsZero() {
		report("constraints", "subcommands cannot carry value constraints")
	}
	if f.Enum != nil {
		report("choices", "subcommands cannot carry choices")
	}
	if depth >= validation.MaxCommandDepth {
		report("type", "subcommands nest at most two levels deep")
		return
	}
	switch f.Kind {
	case KindSubCommandGroup:
		if depth > 0 {
			report("type", "groups cannot be nested inside subcommands or groups")
			return
		}
		if len(f.Children) == 0 {
			report("options", "groups need at least one subcommand")
		}
		for i := range f.Children {
			if !f.Children[i].Kind.IsVariant() {
				report("options", "group member "+f.Children[i].Name+" is not a subcommand")
			}
		}
	case KindSubCommand:
		for i := range f.Children {
			if f.Children[i].Kind.IsVariant() {
				report("options", "subcommand "+f.Name+" cannot contain "+f.Children[i].Kind.String()+" "+f.Children[i].Name)
			}
		}
	}
	v.fields(path, f.Children, depth+1, report)
}
