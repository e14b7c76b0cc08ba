package command

import (
	"maps"
	"math"

	"github.com/ggoodman/slashcmd-go/discord"
	"github.com/ggoodman/slashcmd-go/internal/validation"
)

// Variant is one member of a choice enumeration.
type Variant struct {
	// Key identifies the variant in Go code; it defaults to Name.
	Key               string
	Name              string
	NameLocalizations map[string]string
	Value             Literal
}

// Enum is an ordered, immutable set of choice variants. Duplicates and mixed
// literal kinds are accepted here and rejected when a definition using the
// enum is compiled.
type Enum struct {
	variants []Variant
}

// NewEnum returns an enum whose choices appear in declaration order.
func NewEnum(variants ...Variant) *Enum {
	e := &Enum{variants: make([]Variant, len(variants))}
	for i, v := range variants {
		if v.Key == "" {
			v.Key = v.Name
		}
		v.NameLocalizations = maps.Clone(v.NameLocalizations)
		e.variants[i] = v
	}
	return e
}

// Len returns the number of variants.
func (e *Enum) Len() int {
	if e == nil {
		return 0
	}
	return len(e.variants)
}

// Variants returns a copy of the variants in declaration order.
func (e *Enum) Variants() []Variant {
	if e == nil {
		return nil
	}
	out := make([]Variant, len(e.variants))
	for i, v := range e.variants {
		v.NameLocalizations = maps.Clone(v.NameLocalizations)
		out[i] = v
	}
	return out
}

// Kind returns the literal kind of the first variant.
func (e *Enum) Kind() LiteralKind {
	if e.Len() == 0 {
		return 0
	}
	return e.variants[0].Value.Kind()
}

// OptionType is the platform option type the choices are registered under.
func (e *Enum) OptionType() discord.OptionType {
	if e.Len() == 0 {
		return 0
	}
	return e.variants[0].Value.optionType()
}

// Choices returns the platform choice list, one entry per variant, in
// declaration order, so Choices()[i] always describes Variants()[i]. A
// variant whose literal cannot be a choice value gets a zero Value; Compile
// rejects such enums.
func (e *Enum) Choices() []discord.Choice {
	if e.Len() == 0 {
		return nil
	}
	out := make([]discord.Choice, 0, len(e.variants))
	for _, v := range e.variants {
		cv, _ := v.Value.AsChoiceValue(v.Name, "value")
		out = append(out, discord.Choice{
			Name:              v.Name,
			NameLocalizations: canonicalLocales(v.NameLocalizations),
			Value:             cv,
		})
	}
	return out
}

// FromLiteral returns the first variant carrying the literal.
func (e *Enum) FromLiteral(l Literal) (Variant, bool) {
	if e == nil {
		return Variant{}, false
	}
	for _, v := range e.variants {
		if v.Value.Equal(l) {
			return v, true
		}
	}
	return Variant{}, false
}

// FromKey returns the variant with the given key.
func (e *Enum) FromKey(key string) (Variant, bool) {
	if e == nil {
		return Variant{}, false
	}
	for _, v := range e.variants {
		if v.Key == key {
			return v, true
		}
	}
	return Variant{}, false
}

func (e *Enum) check(report func(attr, msg string)) {
	if e.Len() == 0 {
		report("choices", "choice fields need at least one variant")
		return
	}
	if len(e.variants) > validation.MaxChoices {
		report("choices", "more than 25 choices")
	}
	kind := e.variants[0].Value.Kind()
	names := make(map[string]bool, len(e.variants))
	keys := make(map[string]bool, len(e.variants))
	values := make(map[Literal]bool, len(e.variants))
	for _, v := range e.variants {
		attr := "choices[" + v.Name + "]"
		if err := validation.ChoiceName(v.Name); err != nil {
			report(attr, err.Error())
		}
		checkLocales(v.NameLocalizations, validation.ChoiceName, report, attr+".name_localizations")
		switch k := v.Value.Kind(); {
		case k == LiteralBool || k == 0:
			report(attr, "choice values must be string, integer or float, got "+k.String())
		case k != kind:
			report(attr, "choice value kind "+k.String()+" differs from "+kind.String())
		case k == LiteralString:
			if err := validation.ChoiceStringValue(v.Value.s); err != nil {
				report(attr, err.Error())
			}
		case k == LiteralNumber && (math.IsInf(v.Value.f, 0) || math.IsNaN(v.Value.f)):
			report(attr, "choice value must be a finite number, got "+v.Value.String())
		}
		if names[v.Name] {
			report(attr, "duplicate choice name")
		}
		if keys[v.Key] && v.Key != v.Name {
			report(attr, "duplicate choice key "+v.Key)
		}
		if values[v.Value] {
			report(attr, "duplicate choice value "+v.Value.String())
		}
		names[v.Name], keys[v.Key], values[v.Value] = true, true, true
	}
}
