package command

import (
	"math"
	"slices"

	"github.com/ggoodman/slashcmd-go/discord"
	"github.com/ggoodman/slashcmd-go/internal/validation"
)

// Constraints restrict the accepted value of a scalar field. The platform
// enforces them at input time; the decoder does not re-check them.
type Constraints struct {
	MinValue     *discord.Bound
	MaxValue     *discord.Bound
	MinLength    *int
	MaxLength    *int
	ChannelTypes []discord.ChannelType
}

// IsZero reports whether no constraint is set.
func (c Constraints) IsZero() bool {
	return c.MinValue == nil && c.MaxValue == nil && c.MinLength == nil && c.MaxLength == nil && len(c.ChannelTypes) == 0
}

func (c Constraints) clone() Constraints {
	out := Constraints{ChannelTypes: slices.Clone(c.ChannelTypes)}
	if c.MinValue != nil {
		v := *c.MinValue
		out.MinValue = &v
	}
	if c.MaxValue != nil {
		v := *c.MaxValue
		out.MaxValue = &v
	}
	if c.MinLength != nil {
		v := *c.MinLength
		out.MinLength = &v
	}
	if c.MaxLength != nil {
		v := *c.MaxLength
		out.MaxLength = &v
	}
	return out
}

// check reports constraints that do not apply to an option of type t or
// contradict each other.
func (c Constraints) check(t discord.OptionType, report func(attr, msg string)) {
	numeric := t == discord.OptionTypeInteger || t == discord.OptionTypeNumber
	for _, b := range []struct {
		attr  string
		bound *discord.Bound
	}{{"min_value", c.MinValue}, {"max_value", c.MaxValue}} {
		if b.bound == nil {
			continue
		}
		switch f := b.bound.Float(); {
		case !numeric:
			report(b.attr, "only applies to integer and number options, not "+t.String())
		case math.IsInf(f, 0) || math.IsNaN(f):
			report(b.attr, "must be a finite number, got "+b.bound.String())
		case t == discord.OptionTypeInteger && !b.bound.IsInteger():
			report(b.attr, "integer options require an integer bound, got "+b.bound.String())
		}
	}
	if numeric && c.MinValue != nil && c.MaxValue != nil && c.MinValue.Float() > c.MaxValue.Float() {
		report("min_value", "greater than max_value")
	}

	if c.MinLength != nil || c.MaxLength != nil {
		if t != discord.OptionTypeString {
			report("length", "only applies to string options, not "+t.String())
		} else {
			if c.MinLength != nil && (*c.MinLength < 0 || *c.MinLength > validation.MaxStringLength) {
				report("min_length", "must be within 0..6000")
			}
			if c.MaxLength != nil && (*c.MaxLength < 1 || *c.MaxLength > validation.MaxStringLength) {
				report("max_length", "must be within 1..6000")
			}
			if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
				report("min_length", "greater than max_length")
			}
		}
	}

	if len(c.ChannelTypes) > 0 {
		if t != discord.OptionTypeChannel {
			report("channel_types", "only applies to channel options, not "+t.String())
			return
		}
		seen := make(map[discord.ChannelType]bool, len(c.ChannelTypes))
		for _, ct := range c.ChannelTypes {
			if seen[ct] {
				report("channel_types", ct.String()+" listed more than once")
			}
			seen[ct] = true
		}
	}
}
