package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ApplicationCommand is the registration payload for one chat input command.
type ApplicationCommand struct {
	ID                       Snowflake         `json:"id,omitzero"`
	Type                     CommandType       `json:"type"`
	Name                     string            `json:"name"`
	NameLocalizations        map[string]string `json:"name_localizations,omitempty"`
	Description              string            `json:"description"`
	DescriptionLocalizations map[string]string `json:"description_localizations,omitempty"`
	Options                  []CommandOption   `json:"options,omitempty"`
	DefaultMemberPermissions *Permissions      `json:"default_member_permissions,omitempty"`
	DMPermission             *bool             `json:"dm_permission,omitempty"`
	NSFW                     *bool             `json:"nsfw,omitempty"`
}

// CommandOption is a single registration option. Subcommands and groups
// nest further options; scalar options carry constraints and choices.
type CommandOption struct {
	Type                     OptionType        `json:"type"`
	Name                     string            `json:"name"`
	NameLocalizations        map[string]string `json:"name_localizations,omitempty"`
	Description              string            `json:"description"`
	DescriptionLocalizations map[string]string `json:"description_localizations,omitempty"`
	Required                 *bool             `json:"required,omitempty"`
	Choices                  []Choice          `json:"choices,omitempty"`
	Options                  []CommandOption   `json:"options,omitempty"`
	ChannelTypes             []ChannelType     `json:"channel_types,omitempty"`
	MinValue                 *Bound            `json:"min_value,omitempty"`
	MaxValue                 *Bound            `json:"max_value,omitempty"`
	MinLength                *int              `json:"min_length,omitempty"`
	MaxLength                *int              `json:"max_length,omitempty"`
	Autocomplete             *bool             `json:"autocomplete,omitempty"`
}

// Choice is a predefined value for a string, integer or number option.
type Choice struct {
	Name              string            `json:"name"`
	NameLocalizations map[string]string `json:"name_localizations,omitempty"`
	Value             ChoiceValue       `json:"value"`
}

// ChoiceValue is a choice literal. Exactly one of string, integer or number
// is held; Type reports which.
type ChoiceValue struct {
	typ OptionType
	s   string
	i   int64
	f   float64
}

func StringChoice(s string) ChoiceValue   { return ChoiceValue{typ: OptionTypeString, s: s} }
func IntegerChoice(i int64) ChoiceValue   { return ChoiceValue{typ: OptionTypeInteger, i: i} }
func NumberChoice(f float64) ChoiceValue  { return ChoiceValue{typ: OptionTypeNumber, f: f} }
func (v ChoiceValue) Type() OptionType    { return v.typ }
func (v ChoiceValue) Str() (string, bool) { return v.s, v.typ == OptionTypeString }
func (v ChoiceValue) Int() (int64, bool)  { return v.i, v.typ == OptionTypeInteger }

func (v ChoiceValue) Float() (float64, bool) { return v.f, v.typ == OptionTypeNumber }

func (v ChoiceValue) String() string {
	switch v.typ {
	case OptionTypeString:
		return strconv.Quote(v.s)
	case OptionTypeInteger:
		return strconv.FormatInt(v.i, 10)
	case OptionTypeNumber:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return "<invalid>"
	}
}

func (v ChoiceValue) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case OptionTypeString:
		return json.Marshal(v.s)
	case OptionTypeInteger:
		return json.Marshal(v.i)
	case OptionTypeNumber:
		return json.Marshal(v.f)
	default:
		return nil, fmt.Errorf("discord: choice value has no type")
	}
}

func (v *ChoiceValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = StringChoice(s)
		return nil
	}
	integer, i, f, err := parseJSONNumber(b)
	if err != nil {
		return fmt.Errorf("discord: choice value: %w", err)
	}
	if integer {
		*v = IntegerChoice(i)
	} else {
		*v = NumberChoice(f)
	}
	return nil
}

// Bound is a numeric min/max constraint. Integer options carry integer
// bounds; number options may carry either.
type Bound struct {
	integer bool
	i       int64
	f       float64
}

func IntegerBound(i int64) Bound  { return Bound{integer: true, i: i} }
func NumberBound(f float64) Bound { return Bound{f: f} }

// IsInteger reports whether the bound was declared as an integer.
func (b Bound) IsInteger() bool { return b.integer }

// Int returns the integer bound; it is only meaningful when IsInteger.
func (b Bound) Int() int64 { return b.i }

// Float returns the bound as a float regardless of how it was declared.
func (b Bound) Float() float64 {
	if b.integer {
		return float64(b.i)
	}
	return b.f
}

func (b Bound) String() string {
	if b.integer {
		return strconv.FormatInt(b.i, 10)
	}
	return strconv.FormatFloat(b.f, 'g', -1, 64)
}

func (b Bound) MarshalJSON() ([]byte, error) {
	if b.integer {
		return json.Marshal(b.i)
	}
	return json.Marshal(b.f)
}

func (b *Bound) UnmarshalJSON(data []byte) error {
	integer, i, f, err := parseJSONNumber(bytes.TrimSpace(data))
	if err != nil {
		return fmt.Errorf("discord: bound: %w", err)
	}
	if integer {
		*b = IntegerBound(i)
	} else {
		*b = NumberBound(f)
	}
	return nil
}

// parseJSONNumber reports whether the literal is written as an integer and
// returns its integer or float value accordingly.
func parseJSONNumber(b []byte) (bool, int64, float64, error) {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return false, 0, 0, err
	}
	if i, err := n.Int64(); err == nil {
		return true, i, 0, nil
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return false, 0, 0, fmt.Errorf("invalid number %s", n)
	}
	return false, 0, f, nil
}
