package discord

import (
	"encoding/json"
	"fmt"
)

// InteractionType identifies the kind of an incoming interaction.
type InteractionType int

const (
	InteractionPing               InteractionType = 1
	InteractionApplicationCommand InteractionType = 2
	InteractionMessageComponent   InteractionType = 3
	InteractionAutocomplete       InteractionType = 4
	InteractionModalSubmit        InteractionType = 5
)

// Interaction is the envelope of an incoming interaction, reduced to what
// is needed to route its command data.
type Interaction struct {
	ID      Snowflake       `json:"id"`
	Type    InteractionType `json:"type"`
	GuildID Snowflake       `json:"guild_id,omitzero"`
	Data    *CommandData    `json:"data,omitempty"`
}

// CommandData is the application command portion of an interaction payload.
type CommandData struct {
	ID       Snowflake           `json:"id"`
	Name     string              `json:"name"`
	Type     CommandType         `json:"type"`
	GuildID  Snowflake           `json:"guild_id,omitzero"`
	Options  []InteractionOption `json:"options,omitempty"`
	Resolved *Resolved           `json:"resolved,omitempty"`
}

// Input returns the option tree and resolved side table of the command.
func (d *CommandData) Input() CommandInput {
	return CommandInput{Options: d.Options, Resolved: d.Resolved}
}

// CommandInput is what the decoder consumes: the top-level options of one
// invocation plus the resolved-entity side table.
type CommandInput struct {
	Options  []InteractionOption
	Resolved *Resolved
}

// InteractionOption is one node of a runtime option tree.
type InteractionOption struct {
	Name  string
	Value OptionValue
}

// OptionValue is the sealed tagged union carried by an InteractionOption.
// Only the concrete types in this package implement it.
type OptionValue interface {
	Type() OptionType
	optionValue()
}

type (
	StringValue      string
	IntegerValue     int64
	NumberValue      float64
	BooleanValue     bool
	UserValue        Snowflake
	ChannelValue     Snowflake
	RoleValue        Snowflake
	MentionableValue Snowflake
	AttachmentValue  Snowflake

	// SubCommandValue holds the options of the selected subcommand.
	SubCommandValue []InteractionOption
	// SubCommandGroupValue holds the single selected subcommand of a group.
	SubCommandGroupValue []InteractionOption
)

// FocusedValue is the partial, unvalidated text a user is typing into an
// autocomplete-enabled option. The platform sends it as a string whatever
// the option's declared type.
type FocusedValue struct {
	Kind OptionType
	Text string
}

func (StringValue) Type() OptionType          { return OptionTypeString }
func (IntegerValue) Type() OptionType         { return OptionTypeInteger }
func (NumberValue) Type() OptionType          { return OptionTypeNumber }
func (BooleanValue) Type() OptionType         { return OptionTypeBoolean }
func (UserValue) Type() OptionType            { return OptionTypeUser }
func (ChannelValue) Type() OptionType         { return OptionTypeChannel }
func (RoleValue) Type() OptionType            { return OptionTypeRole }
func (MentionableValue) Type() OptionType     { return OptionTypeMentionable }
func (AttachmentValue) Type() OptionType      { return OptionTypeAttachment }
func (SubCommandValue) Type() OptionType      { return OptionTypeSubCommand }
func (SubCommandGroupValue) Type() OptionType { return OptionTypeSubCommandGroup }
func (v FocusedValue) Type() OptionType       { return v.Kind }

func (StringValue) optionValue()          {}
func (IntegerValue) optionValue()         {}
func (NumberValue) optionValue()          {}
func (BooleanValue) optionValue()         {}
func (UserValue) optionValue()            {}
func (ChannelValue) optionValue()         {}
func (RoleValue) optionValue()            {}
func (MentionableValue) optionValue()     {}
func (AttachmentValue) optionValue()      {}
func (SubCommandValue) optionValue()      {}
func (SubCommandGroupValue) optionValue() {}
func (FocusedValue) optionValue()         {}

// wireOption is the JSON shape of an interaction option.
type wireOption struct {
	Name    string              `json:"name"`
	Type    OptionType          `json:"type"`
	Value   json.RawMessage     `json:"value,omitempty"`
	Options []InteractionOption `json:"options,omitempty"`
	Focused bool                `json:"focused,omitempty"`
}

func (o InteractionOption) MarshalJSON() ([]byte, error) {
	w := wireOption{Name: o.Name}
	if o.Value == nil {
		return nil, fmt.Errorf("discord: option %s has no value", o.Name)
	}
	w.Type = o.Value.Type()
	var payload any
	switch v := o.Value.(type) {
	case SubCommandValue:
		w.Options = []InteractionOption(v)
	case SubCommandGroupValue:
		w.Options = []InteractionOption(v)
	case FocusedValue:
		w.Focused = true
		payload = v.Text
	case UserValue, ChannelValue, RoleValue, MentionableValue, AttachmentValue:
		payload = Snowflake(snowflakeOf(v))
	default:
		payload = v
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("discord: option %s: %w", o.Name, err)
		}
		w.Value = raw
	}
	return json.Marshal(w)
}

func (o *InteractionOption) UnmarshalJSON(b []byte) error {
	var w wireOption
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	o.Name = w.Name
	if w.Focused {
		var text string
		if err := json.Unmarshal(w.Value, &text); err != nil {
			// Partial numeric input may arrive unquoted.
			text = string(w.Value)
		}
		o.Value = FocusedValue{Kind: w.Type, Text: text}
		return nil
	}
	v, err := decodeWireValue(w)
	if err != nil {
		return fmt.Errorf("discord: option %s: %w", w.Name, err)
	}
	o.Value = v
	return nil
}

func decodeWireValue(w wireOption) (OptionValue, error) {
	switch w.Type {
	case OptionTypeSubCommand:
		return SubCommandValue(w.Options), nil
	case OptionTypeSubCommandGroup:
		return SubCommandGroupValue(w.Options), nil
	}
	if len(w.Value) == 0 {
		return nil, fmt.Errorf("missing value for %s option", w.Type)
	}
	switch w.Type {
	case OptionTypeString:
		var s string
		err := json.Unmarshal(w.Value, &s)
		return StringValue(s), err
	case OptionTypeInteger:
		var i int64
		err := json.Unmarshal(w.Value, &i)
		return IntegerValue(i), err
	case OptionTypeNumber:
		var f float64
		err := json.Unmarshal(w.Value, &f)
		return NumberValue(f), err
	case OptionTypeBoolean:
		var bv bool
		err := json.Unmarshal(w.Value, &bv)
		return BooleanValue(bv), err
	case OptionTypeUser, OptionTypeChannel, OptionTypeRole, OptionTypeMentionable, OptionTypeAttachment:
		var id Snowflake
		if err := json.Unmarshal(w.Value, &id); err != nil {
			return nil, err
		}
		return idValue(w.Type, id), nil
	default:
		return nil, fmt.Errorf("unknown option type %d", int(w.Type))
	}
}

func idValue(t OptionType, id Snowflake) OptionValue {
	switch t {
	case OptionTypeUser:
		return UserValue(id)
	case OptionTypeChannel:
		return ChannelValue(id)
	case OptionTypeRole:
		return RoleValue(id)
	case OptionTypeMentionable:
		return MentionableValue(id)
	default:
		return AttachmentValue(id)
	}
}

// snowflakeOf extracts the id of an id-typed option value.
func snowflakeOf(v OptionValue) Snowflake {
	switch id := v.(type) {
	case UserValue:
		return Snowflake(id)
	case ChannelValue:
		return Snowflake(id)
	case RoleValue:
		return Snowflake(id)
	case MentionableValue:
		return Snowflake(id)
	case AttachmentValue:
		return Snowflake(id)
	}
	return 0
}

// IDOf returns the id carried by an id-typed option value.
func IDOf(v OptionValue) (Snowflake, bool) {
	switch v.(type) {
	case UserValue, ChannelValue, RoleValue, MentionableValue, AttachmentValue:
		return snowflakeOf(v), true
	}
	return 0, false
}
