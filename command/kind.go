package command

import (
	"fmt"

	"github.com/ggoodman/slashcmd-go/discord"
)

// Kind is the semantic kind of a Definition AST node.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInteger
	KindNumber
	KindBoolean
	KindUser
	KindChannel
	KindRole
	KindMentionable
	KindAttachment
	// KindID is a bare mentionable id that is never resolved.
	KindID
	KindSubCommand
	KindSubCommandGroup
	// KindChoice is a scalar restricted to the variants of an Enum.
	KindChoice
)

var kindNames = [...]string{
	KindString:          "string",
	KindInteger:         "integer",
	KindNumber:          "number",
	KindBoolean:         "boolean",
	KindUser:            "user",
	KindChannel:         "channel",
	KindRole:            "role",
	KindMentionable:     "mentionable",
	KindAttachment:      "attachment",
	KindID:              "id",
	KindSubCommand:      "subcommand",
	KindSubCommandGroup: "group",
	KindChoice:          "choice",
}

func (k Kind) String() string {
	if k.IsValid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsValid reports whether k is one of the declared kinds.
func (k Kind) IsValid() bool { return k >= KindString && k <= KindChoice }

// IsVariant reports whether nodes of this kind select among child commands.
func (k Kind) IsVariant() bool { return k == KindSubCommand || k == KindSubCommandGroup }

// ParseKind parses the lower-case kind name used in definition documents.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name != "" && name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("command: unknown kind %q", s)
}

// optionType maps a kind to its platform option type. Choice kinds take
// the option type of their enum literal and are resolved by the caller.
func (k Kind) optionType() discord.OptionType {
	switch k {
	case KindString:
		return discord.OptionTypeString
	case KindInteger:
		return discord.OptionTypeInteger
	case KindNumber:
		return discord.OptionTypeNumber
	case KindBoolean:
		return discord.OptionTypeBoolean
	case KindUser:
		return discord.OptionTypeUser
	case KindChannel:
		return discord.OptionTypeChannel
	case KindRole:
		return discord.OptionTypeRole
	case KindMentionable, KindID:
		return discord.OptionTypeMentionable
	case KindAttachment:
		return discord.OptionTypeAttachment
	case KindSubCommand:
		return discord.OptionTypeSubCommand
	case KindSubCommandGroup:
		return discord.OptionTypeSubCommandGroup
	}
	return 0
}
