package discord

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Snowflake is a platform entity id. It travels as a decimal string.
type Snowflake uint64

func (s Snowflake) String() string { return strconv.FormatUint(uint64(s), 10) }

// IsZero reports whether the id is unset.
func (s Snowflake) IsZero() bool { return s == 0 }

func (s Snowflake) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts both the canonical string form and a bare number.
func (s *Snowflake) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("discord: invalid snowflake %q: %w", raw, err)
	}
	*s = Snowflake(v)
	return nil
}

// ParseSnowflake parses a decimal id.
func ParseSnowflake(s string) (Snowflake, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("discord: invalid snowflake %q: %w", s, err)
	}
	return Snowflake(v), nil
}

// Permissions is a permission bit set. It travels as a decimal string.
type Permissions uint64

const (
	PermissionAdministrator  Permissions = 1 << 3
	PermissionManageChannels Permissions = 1 << 4
	PermissionManageGuild    Permissions = 1 << 5
	PermissionSendMessages   Permissions = 1 << 11
	PermissionManageMessages Permissions = 1 << 13
	PermissionManageRoles    Permissions = 1 << 28
)

func (p Permissions) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(p), 10))
}

func (p *Permissions) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("discord: invalid permissions %q: %w", raw, err)
	}
	*p = Permissions(v)
	return nil
}

// CommandType is the application command type. Only chat input commands
// carry options.
type CommandType int

const (
	CommandTypeChatInput CommandType = 1
	CommandTypeUser      CommandType = 2
	CommandTypeMessage   CommandType = 3
)

// OptionType is the platform option type number.
type OptionType int

const (
	OptionTypeSubCommand      OptionType = 1
	OptionTypeSubCommandGroup OptionType = 2
	OptionTypeString          OptionType = 3
	OptionTypeInteger         OptionType = 4
	OptionTypeBoolean         OptionType = 5
	OptionTypeUser            OptionType = 6
	OptionTypeChannel         OptionType = 7
	OptionTypeRole            OptionType = 8
	OptionTypeMentionable     OptionType = 9
	OptionTypeNumber          OptionType = 10
	OptionTypeAttachment      OptionType = 11
)

var optionTypeNames = map[OptionType]string{
	OptionTypeSubCommand:      "SUB_COMMAND",
	OptionTypeSubCommandGroup: "SUB_COMMAND_GROUP",
	OptionTypeString:          "STRING",
	OptionTypeInteger:         "INTEGER",
	OptionTypeBoolean:         "BOOLEAN",
	OptionTypeUser:            "USER",
	OptionTypeChannel:         "CHANNEL",
	OptionTypeRole:            "ROLE",
	OptionTypeMentionable:     "MENTIONABLE",
	OptionTypeNumber:          "NUMBER",
	OptionTypeAttachment:      "ATTACHMENT",
}

func (t OptionType) String() string {
	if n, ok := optionTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("OptionType(%d)", int(t))
}

// IsValid reports whether t is a known option type.
func (t OptionType) IsValid() bool {
	_, ok := optionTypeNames[t]
	return ok
}

// ChannelType restricts which channels a channel option accepts.
type ChannelType int

const (
	ChannelGuildText          ChannelType = 0
	ChannelPrivate            ChannelType = 1
	ChannelGuildVoice         ChannelType = 2
	ChannelGroup              ChannelType = 3
	ChannelGuildCategory      ChannelType = 4
	ChannelGuildNews          ChannelType = 5
	ChannelGuildStore         ChannelType = 6
	ChannelGuildNewsThread    ChannelType = 10
	ChannelGuildPublicThread  ChannelType = 11
	ChannelGuildPrivateThread ChannelType = 12
	ChannelGuildStageVoice    ChannelType = 13
	ChannelGuildDirectory     ChannelType = 14
	ChannelGuildForum         ChannelType = 15
)

var channelTypeNames = []struct {
	name string
	typ  ChannelType
}{
	{"guild_text", ChannelGuildText},
	{"private", ChannelPrivate},
	{"guild_voice", ChannelGuildVoice},
	{"group", ChannelGroup},
	{"guild_category", ChannelGuildCategory},
	{"guild_news", ChannelGuildNews},
	{"guild_store", ChannelGuildStore},
	{"guild_news_thread", ChannelGuildNewsThread},
	{"guild_public_thread", ChannelGuildPublicThread},
	{"guild_private_thread", ChannelGuildPrivateThread},
	{"guild_stage_voice", ChannelGuildStageVoice},
	{"guild_directory", ChannelGuildDirectory},
	{"guild_forum", ChannelGuildForum},
}

func (c ChannelType) String() string {
	for _, e := range channelTypeNames {
		if e.typ == c {
			return e.name
		}
	}
	return fmt.Sprintf("ChannelType(%d)", int(c))
}

// ParseChannelType parses a snake_case channel type name such as
// "guild_text".
func ParseChannelType(name string) (ChannelType, error) {
	for _, e := range channelTypeNames {
		if e.name == name {
			return e.typ, nil
		}
	}
	return 0, fmt.Errorf("discord: %q is not a valid channel type", name)
}

// ParseChannelTypes parses a whitespace separated list of channel type names,
// e.g. "guild_text private".
func ParseChannelTypes(list string) ([]ChannelType, error) {
	fields := strings.Fields(list)
	out := make([]ChannelType, 0, len(fields))
	for _, f := range fields {
		ct, err := ParseChannelType(f)
		if err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, nil
}
