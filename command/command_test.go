package command

import "github.com/ggoodman/slashcmd-go/discord"

func ptr[T any](v T) *T { return &v }

// demoDefinition is a leaf command with every common option shape.
func demoDefinition() *Definition {
	return New("demo", WithDescription("Demo command"), WithHelp("More demo")).
		User("member", Description("A member"), Help("Pick someone")).
		String("text", Description("Some text")).
		Number("number", Description("A number"), Autocomplete(), MaxValue(discord.NumberBound(50))).
		Channel("channel", Optional(), Description("A text channel"), ChannelTypes(discord.ChannelGuildText, discord.ChannelPrivate)).
		Definition()
}

func subDefinition(name string) *Definition {
	return New(name, WithDescription("Subcommand "+name)).
		Integer("count", Optional(), Description("How many")).
		Definition()
}

// adminDefinition dispatches to a group of two subcommands and a bare
// subcommand.
func adminDefinition() *Definition {
	group := New("group", WithDescription("A group"), WithHelp("Grouped things")).
		Sub(subDefinition("one")).
		Sub(subDefinition("two")).
		Definition()
	return New("admin", WithDescription("Admin tools")).
		Sub(group).
		Sub(New("ping", WithDescription("Ping the bot")).Definition()).
		Definition()
}

func unitEnum() *Enum {
	return NewEnum(
		Variant{Key: "Second", Name: "seconds", Value: StringLit("s")},
		Variant{Key: "Minute", Name: "minutes", Value: StringLit("m")},
		Variant{Key: "Hour", Name: "hours", Value: StringLit("h"), NameLocalizations: map[string]string{"fr": "heures"}},
	)
}

func remindDefinition() *Definition {
	return New("remind", WithDescription("Set a reminder")).
		Integer("amount", Description("How long"), MinValue(discord.IntegerBound(1))).
		Choice("unit", unitEnum(), Description("Time unit")).
		Boolean("private", Optional(), Description("Only tell me")).
		Mentionable("notify", Optional(), Description("Who else to ping")).
		ID("target", Optional(), Description("Raw target id")).
		Attachment("file", Optional(), Description("Something to attach")).
		Role("role", Optional(), Description("A role")).
		Definition()
}

func demoInput() discord.CommandInput {
	return discord.CommandInput{
		Options: []discord.InteractionOption{
			{Name: "member", Value: discord.UserValue(42)},
			{Name: "text", Value: discord.StringValue("hello")},
			{Name: "number", Value: discord.NumberValue(12.5)},
			{Name: "channel", Value: discord.ChannelValue(7)},
		},
		Resolved: &discord.Resolved{
			Users:    map[discord.Snowflake]discord.User{42: {ID: 42, Username: "ada"}},
			Members:  map[discord.Snowflake]discord.Member{42: {Nick: "Ada"}},
			Channels: map[discord.Snowflake]discord.InteractionChannel{7: {ID: 7, Name: "general", Type: discord.ChannelGuildText}},
		},
	}
}
