package command

import (
	"errors"
	"testing"

	"github.com/ggoodman/slashcmd-go/discord"
)

func decodeErr(t *testing.T, err error) *DecodeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected decode error")
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	return de
}

func TestDecode_Demo(t *testing.T) {
	c := MustCompile(demoDefinition())
	opts, err := c.Decode(demoInput())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	member, ok := opts.Get("member")
	if !ok || member.ID != 42 || member.User == nil || member.User.Username != "ada" || member.Member == nil || member.Member.Nick != "Ada" {
		t.Fatalf("unexpected member %+v", member)
	}
	if s, ok := opts.String("text"); !ok || s != "hello" {
		t.Fatalf("text = %q, %v", s, ok)
	}
	if n, ok := opts.Number("number"); !ok || n != 12.5 {
		t.Fatalf("number = %v, %v", n, ok)
	}
	ch, ok := opts.Get("channel")
	if !ok || ch.Channel == nil || ch.Channel.Name != "general" {
		t.Fatalf("unexpected channel %+v", ch)
	}
	if len(opts.Route()) != 0 {
		t.Fatalf("leaf command has a route: %v", opts.Route())
	}
}

func TestDecode_OptionalAbsent(t *testing.T) {
	c := MustCompile(demoDefinition())
	in := demoInput()
	in.Options = in.Options[:3]
	opts, err := c.Decode(in)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if opts.Has("channel") {
		t.Fatalf("channel should be absent")
	}
	if _, ok := opts.ID("channel"); ok {
		t.Fatalf("absent channel returned an id")
	}
	vals := opts.Values()
	if len(vals) != 4 || vals[3].Set || vals[3].Name != "channel" {
		t.Fatalf("unexpected values %+v", vals)
	}
}

func TestDecode_Failures(t *testing.T) {
	c := MustCompile(demoDefinition())
	tests := []struct {
		name   string
		mutate func([]discord.InteractionOption) []discord.InteractionOption
		code   DecodeCode
		field  string
	}{
		{
			name:   "missing required",
			mutate: func(o []discord.InteractionOption) []discord.InteractionOption { return o[1:] },
			code:   CodeMissingRequired,
			field:  "member",
		},
		{
			name: "type mismatch",
			mutate: func(o []discord.InteractionOption) []discord.InteractionOption {
				o[2].Value = discord.StringValue("12.5")
				return o
			},
			code:  CodeTypeMismatch,
			field: "number",
		},
		{
			name: "unknown option",
			mutate: func(o []discord.InteractionOption) []discord.InteractionOption {
				return append(o, discord.InteractionOption{Name: "nmber", Value: discord.NumberValue(1)})
			},
			code:  CodeUnknownOption,
			field: "nmber",
		},
		{
			name: "duplicate option",
			mutate: func(o []discord.InteractionOption) []discord.InteractionOption {
				return append(o, o[1])
			},
			code:  CodeDuplicateOption,
			field: "text",
		},
		{
			name: "focused value outside autocomplete",
			mutate: func(o []discord.InteractionOption) []discord.InteractionOption {
				o[2].Value = discord.FocusedValue{Kind: discord.OptionTypeNumber, Text: "1"}
				return o
			},
			code:  CodeUnexpectedFocus,
			field: "number",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := demoInput()
			in.Options = tt.mutate(append([]discord.InteractionOption(nil), in.Options...))
			opts, err := c.Decode(in)
			if opts != nil {
				t.Fatalf("partial result returned alongside error")
			}
			de := decodeErr(t, err)
			if de.Code != tt.code || de.Field() != tt.field {
				t.Fatalf("got %s on %s, want %s on %s", de.Code, de.Field(), tt.code, tt.field)
			}
			if de.Path[0] != "demo" {
				t.Fatalf("path should start at the root: %v", de.Path)
			}
		})
	}
}

func TestDecode_Suggestion(t *testing.T) {
	c := MustCompile(demoDefinition())
	in := demoInput()
	in.Options = append(in.Options, discord.InteractionOption{Name: "nmber", Value: discord.NumberValue(1)})
	de := decodeErr(t, func() error { _, err := c.Decode(in); return err }())
	if de.Suggestion != "number" {
		t.Fatalf("suggestion = %q", de.Suggestion)
	}
	if got := de.Error(); got != `command: demo.nmber: unknown option (did you mean "number"?)` {
		t.Fatalf("unexpected message %q", got)
	}

	in = demoInput()
	in.Options = append(in.Options, discord.InteractionOption{Name: "zzzzzz", Value: discord.NumberValue(1)})
	de = decodeErr(t, func() error { _, err := c.Decode(in); return err }())
	if de.Suggestion != "" {
		t.Fatalf("far names should not be suggested, got %q", de.Suggestion)
	}
}

func TestDecode_TypeMismatchMessage(t *testing.T) {
	c := MustCompile(demoDefinition())
	in := demoInput()
	in.Options[2].Value = discord.StringValue("x")
	_, err := c.Decode(in)
	de := decodeErr(t, err)
	if de.Expected != discord.OptionTypeNumber || de.Got != discord.OptionTypeString {
		t.Fatalf("unexpected expected/got: %s/%s", de.Expected, de.Got)
	}
	if de.Error() != "command: demo.number: type mismatch: expected NUMBER, got STRING" {
		t.Fatalf("unexpected message %q", de.Error())
	}
}

func TestDecode_BoundsNotRevalidated(t *testing.T) {
	c := MustCompile(demoDefinition())
	in := demoInput()
	in.Options[2].Value = discord.NumberValue(500)
	opts, err := c.Decode(in)
	if err != nil {
		t.Fatalf("decoder must not enforce max_value: %v", err)
	}
	if n, _ := opts.Number("number"); n != 500 {
		t.Fatalf("number = %v", n)
	}
}

func TestDecode_MissingResolvedEntity(t *testing.T) {
	c := MustCompile(demoDefinition())
	in := demoInput()
	in.Resolved = nil
	opts, err := c.Decode(in)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	member, _ := opts.Get("member")
	if member.User != nil || member.ID != 42 {
		t.Fatalf("unexpected member %+v", member)
	}
}

func TestDecode_Choices(t *testing.T) {
	c := MustCompile(remindDefinition())
	in := discord.CommandInput{
		Options: []discord.InteractionOption{
			{Name: "amount", Value: discord.IntegerValue(5)},
			{Name: "unit", Value: discord.StringValue("m")},
			{Name: "notify", Value: discord.MentionableValue(9)},
			{Name: "target", Value: discord.MentionableValue(10)},
			{Name: "file", Value: discord.AttachmentValue(11)},
		},
		Resolved: &discord.Resolved{
			Roles:       map[discord.Snowflake]discord.Role{9: {ID: 9, Name: "mods"}, 10: {ID: 10, Name: "other"}},
			Attachments: map[discord.Snowflake]discord.Attachment{11: {ID: 11, Filename: "a.txt"}},
		},
	}
	opts, err := c.Decode(in)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	v, ok := opts.Choice("unit")
	if !ok || v.Key != "Minute" || v.Name != "minutes" {
		t.Fatalf("unit = %+v, %v", v, ok)
	}
	if s, ok := opts.String("unit"); !ok || s != "m" {
		t.Fatalf("string accessor on string choice = %q, %v", s, ok)
	}
	notify, _ := opts.Get("notify")
	if notify.Role == nil || notify.Role.Name != "mods" || notify.User != nil {
		t.Fatalf("mentionable should resolve to the role: %+v", notify)
	}
	target, _ := opts.Get("target")
	if target.Role != nil || target.ID != 10 {
		t.Fatalf("id option must stay unresolved: %+v", target)
	}
	file, _ := opts.Get("file")
	if file.Attachment == nil || file.Attachment.Filename != "a.txt" {
		t.Fatalf("unexpected attachment %+v", file)
	}
	if opts.Has("private") {
		t.Fatalf("private should be absent")
	}

	in.Options[1].Value = discord.StringValue("d")
	_, err = c.Decode(in)
	de := decodeErr(t, err)
	if de.Code != CodeUnknownChoice || de.Field() != "unit" || de.Value != `"d"` {
		t.Fatalf("unexpected error %+v", de)
	}
}

func TestValue_Interface(t *testing.T) {
	c := MustCompile(remindDefinition())
	opts, err := c.Decode(discord.CommandInput{Options: []discord.InteractionOption{
		{Name: "amount", Value: discord.IntegerValue(5)},
		{Name: "unit", Value: discord.StringValue("h")},
		{Name: "target", Value: discord.MentionableValue(10)},
	}})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := map[string]any{
		"amount":  int64(5),
		"unit":    "Hour",
		"private": nil,
		"target":  discord.Snowflake(10),
	}
	for _, v := range opts.Values() {
		w, listed := want[v.Name]
		if !listed {
			continue
		}
		if got := v.Interface(); got != w {
			t.Fatalf("%s: Interface() = %#v, want %#v", v.Name, got, w)
		}
	}
}

func TestDecode_Subcommands(t *testing.T) {
	c := MustCompile(adminDefinition())
	in := discord.CommandInput{Options: []discord.InteractionOption{{
		Name: "group",
		Value: discord.SubCommandGroupValue{{
			Name:  "two",
			Value: discord.SubCommandValue{{Name: "count", Value: discord.IntegerValue(3)}},
		}},
	}}}
	opts, err := c.Decode(in)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if route := opts.Route(); len(route) != 2 || route[0] != "group" || route[1] != "two" {
		t.Fatalf("route = %v", route)
	}
	name, groupOpts, ok := opts.Subcommand()
	if !ok || name != "group" || !opts.SelectedGroup() {
		t.Fatalf("unexpected selection %q %v", name, ok)
	}
	if _, _, ok := groupOpts.Leaf().Subcommand(); ok {
		t.Fatalf("leaf has a selection")
	}
	leaf := opts.Leaf()
	if n, ok := leaf.Integer("count"); !ok || n != 3 {
		t.Fatalf("count = %d, %v", n, ok)
	}
	if p := leaf.Path(); len(p) != 3 || p[2] != "two" {
		t.Fatalf("leaf path = %v", p)
	}

	ping := discord.CommandInput{Options: []discord.InteractionOption{{Name: "ping", Value: discord.SubCommandValue(nil)}}}
	opts, err = c.Decode(ping)
	if err != nil {
		t.Fatalf("Decode ping failed: %v", err)
	}
	if name, _, _ := opts.Subcommand(); name != "ping" || opts.SelectedGroup() {
		t.Fatalf("unexpected selection %q", name)
	}
}

func TestDecode_SubcommandFailures(t *testing.T) {
	c := MustCompile(adminDefinition())
	sub := func(name string, nested ...discord.InteractionOption) discord.InteractionOption {
		return discord.InteractionOption{Name: name, Value: discord.SubCommandValue(nested)}
	}
	group := func(nested ...discord.InteractionOption) discord.InteractionOption {
		return discord.InteractionOption{Name: "group", Value: discord.SubCommandGroupValue(nested)}
	}
	tests := []struct {
		name string
		opts []discord.InteractionOption
		code DecodeCode
		path string
	}{
		{"none selected", nil, CodeNoSubcommand, "admin"},
		{"two selected", []discord.InteractionOption{sub("ping"), group(sub("one"))}, CodeAmbiguousSubcommand, "admin"},
		{"unknown", []discord.InteractionOption{sub("pong")}, CodeUnknownSubcommand, "admin.pong"},
		{"group as subcommand", []discord.InteractionOption{{Name: "group", Value: discord.SubCommandValue(nil)}}, CodeTypeMismatch, "admin.group"},
		{"empty group", []discord.InteractionOption{group()}, CodeNoSubcommand, "admin.group"},
		{"nested unknown option", []discord.InteractionOption{group(sub("one", discord.InteractionOption{Name: "cnt", Value: discord.IntegerValue(1)}))}, CodeUnknownOption, "admin.group.one.cnt"},
		{"nested type mismatch", []discord.InteractionOption{group(sub("one", discord.InteractionOption{Name: "count", Value: discord.NumberValue(1)}))}, CodeTypeMismatch, "admin.group.one.count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := c.Decode(discord.CommandInput{Options: tt.opts})
			if opts != nil {
				t.Fatalf("partial result returned alongside error")
			}
			de := decodeErr(t, err)
			if de.Code != tt.code {
				t.Fatalf("code = %s, want %s", de.Code, tt.code)
			}
			if got := joinDots(de.Path); got != tt.path {
				t.Fatalf("path = %s, want %s", got, tt.path)
			}
		})
	}
}

func TestDecode_UnknownSubcommandSuggestion(t *testing.T) {
	c := MustCompile(adminDefinition())
	_, err := c.Decode(discord.CommandInput{Options: []discord.InteractionOption{{Name: "pong", Value: discord.SubCommandValue(nil)}}})
	if de := decodeErr(t, err); de.Suggestion != "ping" {
		t.Fatalf("suggestion = %q", de.Suggestion)
	}
}

func TestDecodeFunc_CompilesFirst(t *testing.T) {
	bad := New("Bad", WithDescription("d")).Definition()
	if _, err := Decode(bad, discord.CommandInput{}); err == nil {
		t.Fatalf("expected schema error")
	} else {
		var se *SchemaError
		if !errors.As(err, &se) {
			t.Fatalf("expected *SchemaError, got %T", err)
		}
	}
	if _, err := Decode(demoDefinition(), demoInput()); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
}

func joinDots(p []string) string {
	out := ""
	for i, s := range p {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}
