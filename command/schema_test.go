package command

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ggoodman/slashcmd-go/discord"
)

var wireComparers = cmp.Options{
	cmp.Comparer(func(a, b discord.Bound) bool { return a == b }),
	cmp.Comparer(func(a, b discord.ChoiceValue) bool { return a == b }),
}

func TestBuild_DemoPayload(t *testing.T) {
	s, err := Build(demoDefinition())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if s.Group {
		t.Fatalf("leaf command reported as group")
	}
	if s.Help != "More demo" {
		t.Fatalf("help = %q", s.Help)
	}

	want := discord.ApplicationCommand{
		Type:        discord.CommandTypeChatInput,
		Name:        "demo",
		Description: "Demo command",
		Options: []discord.CommandOption{
			{Type: discord.OptionTypeUser, Name: "member", Description: "A member", Required: ptr(true)},
			{Type: discord.OptionTypeString, Name: "text", Description: "Some text", Required: ptr(true), Autocomplete: ptr(false)},
			{
				Type: discord.OptionTypeNumber, Name: "number", Description: "A number",
				Required: ptr(true), Autocomplete: ptr(true), MaxValue: ptr(discord.NumberBound(50)),
			},
			{
				Type: discord.OptionTypeChannel, Name: "channel", Description: "A text channel",
				Required:     ptr(false),
				ChannelTypes: []discord.ChannelType{discord.ChannelGuildText, discord.ChannelPrivate},
			},
		},
	}
	if diff := cmp.Diff(want, s.ApplicationCommand(), wireComparers); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_HelpNeverInPayload(t *testing.T) {
	s, err := Build(adminDefinition())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	raw, err := json.Marshal(s.ApplicationCommand())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "help") || strings.Contains(string(raw), "Grouped things") {
		t.Fatalf("help leaked into payload: %s", raw)
	}
	schemaJSON, _ := json.Marshal(s)
	if !strings.Contains(string(schemaJSON), "Grouped things") {
		t.Fatalf("schema should keep help text: %s", schemaJSON)
	}
}

func TestBuild_GroupsAndAsOption(t *testing.T) {
	s, err := Build(adminDefinition())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !s.Group {
		t.Fatalf("admin should be a group")
	}
	if len(s.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(s.Options))
	}
	group, ping := s.Options[0], s.Options[1]
	if group.Type != discord.OptionTypeSubCommandGroup || ping.Type != discord.OptionTypeSubCommand {
		t.Fatalf("unexpected types %s, %s", group.Type, ping.Type)
	}
	if group.Required != nil || group.Autocomplete != nil {
		t.Fatalf("variant options must not carry required/autocomplete")
	}
	if len(group.Options) != 2 || group.Options[1].Name != "two" || group.Options[1].Type != discord.OptionTypeSubCommand {
		t.Fatalf("unexpected group members: %+v", group.Options)
	}

	sub, err := Build(subDefinition("one"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if opt := sub.AsOption(); opt.Type != discord.OptionTypeSubCommand || len(opt.Options) != 1 {
		t.Fatalf("unexpected AsOption: %+v", opt)
	}
	if opt := s.AsOption(); opt.Type != discord.OptionTypeSubCommandGroup {
		t.Fatalf("group schema should embed as a group, got %s", opt.Type)
	}
}

func TestBuild_ChoicesKeepOrder(t *testing.T) {
	s, err := Build(remindDefinition())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	unit := s.Options[1]
	if unit.Type != discord.OptionTypeString {
		t.Fatalf("unit type = %s", unit.Type)
	}
	want := []discord.Choice{
		{Name: "seconds", Value: discord.StringChoice("s")},
		{Name: "minutes", Value: discord.StringChoice("m")},
		{Name: "hours", NameLocalizations: map[string]string{"fr": "heures"}, Value: discord.StringChoice("h")},
	}
	if diff := cmp.Diff(want, unit.Choices, wireComparers); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if unit.Autocomplete == nil || *unit.Autocomplete {
		t.Fatalf("choice option should report autocomplete=false")
	}
	if amount := s.Options[0]; amount.MinValue == nil || !amount.MinValue.IsInteger() {
		t.Fatalf("integer bound lost: %+v", amount.MinValue)
	}
}

func TestBuild_CanonicalLocales(t *testing.T) {
	def := New("hello", WithDescription("Say hello"),
		WithLocalizedDescription(Localize("", map[string]string{"en-us": "Say hi", "fr": "Dire bonjour"})),
	).Definition()
	s, err := Build(def)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := map[string]string{"en-US": "Say hi", "fr": "Dire bonjour"}
	if diff := cmp.Diff(want, s.DescriptionLocalizations); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_CopiesDefinition(t *testing.T) {
	def := demoDefinition()
	c, err := Compile(def)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	def.Fields[0].Name = "changed"
	def.Description.Fallback = "changed"
	if got := c.Schema().Options[0].Name; got != "member" {
		t.Fatalf("compiled command changed with its source: %s", got)
	}
	s := c.Schema()
	s.Options[0].Name = "mutated"
	if got := c.Schema().Options[0].Name; got != "member" {
		t.Fatalf("schema copy aliases compiled state: %s", got)
	}
}

func TestFingerprint(t *testing.T) {
	a := MustCompile(demoDefinition())
	b := MustCompile(demoDefinition())
	if a.Fingerprint() == "" || a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("fingerprints differ for identical definitions: %s vs %s", a.Fingerprint(), b.Fingerprint())
	}

	helped := demoDefinition()
	helped.Help = "Completely different help"
	if got := MustCompile(helped).Fingerprint(); got != a.Fingerprint() {
		t.Fatalf("help text must not affect the fingerprint")
	}

	changed := demoDefinition()
	changed.Fields[1].Description.Fallback = "Other text"
	if got := MustCompile(changed).Fingerprint(); got == a.Fingerprint() {
		t.Fatalf("description change must change the fingerprint")
	}

	s := a.Schema()
	fp, err := s.Fingerprint()
	if err != nil || fp != a.Fingerprint() {
		t.Fatalf("schema fingerprint = %s, %v; want %s", fp, err, a.Fingerprint())
	}
}

func TestHelpText(t *testing.T) {
	s, err := Build(demoDefinition())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	text := s.HelpText()
	for _, want := range []string{"/demo  Demo command", "More demo", "member <user>  A member", "Pick someone", "[channel <channel>]"} {
		if !strings.Contains(text, want) {
			t.Fatalf("help text missing %q:\n%s", want, text)
		}
	}
}
