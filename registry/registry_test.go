package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ggoodman/slashcmd-go/command"
	"github.com/ggoodman/slashcmd-go/discord"
)

func pingDefinition(desc string) *command.Definition {
	return command.New("ping", command.WithDescription(desc)).
		Integer("count", command.Optional(), command.Description("How many")).
		Definition()
}

func searchDefinition() *command.Definition {
	return command.New("search", command.WithDescription("Search things")).
		String("query", command.Description("What to look for"), command.Autocomplete()).
		Definition()
}

func TestReplaceAndLookup(t *testing.T) {
	r := New()
	if err := r.Replace(searchDefinition(), pingDefinition("Ping")); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	if _, ok := r.Lookup("ping"); !ok {
		t.Fatal("ping not found")
	}
	if _, ok := r.Lookup("nope"); ok {
		t.Fatal("unexpected command")
	}

	cmds := r.Commands()
	if len(cmds) != 2 || cmds[0].Name() != "ping" || cmds[1].Name() != "search" {
		t.Fatalf("commands not ordered by name: %v", cmds)
	}
	schemas := r.Schemas()
	if len(schemas) != 2 || schemas[1].Name != "search" {
		t.Fatalf("unexpected schemas %+v", schemas)
	}
}

func TestReplace_KeepsPreviousOnError(t *testing.T) {
	r := New()
	if err := r.Replace(pingDefinition("Ping")); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	bad := command.New("Bad Name", command.WithDescription("x")).Definition()
	empty := command.New("empty").Definition()
	err := r.Replace(searchDefinition(), bad, empty, pingDefinition("Again"), pingDefinition("Twice"))
	if err == nil {
		t.Fatal("expected error")
	}

	var se *command.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *command.SchemaError in %v", err)
	}
	for _, frag := range []string{"Bad Name", "empty", `"ping" defined more than once`} {
		if !strings.Contains(err.Error(), frag) {
			t.Fatalf("error %q missing %q", err, frag)
		}
	}
	if _, ok := r.Lookup("search"); ok {
		t.Fatal("partial replace leaked into the registry")
	}
	if c, _ := r.Lookup("ping"); c.Schema().Description != "Ping" {
		t.Fatal("previous snapshot lost")
	}
}

func TestSubscriber(t *testing.T) {
	r := New()
	sub := r.Subscriber()

	if err := r.Replace(pingDefinition("Ping")); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	select {
	case <-sub:
	case <-time.After(time.Second):
		t.Fatal("no change notification")
	}

	// Identical set: no signal.
	if err := r.Replace(pingDefinition("Ping")); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	select {
	case <-sub:
		t.Fatal("unexpected notification for unchanged set")
	default:
	}

	r.Close()
	if _, ok := <-sub; ok {
		t.Fatal("subscriber should be closed")
	}
	if _, ok := <-r.Subscriber(); ok {
		t.Fatal("subscribing after Close should yield a closed channel")
	}
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := New(WithLogger(logger))
	if err := r.Replace(pingDefinition("Ping")); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	buf.Reset()

	opts, err := r.Decode(context.Background(), discord.CommandData{
		ID:      99,
		Name:    "ping",
		Options: []discord.InteractionOption{{Name: "count", Value: discord.IntegerValue(3)}},
	})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if n, ok := opts.Integer("count"); !ok || n != 3 {
		t.Fatalf("count = %d, %v", n, ok)
	}

	var rec struct {
		Msg string `json:"msg"`
		Cmd struct {
			DecodeID string `json:"decode_id"`
			ID       string `json:"id"`
			Name     string `json:"name"`
		} `json:"cmd"`
	}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line not JSON: %q", buf.String())
	}
	if rec.Msg != "decoded interaction" || rec.Cmd.Name != "ping" || rec.Cmd.ID != "99" || rec.Cmd.DecodeID == "" {
		t.Fatalf("unexpected log record %+v", rec)
	}
}

func TestDecode_Errors(t *testing.T) {
	r := New()
	if err := r.Replace(pingDefinition("Ping")); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	_, err := r.Decode(context.Background(), discord.CommandData{Name: "pong"})
	if !errors.Is(err, ErrUnknownCommand) || !strings.Contains(err.Error(), `"pong"`) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}

	_, err = r.Decode(context.Background(), discord.CommandData{
		Name:    "ping",
		Options: []discord.InteractionOption{{Name: "count", Value: discord.StringValue("3")}},
	})
	var de *command.DecodeError
	if !errors.As(err, &de) || de.Code != command.CodeTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", err)
	}
}

func TestFocused(t *testing.T) {
	r := New()
	if err := r.Replace(searchDefinition()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	f, err := r.Focused(context.Background(), discord.CommandData{
		Name: "search",
		Options: []discord.InteractionOption{{
			Name:  "query",
			Value: discord.FocusedValue{Kind: discord.OptionTypeString, Text: "gop"},
		}},
	})
	if err != nil {
		t.Fatalf("Focused failed: %v", err)
	}
	if f.Name != "query" || f.Text != "gop" {
		t.Fatalf("unexpected focus %+v", f)
	}

	if _, err := r.Focused(context.Background(), discord.CommandData{Name: "x"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}
