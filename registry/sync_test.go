package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ggoodman/slashcmd-go/discord"
	"github.com/ggoodman/slashcmd-go/storage"
	"github.com/ggoodman/slashcmd-go/storage/memory"
)

type recorder struct {
	calls []string
	fail  map[string]error
}

func (rec *recorder) register(_ context.Context, guildID string, cmd discord.ApplicationCommand) error {
	if err := rec.fail[cmd.Name]; err != nil {
		return err
	}
	rec.calls = append(rec.calls, guildID+"/"+cmd.Name)
	return nil
}

func newStore(t *testing.T) storage.Storage {
	t.Helper()
	s, err := memory.New(100)
	if err != nil {
		t.Fatalf("memory.New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSync_OnlyChangedCommands(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	r := New()
	if err := r.Replace(pingDefinition("Ping"), searchDefinition()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	rec := &recorder{}
	report, err := r.Sync(ctx, store, rec.register)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if diff := cmp.Diff([]string{"ping", "search"}, report.Registered); diff != "" {
		t.Fatalf("first run registered (-want +got):\n%s", diff)
	}
	if report.Scope != "global" || report.RunID == "" {
		t.Fatalf("unexpected report header %+v", report)
	}

	// Second run with one changed description.
	if err := r.Replace(pingDefinition("Ping the bot"), searchDefinition()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	report, err = r.Sync(ctx, store, rec.register)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if diff := cmp.Diff(&SyncReport{RunID: report.RunID, Scope: "global", Registered: []string{"ping"}, Unchanged: []string{"search"}}, report); diff != "" {
		t.Fatalf("second run (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/ping", "/search", "/ping"}, rec.calls); diff != "" {
		t.Fatalf("register calls (-want +got):\n%s", diff)
	}
}

func TestSync_GuildScope(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	r := New()
	if err := r.Replace(pingDefinition("Ping")); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	rec := &recorder{}
	if _, err := r.Sync(ctx, store, rec.register, ForGuild("42"), FingerprintTTL(time.Hour)); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	item, err := store.Get(ctx, "ping", storage.WithGuild("42"))
	if err != nil || item == nil || item.ExpiresAt == nil {
		t.Fatalf("guild fingerprint not stored with TTL: %v %v", item, err)
	}
	c, _ := r.Lookup("ping")
	if string(item.Data) != c.Fingerprint() {
		t.Fatalf("stored %q, want %q", item.Data, c.Fingerprint())
	}
	if global, _ := store.Get(ctx, "ping"); global != nil {
		t.Fatal("guild sync wrote to the global namespace")
	}

	// Global scope is still unsynced.
	report, err := r.Sync(ctx, store, rec.register)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if len(report.Registered) != 1 {
		t.Fatalf("global scope should register ping, got %+v", report)
	}
	if diff := cmp.Diff([]string{"42/ping", "/ping"}, rec.calls); diff != "" {
		t.Fatalf("register calls (-want +got):\n%s", diff)
	}
}

func TestSync_DryRun(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	r := New()
	if err := r.Replace(pingDefinition("Ping")); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	rec := &recorder{}
	report, err := r.Sync(ctx, store, rec.register, DryRun())
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if len(report.Registered) != 1 || len(rec.calls) != 0 {
		t.Fatalf("dry run should report without registering: %+v, calls %v", report, rec.calls)
	}
	if item, _ := store.Get(ctx, "ping"); item != nil {
		t.Fatal("dry run stored a fingerprint")
	}
}

func TestSync_RegistrationFailure(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	r := New()
	if err := r.Replace(pingDefinition("Ping"), searchDefinition()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	boom := errors.New("rate limited")
	rec := &recorder{fail: map[string]error{"ping": boom}}
	report, err := r.Sync(ctx, store, rec.register)
	if !errors.Is(err, boom) {
		t.Fatalf("expected registration error, got %v", err)
	}
	if diff := cmp.Diff([]string{"ping"}, report.Failed); diff != "" {
		t.Fatalf("failed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"search"}, report.Registered); diff != "" {
		t.Fatalf("registered (-want +got):\n%s", diff)
	}
	if item, _ := store.Get(ctx, "ping"); item != nil {
		t.Fatal("failed registration stored a fingerprint")
	}
}

type brokenStore struct{ storage.Storage }

var errBackend = errors.New("backend down")

func (brokenStore) Get(context.Context, string, ...storage.Option) (*storage.Item, error) {
	return nil, errBackend
}

func TestSync_StorageFailure(t *testing.T) {
	r := New()
	if err := r.Replace(pingDefinition("Ping")); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	rec := &recorder{}
	_, err := r.Sync(context.Background(), brokenStore{}, rec.register)
	if !errors.Is(err, errBackend) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("registered despite storage failure: %v", rec.calls)
	}
}
