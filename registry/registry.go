// Package registry holds the set of compiled commands a process serves.
//
// A Registry is an immutable snapshot behind an atomic pointer: readers
// (Decode, Lookup) never lock, and Replace swaps in a whole new set only
// when every definition compiles. Subscribers are told about each swap, Watch
// drives swaps from definition files on disk, and Sync pushes changed
// commands to the platform through a caller-supplied RegisterFunc.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ggoodman/slashcmd-go/command"
	"github.com/ggoodman/slashcmd-go/discord"
	"github.com/ggoodman/slashcmd-go/internal/logctx"
)

// ErrUnknownCommand is returned by Decode and Focused for interactions that
// name a command the registry does not hold.
var ErrUnknownCommand = errors.New("registry: unknown command")

const defaultDebounce = 250 * time.Millisecond

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithDebounce sets how long Watch waits for file events to settle before
// reloading.
func WithDebounce(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.debounce = d
		}
	}
}

// Registry is safe for concurrent use.
type Registry struct {
	snap     atomic.Pointer[snapshot]
	notifier changeNotifier

	log      *slog.Logger
	debounce time.Duration
}

type snapshot struct {
	byName map[string]*command.Command
	sorted []*command.Command
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{debounce: defaultDebounce}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r.log = logctx.Wrap(r.log)
	r.snap.Store(&snapshot{byName: map[string]*command.Command{}})
	return r
}

// Replace compiles defs and, if all of them compile, swaps them in as the
// new command set. Problems from every definition are joined into the
// returned error; on error the previous set stays in place.
func (r *Registry) Replace(defs ...*command.Definition) error {
	next := &snapshot{byName: make(map[string]*command.Command, len(defs))}
	var errs []error
	for _, def := range defs {
		c, err := command.Compile(def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := next.byName[c.Name()]; dup {
			errs = append(errs, fmt.Errorf("command %q defined more than once", c.Name()))
			continue
		}
		next.byName[c.Name()] = c
		next.sorted = append(next.sorted, c)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("registry: %w", err)
	}
	slices.SortFunc(next.sorted, func(a, b *command.Command) int {
		return strings.Compare(a.Name(), b.Name())
	})

	prev := r.snap.Swap(next)

	if changed(prev, next) {
		r.log.Info("command set replaced", slog.Int("commands", len(next.sorted)))
		r.notifier.notify()
	}
	return nil
}

func changed(prev, next *snapshot) bool {
	if len(prev.sorted) != len(next.sorted) {
		return true
	}
	for i, c := range next.sorted {
		if prev.sorted[i].Fingerprint() != c.Fingerprint() {
			return true
		}
	}
	return false
}

// Lookup returns the compiled command with the given name.
func (r *Registry) Lookup(name string) (*command.Command, bool) {
	c, ok := r.snap.Load().byName[name]
	return c, ok
}

// Commands returns the current commands ordered by name.
func (r *Registry) Commands() []*command.Command {
	return slices.Clone(r.snap.Load().sorted)
}

// Schemas returns the registration payloads of the current commands,
// ordered by name.
func (r *Registry) Schemas() []discord.ApplicationCommand {
	cmds := r.snap.Load().sorted
	out := make([]discord.ApplicationCommand, len(cmds))
	for i, c := range cmds {
		out[i] = c.ApplicationCommand()
	}
	return out
}

// Subscriber returns a channel that receives a signal after every Replace
// that changed the command set. The channel is closed by Close.
func (r *Registry) Subscriber() <-chan struct{} {
	return r.notifier.subscribe()
}

// Close closes every subscriber channel.
func (r *Registry) Close() {
	r.notifier.close()
}

// Decode routes an interaction to its command and decodes it.
func (r *Registry) Decode(ctx context.Context, data discord.CommandData) (*command.Options, error) {
	c, ctx, ld, err := r.route(ctx, data)
	if err != nil {
		return nil, err
	}
	opts, err := c.Decode(data.Input())
	if err != nil {
		r.log.DebugContext(ctx, "decode failed", slog.String("err", err.Error()))
		return nil, err
	}
	ld.Route = opts.Route()
	r.log.DebugContext(ctx, "decoded interaction")
	return opts, nil
}

// Focused routes an autocomplete interaction to its command and returns
// the option being typed.
func (r *Registry) Focused(ctx context.Context, data discord.CommandData) (*command.Focused, error) {
	c, ctx, ld, err := r.route(ctx, data)
	if err != nil {
		return nil, err
	}
	f, err := c.Focused(data.Input())
	if err != nil {
		r.log.DebugContext(ctx, "autocomplete failed", slog.String("err", err.Error()))
		return nil, err
	}
	ld.Route = f.Path
	r.log.DebugContext(ctx, "autocomplete", slog.String("option", f.Name))
	return f, nil
}

// route tags ctx with a fresh decode id and finds the command. The
// returned log data is owned by the caller, which fills in the route.
func (r *Registry) route(ctx context.Context, data discord.CommandData) (*command.Command, context.Context, *logctx.InteractionData, error) {
	ld := &logctx.InteractionData{
		DecodeID:      uuid.NewString(),
		InteractionID: idString(data.ID),
		Command:       data.Name,
		GuildID:       idString(data.GuildID),
	}
	ctx = logctx.WithInteractionData(ctx, ld)
	c, ok := r.Lookup(data.Name)
	if !ok {
		r.log.WarnContext(ctx, "interaction for unknown command")
		return nil, ctx, ld, fmt.Errorf("%w %q", ErrUnknownCommand, data.Name)
	}
	return c, ctx, ld, nil
}

func idString(id discord.Snowflake) string {
	if id.IsZero() {
		return ""
	}
	return id.String()
}
