package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ggoodman/slashcmd-go/discord"
	"github.com/ggoodman/slashcmd-go/internal/logctx"
	"github.com/ggoodman/slashcmd-go/storage"
)

// RegisterFunc pushes one command to the platform. guildID is empty for
// global registration.
type RegisterFunc func(ctx context.Context, guildID string, cmd discord.ApplicationCommand) error

// SyncOption configures a Sync run.
type SyncOption func(*syncConfig)

type syncConfig struct {
	guildID string
	ttl     time.Duration
	dryRun  bool
}

// ForGuild scopes the run to one guild: commands are registered for that
// guild and fingerprints are stored in its namespace.
func ForGuild(guildID string) SyncOption {
	return func(c *syncConfig) { c.guildID = guildID }
}

// FingerprintTTL makes stored fingerprints expire, forcing a registration
// once the TTL has passed.
func FingerprintTTL(ttl time.Duration) SyncOption {
	return func(c *syncConfig) { c.ttl = ttl }
}

// DryRun reports what would be registered without calling the registrar
// or writing fingerprints.
func DryRun() SyncOption {
	return func(c *syncConfig) { c.dryRun = true }
}

// SyncReport lists what a Sync run did, by command name.
type SyncReport struct {
	RunID      string
	Scope      string
	Registered []string
	Unchanged  []string
	Failed     []string
}

// Sync registers every command whose fingerprint differs from the one
// stored by a previous run, then stores the new fingerprint. A failed
// registration does not stop the run; failures are joined into the
// returned error alongside a complete report. Storage failures abort.
func (r *Registry) Sync(ctx context.Context, store storage.Storage, register RegisterFunc, opts ...SyncOption) (*SyncReport, error) {
	var cfg syncConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var nsOpts []storage.Option
	scope := "global"
	if cfg.guildID != "" {
		nsOpts = append(nsOpts, storage.WithGuild(cfg.guildID))
		scope = "guild:" + cfg.guildID
	}
	setOpts := nsOpts
	if cfg.ttl > 0 {
		setOpts = append(setOpts[:len(setOpts):len(setOpts)], storage.WithTTL(cfg.ttl))
	}

	report := &SyncReport{RunID: uuid.NewString(), Scope: scope}
	ctx = logctx.WithSyncData(ctx, &logctx.SyncData{RunID: report.RunID, Scope: scope})

	var errs []error
	for _, c := range r.Commands() {
		name := c.Name()
		fp := c.Fingerprint()

		item, err := store.Get(ctx, name, nsOpts...)
		if err != nil {
			return report, fmt.Errorf("registry: sync %s: read fingerprint: %w", name, err)
		}
		if item != nil && string(item.Data) == fp {
			report.Unchanged = append(report.Unchanged, name)
			continue
		}
		if cfg.dryRun {
			report.Registered = append(report.Registered, name)
			continue
		}

		if err := register(ctx, cfg.guildID, c.ApplicationCommand()); err != nil {
			r.log.ErrorContext(ctx, "registration failed", slog.String("command", name), slog.String("err", err.Error()))
			report.Failed = append(report.Failed, name)
			errs = append(errs, fmt.Errorf("register %s: %w", name, err))
			continue
		}
		if err := store.Set(ctx, name, []byte(fp), setOpts...); err != nil {
			return report, fmt.Errorf("registry: sync %s: store fingerprint: %w", name, err)
		}
		r.log.InfoContext(ctx, "registered command", slog.String("command", name), slog.String("fingerprint", fp[:12]))
		report.Registered = append(report.Registered, name)
	}

	r.log.InfoContext(ctx, "sync complete",
		slog.Int("registered", len(report.Registered)),
		slog.Int("unchanged", len(report.Unchanged)),
		slog.Int("failed", len(report.Failed)),
	)
	if err := errors.Join(errs...); err != nil {
		return report, fmt.Errorf("registry: sync: %w", err)
	}
	return report, nil
}
