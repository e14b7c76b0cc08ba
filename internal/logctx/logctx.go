package logctx

import (
	"context"
	"log/slog"
	"strings"
)

// Handler decorates records with the interaction, sync and watch data
// carried by the context.
type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if d, ok := ctx.Value(interactionDataKey{}).(*InteractionData); ok {
		r.AddAttrs(slog.Group("cmd",
			slog.String("decode_id", d.DecodeID),
			slog.String("id", d.InteractionID),
			slog.String("name", d.Command),
			slog.String("guild", d.GuildID),
			slog.String("route", strings.Join(d.Route, " ")),
		))
	}

	if d, ok := ctx.Value(syncDataKey{}).(*SyncData); ok {
		r.AddAttrs(slog.Group("sync",
			slog.String("id", d.RunID),
			slog.String("scope", d.Scope),
		))
	}

	if d, ok := ctx.Value(watchDataKey{}).(*WatchData); ok {
		r.AddAttrs(slog.Group("watch",
			slog.String("dir", d.Dir),
			slog.String("file", d.File),
		))
	}

	return h.Handler.Handle(ctx, r)
}

func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h Handler) WithGroup(name string) slog.Handler {
	return Handler{Handler: h.Handler.WithGroup(name)}
}

// Wrap returns a logger whose handler is decorated by Handler. Loggers
// that are already wrapped are returned unchanged.
func Wrap(l *slog.Logger) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	if _, ok := l.Handler().(Handler); ok {
		return l
	}
	return slog.New(Handler{Handler: l.Handler()})
}

type interactionDataKey struct{}

type InteractionData struct {
	DecodeID      string
	InteractionID string
	Command       string
	GuildID       string
	Route         []string
}

func WithInteractionData(ctx context.Context, data *InteractionData) context.Context {
	return context.WithValue(ctx, interactionDataKey{}, data)
}

type syncDataKey struct{}

type SyncData struct {
	RunID string
	Scope string
}

func WithSyncData(ctx context.Context, data *SyncData) context.Context {
	return context.WithValue(ctx, syncDataKey{}, data)
}

type watchDataKey struct{}

type WatchData struct {
	Dir  string
	File string
}

func WithWatchData(ctx context.Context, data *WatchData) context.Context {
	return context.WithValue(ctx, watchDataKey{}, data)
}
