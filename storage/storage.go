// Package storage is a small namespaced key/value interface used to remember
// what has already been registered with the platform.
//
// Keys live either in the global namespace (the default) or in the namespace
// of a single guild, selected with WithGuild. Implementations live in the
// memory and redis subpackages.
package storage

import (
	"context"
	"errors"
	"time"
)

// Storage defines the primary interface for namespaced data storage.
type Storage interface {
	// Get retrieves data for a key within the selected namespace.
	// Returns a nil Item if the key doesn't exist or has expired.
	// Returns an error only for backend failures or invalid options.
	Get(ctx context.Context, key string, opts ...Option) (*Item, error)

	// Set stores data for a key within the selected namespace.
	Set(ctx context.Context, key string, data []byte, opts ...Option) error

	// Delete removes a key when WithKey is given and otherwise every key of
	// the selected namespace.
	Delete(ctx context.Context, opts ...Option) error

	// Close releases backend resources.
	Close() error
}

// Item is a stored value with its metadata.
type Item struct {
	Data      []byte
	CreatedAt time.Time
	ExpiresAt *time.Time // nil means no expiry
}

// IsExpired reports whether the item is past its expiry.
func (it *Item) IsExpired() bool {
	return it.ExpiresAt != nil && time.Now().After(*it.ExpiresAt)
}

// Option configures storage operations.
type Option func(*Options)

// Options is the resolved form of a set of Option values.
type Options struct {
	Namespace Namespace      // nil = global
	Key       *string        // Delete only
	TTL       *time.Duration // Set only
}

// Namespace selects where keys live. A nil Namespace is the global one.
type Namespace interface {
	namespace()
}

// GuildNamespace holds keys that belong to one guild.
type GuildNamespace struct {
	GuildID string
}

func (GuildNamespace) namespace() {}

// WithGuild selects the namespace of a guild.
func WithGuild(guildID string) Option {
	return func(opts *Options) {
		opts.Namespace = GuildNamespace{GuildID: guildID}
	}
}

// WithKey restricts Delete to a single key.
func WithKey(key string) Option {
	return func(opts *Options) {
		opts.Key = &key
	}
}

// WithTTL sets a time-to-live for the stored data.
func WithTTL(ttl time.Duration) Option {
	return func(opts *Options) {
		opts.TTL = &ttl
	}
}

var (
	// ErrInvalidOptions is returned when options are incomplete or contradictory.
	ErrInvalidOptions = errors.New("storage: invalid option combination")
)

// Resolve applies opts and checks them. Implementations call it at the top
// of every operation.
func Resolve(opts ...Option) (Options, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if ns, ok := o.Namespace.(GuildNamespace); ok && ns.GuildID == "" {
		return o, ErrInvalidOptions
	}
	if o.Key != nil && *o.Key == "" {
		return o, ErrInvalidOptions
	}
	if o.TTL != nil && *o.TTL <= 0 {
		return o, ErrInvalidOptions
	}
	return o, nil
}

// Prefix returns the key prefix of a namespace, ending in a colon.
func Prefix(ns Namespace) string {
	if g, ok := ns.(GuildNamespace); ok {
		return "guild:" + g.GuildID + ":"
	}
	return "global:"
}
