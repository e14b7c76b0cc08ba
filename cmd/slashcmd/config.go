package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/joeshaw/envdecode"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ggoodman/slashcmd-go/command"
	"github.com/ggoodman/slashcmd-go/manifest"
	"github.com/ggoodman/slashcmd-go/storage"
	"github.com/ggoodman/slashcmd-go/storage/memory"
	redisstore "github.com/ggoodman/slashcmd-go/storage/redis"
)

// Config is read from the environment; flags override individual fields.
type Config struct {
	// Definitions is the default document glob. ENV: SLASHCMD_DEFINITIONS
	Definitions string `env:"SLASHCMD_DEFINITIONS,default=commands/**/*.yaml"`
	// LogLevel is one of debug, info, warn, error. ENV: SLASHCMD_LOG_LEVEL
	LogLevel string `env:"SLASHCMD_LOG_LEVEL,default=info"`
	// Storage selects the fingerprint store: memory or redis. ENV: SLASHCMD_STORAGE
	Storage string `env:"SLASHCMD_STORAGE,default=memory"`
	// MemoryItems bounds the in-memory store. ENV: SLASHCMD_MEMORY_ITEMS
	MemoryItems int `env:"SLASHCMD_MEMORY_ITEMS,default=1024"`
	// RedisAddr like "localhost:6379". ENV: REDIS_ADDR
	RedisAddr string `env:"REDIS_ADDR,default=localhost:6379"`
	// KeyPrefix for all Redis keys. ENV: SLASHCMD_KEY_PREFIX
	KeyPrefix string `env:"SLASHCMD_KEY_PREFIX,default=slashcmd:storage:"`
	// FingerprintTTL expires stored fingerprints; zero keeps them. ENV: SLASHCMD_FINGERPRINT_TTL
	FingerprintTTL time.Duration `env:"SLASHCMD_FINGERPRINT_TTL"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	h := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "slashcmd",
	})
	return slog.New(h), nil
}

func openStore(ctx context.Context, cfg Config) (storage.Storage, error) {
	switch cfg.Storage {
	case "", "memory":
		return memory.New(cfg.MemoryItems)
	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return redisstore.New(redisstore.Config{Client: client, KeyPrefix: cfg.KeyPrefix})
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want memory or redis)", cfg.Storage)
	}
}

// loadDefinitions resolves pattern relative to its static prefix, so both
// "commands/**/*.yaml" and "/abs/dir/*.json" work.
func loadDefinitions(pattern string) ([]*command.Definition, error) {
	base, rel := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return manifest.LoadGlob(os.DirFS(filepath.FromSlash(base)), rel)
}

// definitionsDir is the static directory prefix of pattern.
func definitionsDir(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base)
}
