package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ggoodman/slashcmd-go/command"
	"github.com/ggoodman/slashcmd-go/discord"
	"github.com/ggoodman/slashcmd-go/manifest"
	"github.com/ggoodman/slashcmd-go/registry"
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [glob]",
		Short: "Load and compile definition documents, reporting every problem",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := loadDefinitions(a.pattern(args, 0))
			if err != nil {
				return err
			}
			if len(defs) == 0 {
				return fmt.Errorf("no documents match %q", a.pattern(args, 0))
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, def := range defs {
				c, err := command.Compile(def)
				if err == nil {
					fmt.Fprintf(out, "ok   %s %s\n", c.Name(), c.Fingerprint()[:12])
					continue
				}
				failed++
				var se *command.SchemaError
				if !errors.As(err, &se) {
					fmt.Fprintf(out, "FAIL %s: %v\n", def.Name, err)
					continue
				}
				for _, p := range se.Problems {
					fmt.Fprintf(out, "FAIL %s: %s\n", def.Name, p)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d commands failed validation", failed, len(defs))
			}
			return nil
		},
	}
}

func (a *app) schemaCmd() *cobra.Command {
	var helpText, documentSchema bool
	cmd := &cobra.Command{
		Use:   "schema [glob]",
		Short: "Print registration payloads as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if documentSchema {
				raw, err := manifest.DocumentSchema()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "%s\n", raw)
				return err
			}

			r, err := a.registry(a.pattern(args, 0))
			if err != nil {
				return err
			}
			if helpText {
				for _, c := range r.Commands() {
					fmt.Fprintln(out, strings.TrimRight(c.Schema().HelpText(), "\n"))
				}
				return nil
			}
			return writeJSON(out, r.Schemas())
		},
	}
	cmd.Flags().BoolVar(&helpText, "help-text", false, "Print the help tree of each command instead of JSON")
	cmd.Flags().BoolVar(&documentSchema, "document-schema", false, "Print the JSON Schema of definition documents")
	return cmd
}

type decodeResult struct {
	Command string         `json:"command"`
	Route   []string       `json:"route,omitempty"`
	Options map[string]any `json:"options"`
}

type focusResult struct {
	Command string   `json:"command"`
	Path    []string `json:"path"`
	Kind    string   `json:"kind"`
	Text    string   `json:"text"`
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [glob] <payload.json|->",
		Short: "Decode an interaction payload against the loaded commands",
		Long: `decode reads an interaction (or just its "data" object) and prints the
typed option values. Autocomplete interactions print the focused option.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			glob, payload := a.cfg.Definitions, args[0]
			if len(args) == 2 {
				glob, payload = args[0], args[1]
			}
			in, err := readInteraction(cmd.InOrStdin(), payload)
			if err != nil {
				return err
			}
			r, err := a.registry(glob)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if in.Type == discord.InteractionAutocomplete {
				f, err := r.Focused(ctx, *in.Data)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), focusResult{Command: in.Data.Name, Path: f.Path, Kind: f.Kind.String(), Text: f.Text})
			}

			opts, err := r.Decode(ctx, *in.Data)
			if err != nil {
				return err
			}
			res := decodeResult{Command: in.Data.Name, Route: opts.Route(), Options: map[string]any{}}
			for _, v := range opts.Leaf().Values() {
				if v.Set {
					res.Options[v.Name] = v.Interface()
				}
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

// readInteraction accepts a full interaction or a bare command data object.
func readInteraction(stdin io.Reader, name string) (*discord.Interaction, error) {
	var (
		raw []byte
		err error
	)
	if name == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}

	var in discord.Interaction
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	if in.Data == nil {
		var data discord.CommandData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("payload: %w", err)
		}
		in.Data = &data
	}
	if in.Data.Name == "" {
		return nil, errors.New("payload: no command name")
	}
	if in.Data.GuildID.IsZero() {
		in.Data.GuildID = in.GuildID
	}
	return &in, nil
}

func (a *app) syncCmd() *cobra.Command {
	var (
		guild  string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "sync [glob]",
		Short: "Print the commands whose registration payload changed since the last sync",
		Long: `sync compares each command's fingerprint with the one stored by the
previous run ($SLASHCMD_STORAGE: memory or redis) and prints the payload of
every changed command as one JSON line. Nothing is sent to the platform.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.registry(a.pattern(args, 0))
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			printPayload := func(_ context.Context, guildID string, c discord.ApplicationCommand) error {
				return enc.Encode(struct {
					GuildID string                     `json:"guild_id,omitempty"`
					Command discord.ApplicationCommand `json:"command"`
				}{guildID, c})
			}

			opts := []registry.SyncOption{registry.FingerprintTTL(a.cfg.FingerprintTTL)}
			if guild != "" {
				if _, err := discord.ParseSnowflake(guild); err != nil {
					return err
				}
				opts = append(opts, registry.ForGuild(guild))
			}
			if dryRun {
				opts = append(opts, registry.DryRun())
			}

			report, err := r.Sync(cmd.Context(), store, printPayload, opts...)
			if report != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d registered, %d unchanged, %d failed\n",
					report.Scope, len(report.Registered), len(report.Unchanged), len(report.Failed))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&guild, "guild", "", "Sync into one guild instead of globally")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without printing payloads or storing fingerprints")
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Reload definitions whenever files under dir change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := definitionsDir(a.cfg.Definitions)
			if len(args) == 1 {
				dir = args[0]
			}

			r := registry.New(registry.WithLogger(a.log))
			defer r.Close()

			sub := r.Subscriber()
			go func() {
				for range sub {
					names := make([]string, 0)
					for _, c := range r.Commands() {
						names = append(names, c.Name())
					}
					a.log.Info("commands loaded", "names", strings.Join(names, ","))
				}
			}()

			return r.Watch(cmd.Context(), dir, func() ([]*command.Definition, error) {
				return manifest.LoadGlob(os.DirFS(dir), "**/*.{yaml,yml,json,jsonc}")
			})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
