// Package commands implements the journalctl subcommands.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/curahealth/cura/backend/go-services/internal/config"
	"github.com/curahealth/cura/backend/go-services/internal/journal"
	"github.com/curahealth/cura/backend/go-services/internal/storage"
)

// Opener returns a ready store plus a function releasing its backend.
type Opener func(ctx context.Context) (*journal.Store, func() error, error)

// OpenFromConfig loads the service configuration and opens the configured
// backend, so the CLI reads and writes the same journal as the HTTP service.
func OpenFromConfig(ctx context.Context) (*journal.Store, func() error, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	var opts []journal.Option
	if cfg.Journal.StrictDecode {
		opts = append(opts, journal.WithStrictDecode())
	}
	store, err := journal.NewStore(backend, cfg.Journal.StorageKey, opts...)
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}
	return store, backend.Close, nil
}

// NewAddCommand creates the 'add' subcommand.
// Usage: journalctl add --mood 3 --rating 8 Went for a run
func NewAddCommand(open Opener) *cobra.Command {
	var mood, rating int

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Append a journal entry",
		Long: `Append one entry to the journal. The text is every remaining argument
joined by spaces; it must not be blank.

Moods: 0 Depressed, 1 Sad, 2 Neutral, 3 Happy, 4 Excited.
Ratings run from 0 to 10.

Example:
  journalctl add --mood 3 --rating 8 Went for a run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd.Context(), open, cmd.OutOrStdout(), strings.Join(args, " "), mood, rating)
		},
	}

	cmd.Flags().IntVarP(&mood, "mood", "m", 0, "Mood code 0-4 (required)")
	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "Day rating 0-10 (required)")
	_ = cmd.MarkFlagRequired("mood")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}

func runAdd(ctx context.Context, open Opener, out io.Writer, text string, mood, rating int) error {
	store, closeFn, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	e, err := store.Append(ctx, text, mood, rating)
	if err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	fmt.Fprintf(out, "Saved entry: %s, mood %s, rating %d/10\n",
		journal.FormatDateTime(e.CreatedAt, nil), e.Mood.Label(), e.Rating)
	return nil
}

// NewListCommand creates the 'list' subcommand which prints entries newest first.
func NewListCommand(open Opener) *cobra.Command {
	var limit int
	var asHTML, asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Long: `Print the journal newest first.

By default entries are printed as plain text. Use --html to print the same
fragment the web page renders, or --json for the stored representation.

Example:
  journalctl list --limit 5
  journalctl list --html > journal.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			if asHTML && asJSON {
				return fmt.Errorf("--html and --json are mutually exclusive")
			}
			return runList(cmd.Context(), open, cmd.OutOrStdout(), limit, asHTML, asJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of entries to print (0 = all)")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Print the escaped HTML fragment")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")

	return cmd
}

func runList(ctx context.Context, open Opener, out io.Writer, limit int, asHTML, asJSON bool) error {
	store, closeFn, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	entries, err := store.ListDescending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	switch {
	case asHTML:
		fmt.Fprintln(out, journal.RenderHTML(entries, nil))
	case asJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case len(entries) == 0:
		fmt.Fprintln(out, "No entries yet.")
	default:
		for _, e := range entries {
			fmt.Fprintf(out, "%s  %-9s %2d/10  %s\n",
				journal.FormatDateTime(e.CreatedAt, nil), e.Mood.Label(), e.Rating, e.Text)
		}
	}
	return nil
}

// NewMoodsCommand prints the mood vocabulary.
func NewMoodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "moods",
		Short: "Print mood codes and labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, label := range journal.MoodLabels() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %s\n", i, label)
			}
			return nil
		},
	}
}
