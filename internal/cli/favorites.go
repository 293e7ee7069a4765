package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stylemate/stylemate/internal/config"
	"github.com/stylemate/stylemate/internal/favorites"
	"github.com/stylemate/stylemate/internal/store"
)

// FavoritesOptions holds flags for the favorites command group.
type FavoritesOptions struct {
	*RootOptions
	Database string
	UserID   int64
}

// NewFavoritesCommand creates the favorites command group for offline
// inspection and maintenance of the favorites table.
func NewFavoritesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FavoritesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Inspect and maintain saved favorites",
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")
	cmd.PersistentFlags().Int64Var(&opts.UserID, "user", 0, "Telegram user id (required)")

	cmd.AddCommand(newFavoritesListCommand(opts))
	cmd.AddCommand(newFavoritesPurgeCommand(opts))

	return cmd
}

func newFavoritesListCommand(opts *FavoritesOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List a user's favorites, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(ledger *favorites.Ledger) error {
				list := ledger.List(cmd.Context(), opts.UserID)
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no favorites")
					return nil
				}
				for _, f := range list {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
						f.ID,
						f.CreatedAt.Format("2006-01-02 15:04:05"),
						f.Mode,
						firstLine(f.Analysis),
					)
				}
				return nil
			})
		},
	}
}

func newFavoritesPurgeCommand(opts *FavoritesOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "purge",
		Short:         "Delete all of a user's favorites",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(ledger *favorites.Ledger) error {
				count := ledger.DeleteAll(cmd.Context(), opts.UserID)
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d favorite(s)\n", count)
				return nil
			})
		},
	}
}

// withLedger opens the store from config/flags and hands a ledger to fn.
func withLedger(cmd *cobra.Command, opts *FavoritesOptions, fn func(*favorites.Ledger) error) error {
	if opts.UserID == 0 {
		return fmt.Errorf("--user is required")
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}
	if opts.Database != "" {
		cfg.DatabasePath = opts.Database
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	log := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	return fn(favorites.NewLedger(st, log))
}

// firstLine truncates an analysis to its first line for tabular output.
func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
