package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stylemate/stylemate/internal/advisor"
	"github.com/stylemate/stylemate/internal/bot"
	"github.com/stylemate/stylemate/internal/config"
	"github.com/stylemate/stylemate/internal/favorites"
	"github.com/stylemate/stylemate/internal/session"
	"github.com/stylemate/stylemate/internal/store"
	"github.com/stylemate/stylemate/internal/telegram"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Database string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot against the Telegram API",
		Long: `Start the bot: open the database, connect to the Telegram Bot API via
long polling, and handle updates until interrupted.

Credentials come from the environment (TELEGRAM_TOKEN, GEMINI_API_KEY),
a .env file, or the config file.

Example:
  stylemate serve --db ./stylemate.db
  stylemate serve --config ./config.yaml --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}
	if opts.Database != "" {
		cfg.DatabasePath = opts.Database
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}

	log := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("close store failed", "error", err)
		}
	}()

	cache := session.NewAnalysisCache(st)
	sessions := session.NewManager(st, cache)
	ledger := favorites.NewLedger(st, log)
	analyzer := advisor.NewGemini(cfg.GeminiAPIKey, cfg.Model)
	client := telegram.NewClient(cfg.TelegramToken)

	b := bot.New(client, client, sessions, ledger, analyzer, log, bot.Options{
		PollTimeout: cfg.PollTimeout,
	})

	log.Info("bot starting", "db", cfg.DatabasePath, "model", cfg.Model)
	return b.Run(cmd.Context())
}
