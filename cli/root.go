// Package cli holds the command tree: the API server, schema migrations,
// token minting and a terminal front end over the REST client.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nemopss/financas/backend/client"
	"github.com/nemopss/financas/backend/config"
	"github.com/nemopss/financas/backend/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what PersistentPreRunE resolved to the subcommands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func (a *app) client() *client.Client {
	var opts []client.Option
	if a.cfg.APIToken != "" {
		opts = append(opts, client.WithToken(a.cfg.APIToken))
	}
	return client.New(a.cfg.APIURL, opts...)
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	var cfgFile, envFile string

	cmd := &cobra.Command{
		Use:           "financas",
		Short:         "Finanças+ personal finance tracker",
		Long:          "Finanças+ tracks income and expenses by category, monthly budgets, and a monthly dashboard.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}

			v := viper.New()
			flags := cmd.Root().PersistentFlags()
			_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
			_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
			_ = v.BindPFlag("api_url", flags.Lookup("api-url"))

			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return fmt.Errorf("failed to setup logging: %w", err)
			}
			slog.SetDefault(logger)

			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	cmd.PersistentFlags().String("api-url", "http://localhost:3001/api", "API base URL for client commands")

	cmd.AddCommand(
		serveCmd(a),
		migrateCmd(a),
		tokenCmd(a),
		statsCmd(a),
		categoriesCmd(a),
		transactionsCmd(a),
		budgetsCmd(a),
	)
	return cmd
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}
