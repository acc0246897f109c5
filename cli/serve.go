package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nemopss/financas/backend/api"
	"github.com/nemopss/financas/backend/db"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(a *app) *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dsn := a.cfg.Database.DSN()

			if migrateFirst {
				if err := db.RunMigrations(dsn); err != nil {
					return err
				}
			}

			storage, err := db.NewStorage(ctx, dsn)
			if err != nil {
				return err
			}
			defer storage.Close()
			a.logger.Info("database connected", "host", a.cfg.Database.Host, "name", a.cfg.Database.Name)

			if a.cfg.JWTSecret == "" {
				a.logger.Warn("JWT_SECRET not set, /api is open to any caller")
			}

			router := api.NewRouter(api.NewHandler(storage, a.logger), a.logger, a.cfg.JWTSecret)
			srv := &http.Server{
				Addr:              a.cfg.Addr(),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runServer(ctx, a.logger, srv)
		},
	}

	cmd.Flags().BoolVar(&migrateFirst, "migrate", true, "apply pending migrations before serving")
	return cmd
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, logger *slog.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
