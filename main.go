//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.4 init --output docs --outputTypes go

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nemopss/financas/backend/cli"
)

// @title Finanças+ API
// @version 1.0
// @description Personal finance tracking: transactions, categories, monthly budgets and dashboard stats.
// @BasePath /
// @SecurityDefinitions.apikey ApiKeyAuth
// @In header
// @Name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
