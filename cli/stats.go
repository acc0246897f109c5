package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func statsCmd(a *app) *cobra.Command {
	var month, year int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the monthly dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := a.client().DashboardStats(cmd.Context(), month, year)
			if err != nil {
				return fmt.Errorf("failed to fetch dashboard stats: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n", time.Month(stats.Month), stats.Year)
			fmt.Fprintf(out, "Income:   %s\n", incomeStyle.Render(stats.Income.StringFixed(2)))
			fmt.Fprintf(out, "Expenses: %s\n", expenseStyle.Render(stats.Expenses.StringFixed(2)))
			fmt.Fprintf(out, "Balance:  %s\n", stats.Balance.StringFixed(2))

			if len(stats.Budgets) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(stats.Budgets))
			for _, b := range stats.Budgets {
				name := b.CategoryID.String()
				if b.Category != nil {
					name = b.Category.Icon + " " + b.Category.Name
				}
				rows = append(rows, []string{
					name,
					b.Amount.StringFixed(2),
					b.Spent.StringFixed(2),
					b.Amount.Sub(b.Spent).StringFixed(2),
				})
			}
			renderTable(out, []string{"Category", "Budget", "Spent", "Remaining"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "month (1-12), defaults to the current month")
	cmd.Flags().IntVar(&year, "year", 0, "year, defaults to the current year")
	return cmd
}
