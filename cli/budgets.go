package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nemopss/financas/backend/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func budgetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage monthly budgets",
	}

	var filter models.BudgetFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List budgets, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			budgets, err := a.client().Budgets(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("failed to fetch budgets: %w", err)
			}
			rows := make([][]string, 0, len(budgets))
			for _, b := range budgets {
				category := b.CategoryID.String()
				if b.Category != nil {
					category = b.Category.Icon + " " + b.Category.Name
				}
				rows = append(rows, []string{
					fmt.Sprintf("%04d-%02d", b.Year, b.Month),
					category,
					b.Amount.StringFixed(2),
					b.ID.String(),
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"Month", "Category", "Amount", "ID"}, rows)
			return nil
		},
	}
	list.Flags().IntVar(&filter.Month, "month", 0, "only this month (1-12)")
	list.Flags().IntVar(&filter.Year, "year", 0, "only this year")

	var (
		category, amount string
		month, year      int
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Create a budget, or overwrite the amount of an existing one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			categoryID, err := uuid.Parse(category)
			if err != nil {
				return fmt.Errorf("invalid category %q: %w", category, err)
			}
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}
			now := time.Now()
			if month == 0 {
				month = int(now.Month())
			}
			if year == 0 {
				year = now.Year()
			}

			b, created, err := a.client().SetBudget(cmd.Context(), models.BudgetInput{
				CategoryID: categoryID, Amount: value, Month: month, Year: year,
			})
			if err != nil {
				return fmt.Errorf("failed to set budget: %w", err)
			}
			verb := "Updated"
			if created {
				verb = "Created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s budget of %s for %04d-%02d (%s)\n", verb, b.Amount.StringFixed(2), b.Year, b.Month, b.ID)
			return nil
		},
	}
	set.Flags().StringVar(&category, "category", "", "category ID")
	set.Flags().StringVar(&amount, "amount", "", "monthly cap")
	set.Flags().IntVar(&month, "month", 0, "month (1-12), defaults to the current month")
	set.Flags().IntVar(&year, "year", 0, "year, defaults to the current year")
	_ = set.MarkFlagRequired("category")
	_ = set.MarkFlagRequired("amount")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			if err := a.client().DeleteBudget(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete budget: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Budget deleted")
			return nil
		},
	}

	cmd.AddCommand(list, set, del)
	return cmd
}
