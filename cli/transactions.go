package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nemopss/financas/backend/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// transactionFlags collects the fields shared by add and update.
type transactionFlags struct {
	typ         string
	amount      string
	category    string
	date        string
	description string
}

func (f *transactionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.typ, "type", string(models.TransactionExpense), "income or expense")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount, e.g. 12.50")
	cmd.Flags().StringVar(&f.category, "category", "", "category ID (required for expenses)")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVar(&f.description, "description", "", "free-form description")
	_ = cmd.MarkFlagRequired("amount")
}

func (f *transactionFlags) input() (models.TransactionInput, error) {
	in := models.TransactionInput{
		Type:        models.TransactionType(f.typ),
		Description: f.description,
	}

	amount, err := decimal.NewFromString(f.amount)
	if err != nil {
		return in, fmt.Errorf("invalid amount %q", f.amount)
	}
	in.Amount = amount

	if f.category != "" {
		id, err := uuid.Parse(f.category)
		if err != nil {
			return in, fmt.Errorf("invalid category %q: %w", f.category, err)
		}
		in.CategoryID = &id
	}
	if f.date != "" {
		d, err := models.ParseDate(f.date)
		if err != nil {
			return in, err
		}
		in.Date = &d
	}
	return in, nil
}

func transactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
	}

	var (
		filterType     string
		filterCategory string
		limit          int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := models.TransactionFilter{Type: models.TransactionType(filterType), Limit: limit}
			if filterCategory != "" {
				id, err := uuid.Parse(filterCategory)
				if err != nil {
					return fmt.Errorf("invalid category %q: %w", filterCategory, err)
				}
				filter.CategoryID = &id
			}

			transactions, err := a.client().Transactions(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("failed to fetch transactions: %w", err)
			}
			rows := make([][]string, 0, len(transactions))
			for _, t := range transactions {
				category := ""
				if t.Category != nil {
					category = t.Category.Icon + " " + t.Category.Name
				}
				amount := t.Amount.StringFixed(2)
				if t.Type == models.TransactionExpense {
					amount = expenseStyle.Render("-" + amount)
				} else {
					amount = incomeStyle.Render("+" + amount)
				}
				rows = append(rows, []string{t.Date.String(), amount, category, t.Description, t.ID.String()})
			}
			renderTable(cmd.OutOrStdout(), []string{"Date", "Amount", "Category", "Description", "ID"}, rows)
			return nil
		},
	}
	list.Flags().StringVar(&filterType, "type", "", "only income or expense")
	list.Flags().StringVar(&filterCategory, "category", "", "only this category ID")
	list.Flags().IntVar(&limit, "limit", 0, "maximum rows")

	var addFlags transactionFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := addFlags.input()
			if err != nil {
				return err
			}
			t, err := a.client().CreateTransaction(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to create transaction: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s of %s on %s (%s)\n", t.Type, t.Amount.StringFixed(2), t.Date, t.ID)
			return nil
		},
	}
	addFlags.register(add)

	var updateFlags transactionFlags
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace every field of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			in, err := updateFlags.input()
			if err != nil {
				return err
			}
			t, err := a.client().UpdateTransaction(cmd.Context(), id, in)
			if err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", t.ID)
			return nil
		},
	}
	updateFlags.register(update)
	_ = update.MarkFlagRequired("date")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			if err := a.client().DeleteTransaction(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Transaction deleted")
			return nil
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}
