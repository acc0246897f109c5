package cli

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/nemopss/financas/backend/models"
	"github.com/spf13/cobra"
)

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := a.client().Categories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch categories: %w", err)
			}
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, []string{c.ID.String(), c.Icon, c.Name, strconv.FormatBool(c.IsDefault)})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "Icon", "Name", "Default"}, rows)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			c, err := a.client().Category(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to fetch category: %w", err)
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "Icon", "Name", "Default"},
				[][]string{{c.ID.String(), c.Icon, c.Name, strconv.FormatBool(c.IsDefault)}})
			return nil
		},
	}

	var in models.CategoryInput
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			c, err := a.client().CreateCategory(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %s %s (%s)\n", c.Icon, c.Name, c.ID)
			return nil
		},
	}
	add.Flags().StringVar(&in.Icon, "icon", "", "icon, defaults to "+models.DefaultCategoryIcon)
	add.Flags().BoolVar(&in.IsDefault, "default", false, "mark as a default category")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an unused category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			if err := a.client().DeleteCategory(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Category deleted")
			return nil
		},
	}

	cmd.AddCommand(list, show, add, del)
	return cmd
}
