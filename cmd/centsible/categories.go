package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/centsible/centsible/internal/cli"
	"github.com/centsible/centsible/internal/common"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage expense categories",
		Long:  `List, add, rename, and delete the categories expenses are tagged with.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(renameCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			names, err := store.Categories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(names) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'centsible category add' to create one."))
				return nil
			}

			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.AddCategory(ctx, name); err != nil {
				if errors.Is(err, common.ErrDuplicateEntry) {
					return fmt.Errorf("category %q already exists", name)
				}
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added category %q", name)))
			return nil
		},
	}
}

func renameCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a category",
		Long: `Rename a category. Every expense tagged with the old name is retagged
with the new one in the same atomic operation.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			oldName, newName := args[0], args[1]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.RenameCategory(ctx, oldName, newName); err != nil {
				if errors.Is(err, common.ErrDuplicateEntry) {
					return fmt.Errorf("category %q already exists", newName)
				}
				return fmt.Errorf("failed to rename category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ Renamed category %q to %q", oldName, newName)))
			return nil
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category",
		Long: `Delete a category. Expenses tagged with it are reassigned to
"Uncategorized"; no expense is deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			if !force {
				ok, err := cli.Confirm(ctx, os.Stdin, os.Stdout,
					fmt.Sprintf("Delete category %q and reassign its expenses to Uncategorized?", name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteCategory(ctx, name); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted category %q", name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
