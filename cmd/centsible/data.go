package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/centsible/centsible/internal/cli"
)

const erasePhrase = "ERASE ALL DATA"

func dataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Backup, restore, merge, and erase the database",
	}

	cmd.AddCommand(backupCmd())
	cmd.AddCommand(restoreCmd())
	cmd.AddCommand(mergeCmd())
	cmd.AddCommand(eraseCmd())

	return cmd
}

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <dest>",
		Short: "Write a consistent copy of the database to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Backup(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to back up database: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Backed up database to %s", args[0])))
			return nil
		},
	}
}

func restoreCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <src>",
		Short: "Overwrite the database with a backup file",
		Long: `Overwrite the live database with a backup file. This is destructive:
everything recorded since the backup is lost.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				ok, err := cli.Confirm(ctx, os.Stdin, os.Stdout,
					fmt.Sprintf("Overwrite the current database with %s?", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Restore cancelled.")
					return nil
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Restore(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to restore database: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Restored database from %s", args[0])))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func mergeCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <src.db>",
		Short: "Merge rows from another database file into this one",
		Long: `Merge every row from another database file into the live database.
Expenses, income, and budgets are matched by id, and colliding ids are
overwritten by the imported row; categories are matched by name and existing
ones win.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				ok, err := cli.Confirm(ctx, os.Stdin, os.Stdout,
					fmt.Sprintf("Merge all rows from %s into the current database? Colliding ids are overwritten", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Import cancelled.")
					return nil
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := store.ImportMerge(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to import database: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"✓ Imported %d rows (%d expenses, %d income, %d categories, %d budgets)",
				stats.Total(), stats.Expenses, stats.Income, stats.Categories, stats.Budgets)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func eraseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "erase",
		Short: "Permanently erase all data and start fresh",
		Long: `Delete the database file outright and reinitialize an empty store with
default seed data. There is no undo; take a backup first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			ok, err := cli.ConfirmPhrase(ctx, os.Stdin, os.Stdout,
				cli.WarningStyle.Render("This permanently deletes every expense, income entry, budget, and category."),
				erasePhrase)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Erase cancelled.")
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Erase(ctx); err != nil {
				return fmt.Errorf("failed to erase database: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Database erased and reinitialized"))
			return nil
		},
	}
}
