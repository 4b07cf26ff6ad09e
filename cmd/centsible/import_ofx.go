package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/centsible/centsible/internal/cli"
	"github.com/centsible/centsible/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from bank statement files",
	}

	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importOFXCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "ofx <file>",
		Short: "Import transactions from an OFX/QFX statement",
		Long: `Parse an OFX or QFX bank statement and record its transactions. Debits
become expenses under the given category and credits become income with the
transaction name as the source. The whole statement is recorded atomically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open OFX file: %w", err)
			}
			defer func() { _ = f.Close() }()

			stmt, err := ofx.NewParser(category).Parse(f)
			if err != nil {
				return err
			}

			if len(stmt.Expenses)+len(stmt.Income) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found in statement."))
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ImportEntries(ctx, stmt.Expenses, stmt.Income); err != nil {
				return fmt.Errorf("failed to record statement: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"✓ Imported %d expenses and %d income entries", len(stmt.Expenses), len(stmt.Income))))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category for imported expenses (default Uncategorized)")

	return cmd
}
