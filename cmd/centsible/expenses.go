package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/centsible/centsible/internal/cli"
	"github.com/centsible/centsible/internal/model"
	"github.com/centsible/centsible/internal/storage"
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and manage expenses",
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(updateExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var (
		dateFlag    string
		category    string
		amountFlag  string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new expense",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// Validation happens before the store is ever opened.
			if err := model.RequireField(category, "category"); err != nil {
				return err
			}
			amount, err := model.ParseAmount(amountFlag)
			if err != nil {
				return err
			}
			date, err := parseDateFlag(dateFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expense := model.Expense{
				Date:        date,
				Category:    category,
				Amount:      amount,
				Description: description,
			}
			if err := store.AddExpense(ctx, &expense); err != nil {
				return fmt.Errorf("failed to add expense: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ Added expense %d: %s %.2f (%s)",
					expense.ID, expense.Date.Format(model.DateLayout), expense.Amount, expense.Category)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "expense date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&category, "category", "", "expense category (required)")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "amount, must be positive (required)")
	cmd.Flags().StringVar(&description, "description", "", "optional description")

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var filter storage.ExpenseFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expenses, err := store.FetchExpenses(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to fetch expenses: %w", err)
			}

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses found."))
				return nil
			}

			printExpenseTable(expenses)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.StartDate, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.EndDate, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&filter.Year, "year", "", "filter by year (YYYY)")
	cmd.Flags().StringVar(&filter.MonthYear, "month", "", "filter by month (YYYY-MM)")
	cmd.Flags().StringVar(&filter.Keyword, "keyword", "", "substring match on description or category")

	return cmd
}

func printExpenseTable(expenses []model.Expense) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("ID"),
		cli.BoldStyle.Render("Date"),
		cli.BoldStyle.Render("Category"),
		cli.BoldStyle.Render("Amount"),
		cli.BoldStyle.Render("Description"))

	for _, e := range expenses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\n",
			e.ID, e.Date.Format(model.DateLayout), e.Category, e.Amount, e.Description)
	}
}

func updateExpenseCmd() *cobra.Command {
	var (
		dateFlag    string
		category    string
		amountFlag  string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Overwrite all fields of an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := model.RequireField(category, "category"); err != nil {
				return err
			}
			amount, err := model.ParseAmount(amountFlag)
			if err != nil {
				return err
			}
			date, err := parseDateFlag(dateFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expense := model.Expense{
				ID:          id,
				Date:        date,
				Category:    category,
				Amount:      amount,
				Description: description,
			}
			if err := store.UpdateExpense(ctx, expense); err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated expense %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "expense date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&category, "category", "", "expense category (required)")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "amount, must be positive (required)")
	cmd.Flags().StringVar(&description, "description", "", "optional description")

	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteExpense(ctx, id); err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted expense %d", id)))
			return nil
		},
	}
}
