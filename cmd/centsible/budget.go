package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/centsible/centsible/internal/cli"
	"github.com/centsible/centsible/internal/model"
	"github.com/centsible/centsible/internal/report"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set and review monthly budgets",
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(budgetStatusCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <YYYY-MM> <amount>",
		Short: "Set the overall budget for a month",
		Long:  `Set the overall budget for one month. Setting a budget for a month that already has one replaces it.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			monthYear := args[0]
			if _, err := model.ParseMonthKey(monthYear); err != nil {
				return err
			}
			amount, err := model.ParseBudgetAmount(args[1])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SetMonthlyBudget(ctx, monthYear, amount); err != nil {
				return fmt.Errorf("failed to set budget: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ Budget for %s set to %.2f", monthYear, amount)))
			return nil
		},
	}
}

func budgetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [YYYY-MM]",
		Short: "Show budget, spending, and remaining for a month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var monthArg string
			if len(args) == 1 {
				monthArg = args[0]
			}
			monthYear, err := monthFlagOrCurrent(monthArg)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budget, err := store.GetMonthlyBudget(ctx, monthYear)
			if err != nil {
				return fmt.Errorf("failed to get budget: %w", err)
			}

			expenses, err := store.FetchExpensesByMonth(ctx, monthYear)
			if err != nil {
				return fmt.Errorf("failed to fetch expenses: %w", err)
			}

			status := report.NewBudgetStatus(budget, report.TotalExpenses(expenses))

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Budget status for %s", monthYear)))
			fmt.Printf("  Budget:    %10.2f\n", status.Budget)
			fmt.Printf("  Spent:     %10.2f\n", status.Spent)
			fmt.Printf("  Remaining: %10.2f\n", status.Remaining)
			if status.OnTrack {
				fmt.Println(cli.SuccessStyle.Render("  On track"))
			} else {
				fmt.Println(cli.ErrorStyle.Render("  Over budget"))
			}
			return nil
		},
	}
}
