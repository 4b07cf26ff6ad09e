package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/centsible/centsible/internal/cli"
	"github.com/centsible/centsible/internal/report"
	"github.com/centsible/centsible/internal/storage"
)

const noDataMessage = "No data for the selected period."

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Spending and income reports",
	}

	cmd.AddCommand(reportCategoriesCmd())
	cmd.AddCommand(reportMonthlyCmd())
	cmd.AddCommand(reportTrendCmd())
	cmd.AddCommand(reportBalanceCmd())

	return cmd
}

func reportCategoriesCmd() *cobra.Command {
	var (
		filter storage.ExpenseFilter
		donut  bool
	)

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Spending totals by category",
		Long: `Group expenses by category and sum their amounts. Category names are
normalized to a consistent capitalization before grouping, so names that
differ only in case land in the same bucket. With --donut, categories below
2% of the period total are folded into an "Other" bucket.`,
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

			totals := report.CategoryTotals(expenses)
			if donut {
				totals = report.FoldSmallSlices(totals, report.MinSlicePercent)
			}

			out := report.RenderCategoryBreakdown(totals)
			if out == "" {
				fmt.Println(cli.InfoStyle.Render(noDataMessage))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Spending by category"))
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Year, "year", "", "restrict to a year (YYYY)")
	cmd.Flags().StringVar(&filter.MonthYear, "month", "", "restrict to a month (YYYY-MM)")
	cmd.Flags().StringVar(&filter.StartDate, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.EndDate, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&donut, "donut", false, "fold categories under 2% into \"Other\"")

	return cmd
}

func reportMonthlyCmd() *cobra.Command {
	var yearFlag string

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly spending for one year, January through December",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			year, err := strconv.Atoi(yearFlag)
			if err != nil {
				return fmt.Errorf("invalid year %q", yearFlag)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expenses, err := store.FetchExpenses(ctx, storage.ExpenseFilter{Year: yearFlag})
			if err != nil {
				return fmt.Errorf("failed to fetch expenses: %w", err)
			}

			series := report.MonthlySeries(expenses, year)
			out := report.RenderMonthlySeries(year, series)
			if out == "" {
				fmt.Println(cli.InfoStyle.Render(noDataMessage))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Monthly spending in %d", year)))
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&yearFlag, "year", "", "year to report on (YYYY, required)")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func reportTrendCmd() *cobra.Command {
	var filter storage.ExpenseFilter

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Month-over-month spending trend",
		Long: `Spending grouped by month across the filtered set, oldest first.
Restrict with --category to follow one category over time.`,
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

			out := report.RenderTrend(report.Trend(expenses))
			if out == "" {
				fmt.Println(cli.InfoStyle.Render(noDataMessage))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Spending trend"))
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Category, "category", "", "restrict to one category")
	cmd.Flags().StringVar(&filter.Year, "year", "", "restrict to a year (YYYY)")
	cmd.Flags().StringVar(&filter.StartDate, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.EndDate, "to", "", "end date (YYYY-MM-DD)")

	return cmd
}

func reportBalanceCmd() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Net balance (income minus expenses) for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			monthYear, err := monthFlagOrCurrent(monthFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expenses, err := store.FetchExpensesByMonth(ctx, monthYear)
			if err != nil {
				return fmt.Errorf("failed to fetch expenses: %w", err)
			}
			income, err := store.FetchIncomeByMonth(ctx, monthYear)
			if err != nil {
				return fmt.Errorf("failed to fetch income: %w", err)
			}

			totalIncome := report.TotalIncome(income)
			totalExpenses := report.TotalExpenses(expenses)
			net := totalIncome - totalExpenses

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Net balance for %s", monthYear)))
			fmt.Printf("  Income:   %10.2f\n", totalIncome)
			fmt.Printf("  Expenses: %10.2f\n", totalExpenses)
			if net >= 0 {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("  Net:      %10.2f", net)))
			} else {
				fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf("  Net:      %10.2f", net)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "month to report on (YYYY-MM, default current)")

	return cmd
}
