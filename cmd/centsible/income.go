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

func incomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Record and manage income",
	}

	cmd.AddCommand(addIncomeCmd())
	cmd.AddCommand(listIncomeCmd())
	cmd.AddCommand(updateIncomeCmd())
	cmd.AddCommand(deleteIncomeCmd())

	return cmd
}

func addIncomeCmd() *cobra.Command {
	var (
		dateFlag    string
		source      string
		amountFlag  string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new income entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if err := model.RequireField(source, "source"); err != nil {
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

			entry := model.Income{
				Date:        date,
				Source:      source,
				Amount:      amount,
				Description: description,
			}
			if err := store.AddIncome(ctx, &entry); err != nil {
				return fmt.Errorf("failed to add income: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ Added income %d: %s %.2f (%s)",
					entry.ID, entry.Date.Format(model.DateLayout), entry.Amount, entry.Source)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "income date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&source, "source", "", "income source (required)")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "amount, must be positive (required)")
	cmd.Flags().StringVar(&description, "description", "", "optional description")

	return cmd
}

func listIncomeCmd() *cobra.Command {
	var filter storage.IncomeFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List income entries, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.FetchIncome(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to fetch income: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println(cli.InfoStyle.Render("No income entries found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Date"),
				cli.BoldStyle.Render("Source"),
				cli.BoldStyle.Render("Amount"),
				cli.BoldStyle.Render("Description"))

			for _, in := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\n",
					in.ID, in.Date.Format(model.DateLayout), in.Source, in.Amount, in.Description)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&filter.StartDate, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.EndDate, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.Source, "source", "", "filter by source (substring)")
	cmd.Flags().StringVar(&filter.Year, "year", "", "filter by year (YYYY)")
	cmd.Flags().StringVar(&filter.MonthYear, "month", "", "filter by month (YYYY-MM)")
	cmd.Flags().StringVar(&filter.Keyword, "keyword", "", "substring match on description or source")

	return cmd
}

func updateIncomeCmd() *cobra.Command {
	var (
		dateFlag    string
		source      string
		amountFlag  string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Overwrite all fields of an income entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := model.RequireField(source, "source"); err != nil {
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

			entry := model.Income{
				ID:          id,
				Date:        date,
				Source:      source,
				Amount:      amount,
				Description: description,
			}
			if err := store.UpdateIncome(ctx, entry); err != nil {
				return fmt.Errorf("failed to update income: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated income %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "income date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&source, "source", "", "income source (required)")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "amount, must be positive (required)")
	cmd.Flags().StringVar(&description, "description", "", "optional description")

	return cmd
}

func deleteIncomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an income entry",
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

			if err := store.DeleteIncome(ctx, id); err != nil {
				return fmt.Errorf("failed to delete income: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted income %d", id)))
			return nil
		},
	}
}
