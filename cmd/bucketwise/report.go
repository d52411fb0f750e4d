package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joshsymonds/bucketwise/internal/cli"
	"github.com/joshsymonds/bucketwise/internal/report"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly reports and activity feeds",
	}

	cmd.AddCommand(monthReportCmd())
	cmd.AddCommand(categoriesReportCmd())
	cmd.AddCommand(activityReportCmd())
	cmd.AddCommand(statsReportCmd())

	return cmd
}

func monthReportCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Income, expenses, and bucket budgets for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			year, m, err := parseMonthFlag(month)
			if err != nil {
				return err
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			currency := st.State().Settings.Currency
			summary := st.MonthlyTotals(year, m)

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s %d", m, year)))
			fmt.Printf("Income:   %s\n", cli.FormatCents(summary.IncomeCents, currency))
			fmt.Printf("Expenses: %s\n\n", cli.FormatCents(summary.ExpenseCents, currency))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Bucket"),
				cli.HeaderStyle.Render("Budget"),
				cli.HeaderStyle.Render("Spent"),
				cli.HeaderStyle.Render("Remaining"))

			printBucketRow(w, "Necessities", summary.Necessities, currency)
			printBucketRow(w, "Leisure", summary.Leisure, currency)
			printBucketRow(w, "Savings", summary.Savings, currency)
			if summary.Uncategorized.SpentCents > 0 {
				printBucketRow(w, "Uncategorized", summary.Uncategorized, currency)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to report (YYYY-MM, default: current)")

	return cmd
}

func printBucketRow(w *tabwriter.Writer, name string, t report.BucketTotals, currency string) {
	remaining := cli.FormatCents(t.RemainingCents, currency)
	if t.RemainingCents < 0 {
		remaining = cli.ErrorStyle.Render(remaining)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		name,
		cli.FormatCents(t.BudgetCents, currency),
		cli.FormatCents(t.SpentCents, currency),
		remaining)
}

func categoriesReportCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Spending by category for a month, highest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			year, m, err := parseMonthFlag(month)
			if err != nil {
				return err
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			currency := st.State().Settings.Currency
			rows := st.SpendingByCategory(year, m)
			if len(rows) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No expenses in %s %d.", m, year)))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Bucket"),
				cli.HeaderStyle.Render("Spent"),
				cli.HeaderStyle.Render("Count"))

			for _, row := range rows {
				bucket := ""
				if row.Bucket != nil {
					bucket = row.Bucket.Title()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					row.Name, bucket, cli.FormatCents(row.SpentCents, currency), row.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to report (YYYY-MM, default: current)")

	return cmd
}

func activityReportCmd() *cobra.Command {
	var (
		pageSize int
		cursor   string
	)

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Day-grouped activity feed",
		Long: `Walk the full transaction history newest first, grouped by day.
The feed is not month-filtered: paging continues into adjacent months.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			state := st.State()
			page := st.ActivityGroups(pageSize, cursor)
			if len(page.Groups) == 0 {
				fmt.Println(cli.InfoStyle.Render("No activity yet."))
				return nil
			}

			for _, group := range page.Groups {
				fmt.Println(cli.TitleStyle.Render(group.Label))
				printTransactionTable(group.Transactions, state)
				fmt.Println()
			}

			if page.NextCursor != nil && page.HasMore {
				fmt.Println(cli.SubtleStyle.Render("more: --cursor '" + page.NextCursor.String() + "'"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", report.DefaultPageSize, "transactions per page")
	cmd.Flags().StringVar(&cursor, "cursor", "", "resume after this cursor")

	return cmd
}

func statsReportCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Per-category usage counts for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			year, m, err := parseMonthFlag(month)
			if err != nil {
				return err
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			usage := st.CategoryStats(year, m)
			if len(usage) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Bucket"),
				cli.HeaderStyle.Render("Status"),
				cli.HeaderStyle.Render("Transactions"))

			for _, u := range usage {
				status := "active"
				if u.Category.Archived {
					status = cli.SubtleStyle.Render("archived")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					u.Category.Name, u.Category.Bucket.Title(), status, u.TransactionCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to report (YYYY-MM, default: current)")

	return cmd
}
