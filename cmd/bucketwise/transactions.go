package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joshsymonds/bucketwise/internal/cli"
	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/joshsymonds/bucketwise/internal/store"
	"github.com/spf13/cobra"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `Add, update, delete, and list income and expense transactions.`,
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(updateTxCmd())
	cmd.AddCommand(deleteTxCmd())
	cmd.AddCommand(listTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		income      bool
		description string
		categoryID  string
		bucket      string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Add a transaction",
		Long: `Record an income or expense event. The amount is decimal
("12.34"). Expenses resolve their bucket from --bucket, else from the
category, else stay uncategorized.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			b, err := parseBucketFlag(bucket)
			if err != nil {
				return err
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			draft := store.TransactionDraft{
				Type:        model.TypeExpense,
				AmountCents: amount,
				Description: description,
				CategoryID:  optString(categoryID),
				Bucket:      b,
				DateISO:     date,
			}
			if income {
				draft.Type = model.TypeIncome
			}

			txn, err := st.AddTransaction(ctx, draft)
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			settings := st.State().Settings
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Recorded %s of %s",
				txn.Type, cli.FormatCents(txn.AmountCents, settings.Currency))))
			fmt.Println(cli.SubtleStyle.Render("id: " + txn.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&income, "income", false, "record income instead of an expense")
	cmd.Flags().StringVarP(&description, "description", "m", "", "free-text description")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id (expenses only)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "explicit bucket (necessities, leisure, savings)")
	cmd.Flags().StringVar(&date, "date", "", "ISO-8601 timestamp (default: now)")

	return cmd
}

func updateTxCmd() *cobra.Command {
	var (
		amount        string
		description   string
		categoryID    string
		clearCategory bool
		bucket        string
		clearBucket   bool
		date          string
		toIncome      bool
		toExpense     bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			upd := store.TransactionUpdate{
				Description:   optString(description),
				DateISO:       optString(date),
				CategoryID:    optString(categoryID),
				ClearCategory: clearCategory,
				ClearBucket:   clearBucket,
			}
			if amount != "" {
				cents, err := parseAmount(amount)
				if err != nil {
					return err
				}
				upd.AmountCents = &cents
			}
			if bucket != "" {
				b, err := parseBucketFlag(bucket)
				if err != nil {
					return err
				}
				upd.Bucket = b
			}
			if toIncome && toExpense {
				return fmt.Errorf("--income and --expense are mutually exclusive")
			}
			if toIncome {
				t := model.TypeIncome
				upd.Type = &t
			}
			if toExpense {
				t := model.TypeExpense
				upd.Type = &t
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			txn, err := st.UpdateTransaction(ctx, args[0], upd)
			if err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}
			if txn == nil {
				fmt.Println(cli.WarningStyle.Render("No transaction with id " + args[0]))
				return nil
			}

			fmt.Println(cli.SuccessStyle.Render("Updated transaction " + txn.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "new decimal amount")
	cmd.Flags().StringVarP(&description, "description", "m", "", "new description")
	cmd.Flags().StringVar(&categoryID, "category", "", "new category id")
	cmd.Flags().BoolVar(&clearCategory, "clear-category", false, "remove the category reference")
	cmd.Flags().StringVar(&bucket, "bucket", "", "new explicit bucket")
	cmd.Flags().BoolVar(&clearBucket, "clear-bucket", false, "drop the explicit bucket and re-derive from the category")
	cmd.Flags().StringVar(&date, "date", "", "new ISO-8601 timestamp")
	cmd.Flags().BoolVar(&toIncome, "income", false, "convert to income")
	cmd.Flags().BoolVar(&toExpense, "expense", false, "convert to expense")

	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Long: `Remove a transaction. The store keeps no history; to undo,
re-add the printed details as a new transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			removed, err := st.DeleteTransaction(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}
			if removed == nil {
				fmt.Println(cli.WarningStyle.Render("No transaction with id " + args[0]))
				return nil
			}

			settings := st.State().Settings
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Deleted %s of %s (%s)",
				removed.Type, cli.FormatCents(removed.AmountCents, settings.Currency), removed.DateISO)))
			return nil
		},
	}
}

func listTxCmd() *cobra.Command {
	var (
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent transactions",
		Long: `Page through the transaction history, newest first. When more
records exist, the next page's cursor is printed; pass it back with --cursor
to resume.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			page := st.RecentTransactions(limit, cursor)
			if len(page.Transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions. Use 'bucketwise tx add' to record one."))
				return nil
			}

			state := st.State()
			printTransactionTable(page.Transactions, state)

			if page.NextCursor != nil && page.HasMore {
				fmt.Println(cli.SubtleStyle.Render("more: --cursor '" + page.NextCursor.String() + "'"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "page size")
	cmd.Flags().StringVar(&cursor, "cursor", "", "resume after this cursor")

	return cmd
}

func printTransactionTable(txns []model.Transaction, state model.State) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Date"),
		cli.HeaderStyle.Render("Type"),
		cli.HeaderStyle.Render("Amount"),
		cli.HeaderStyle.Render("Bucket"),
		cli.HeaderStyle.Render("Category"),
		cli.HeaderStyle.Render("Description"))

	for _, txn := range txns {
		bucket := ""
		if txn.Bucket != nil {
			bucket = txn.Bucket.Title()
		}
		category := ""
		if txn.CategoryID != nil {
			category = *txn.CategoryID
			if cat := model.FindCategory(state.Categories, *txn.CategoryID); cat != nil {
				category = cat.Name
			}
		}
		amount := cli.FormatCents(txn.AmountCents, state.Settings.Currency)
		if txn.Type == model.TypeExpense {
			amount = "-" + amount
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			txn.DateISO, txn.Type, amount, bucket, category, txn.Description)
	}
}
