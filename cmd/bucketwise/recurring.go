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

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring expense templates",
		Long: `Templates save an expense's description, amount, and category
for one-tap re-entry with 'bucketwise recurring use'. A template with amount
0 asks for the amount each time.`,
	}

	cmd.AddCommand(listRecurringCmd())
	cmd.AddCommand(addRecurringCmd())
	cmd.AddCommand(updateRecurringCmd())
	cmd.AddCommand(deleteRecurringCmd())
	cmd.AddCommand(useRecurringCmd())

	return cmd
}

func listRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			state := st.State()
			if len(state.Recurring) == 0 {
				fmt.Println(cli.InfoStyle.Render("No recurring templates. Use 'bucketwise recurring add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Description"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Category"))

			for _, tpl := range state.Recurring {
				amount := cli.SubtleStyle.Render("(ask each time)")
				if tpl.DefaultAmountCents > 0 {
					amount = cli.FormatCents(tpl.DefaultAmountCents, state.Settings.Currency)
				}
				category := ""
				if tpl.CategoryID != nil {
					category = *tpl.CategoryID
					if cat := model.FindCategory(state.Categories, *tpl.CategoryID); cat != nil {
						category = cat.Name
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tpl.ID, tpl.Description, amount, category)
			}
			return nil
		},
	}
}

func addRecurringCmd() *cobra.Command {
	var (
		amount     string
		categoryID string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a recurring template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var cents int64
			if amount != "" {
				var err error
				cents, err = parseAmount(amount)
				if err != nil {
					return err
				}
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			tpl, err := st.AddRecurring(ctx, store.RecurringDraft{
				Description:        args[0],
				DefaultAmountCents: cents,
				CategoryID:         optString(categoryID),
			})
			if err != nil {
				return fmt.Errorf("failed to add template: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added template %q", tpl.Description)))
			fmt.Println(cli.SubtleStyle.Render("id: " + tpl.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "default decimal amount (omit to ask each time)")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id")

	return cmd
}

func updateRecurringCmd() *cobra.Command {
	var (
		description   string
		amount        string
		categoryID    string
		clearCategory bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a recurring template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			upd := store.RecurringUpdate{
				Description:   optString(description),
				CategoryID:    optString(categoryID),
				ClearCategory: clearCategory,
			}
			if amount != "" {
				cents, err := parseAmount(amount)
				if err != nil {
					return err
				}
				upd.DefaultAmountCents = &cents
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			tpl, err := st.UpdateRecurring(ctx, args[0], upd)
			if err != nil {
				return fmt.Errorf("failed to update template: %w", err)
			}
			if tpl == nil {
				fmt.Println(cli.WarningStyle.Render("No template with id " + args[0]))
				return nil
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Updated template %q", tpl.Description)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "m", "", "new description")
	cmd.Flags().StringVar(&amount, "amount", "", "new default decimal amount")
	cmd.Flags().StringVar(&categoryID, "category", "", "new category id")
	cmd.Flags().BoolVar(&clearCategory, "clear-category", false, "remove the category reference")

	return cmd
}

func deleteRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recurring template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			removed, err := st.DeleteRecurring(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete template: %w", err)
			}
			if removed == nil {
				fmt.Println(cli.WarningStyle.Render("No template with id " + args[0]))
				return nil
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Deleted template %q", removed.Description)))
			return nil
		},
	}
}

func useRecurringCmd() *cobra.Command {
	var amount string

	cmd := &cobra.Command{
		Use:   "use <id>",
		Short: "Create an expense from a template",
		Long: `Record an expense with the template's description, amount, and
category. Templates whose default amount is 0 require --amount.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			state := st.State()
			var tpl *model.RecurringTemplate
			for i := range state.Recurring {
				if state.Recurring[i].ID == args[0] {
					tpl = &state.Recurring[i]
					break
				}
			}
			if tpl == nil {
				fmt.Println(cli.WarningStyle.Render("No template with id " + args[0]))
				return nil
			}

			cents := tpl.DefaultAmountCents
			if amount != "" {
				cents, err = parseAmount(amount)
				if err != nil {
					return err
				}
			}
			if cents <= 0 {
				return fmt.Errorf("template %q has no default amount; pass --amount", tpl.Description)
			}

			txn, err := st.AddTransaction(ctx, store.TransactionDraft{
				Type:        model.TypeExpense,
				AmountCents: cents,
				Description: tpl.Description,
				CategoryID:  tpl.CategoryID,
			})
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Recorded %s from template %q",
				cli.FormatCents(txn.AmountCents, state.Settings.Currency), tpl.Description)))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "override the template's default amount")

	return cmd
}
