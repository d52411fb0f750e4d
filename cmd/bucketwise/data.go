package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joshsymonds/bucketwise/internal/cli"
	"github.com/joshsymonds/bucketwise/internal/common"
	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/joshsymonds/bucketwise/internal/normalize"
	"github.com/spf13/cobra"
)

func dataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Export, import, and reset the ledger",
	}

	cmd.AddCommand(exportCmd())
	cmd.AddCommand(importCmd())
	cmd.AddCommand(resetCmd())

	return cmd
}

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full ledger as JSON",
		Long: `Write a self-contained snapshot — schema version, settings,
categories, recurring templates, and transactions — to a file or stdout.
The same document is accepted back by 'bucketwise data import'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			snapshot := st.Export()
			data, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode snapshot: %w", err)
			}
			data = append(data, '\n')

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"Exported %d transactions, %d categories, %d templates to %s",
				len(snapshot.Transactions), len(snapshot.Categories), len(snapshot.Recurring), output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func importCmd() *cobra.Command {
	var (
		strategy string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a previously exported snapshot",
		Long: `Validate and apply an exported snapshot. The payload's schema
version must match this build or the import is rejected in full.

With --strategy replace (the default) the imported collections replace the
current ones. With --strategy merge, current records are kept and imported
records are added unless their id already exists — current data wins on
collision.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			if dryRun {
				return printImportPreview(payload)
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Import(ctx, payload, model.ImportStrategy(strategy)); err != nil {
				if errors.Is(err, common.ErrSchemaMismatch) {
					return common.NewUserError("cannot import this file", err)
				}
				return fmt.Errorf("import failed: %w", err)
			}

			state := st.State()
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"Imported with strategy %q: now %d transactions, %d categories, %d templates",
				strategy, len(state.Transactions), len(state.Categories), len(state.Recurring))))
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", string(model.StrategyReplace), "replace or merge")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and summarize without applying")

	return cmd
}

// printImportPreview runs the payload through the same schema check and
// normalization as a real import, printing what would be applied.
func printImportPreview(payload []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}

	version, _ := raw["schema_version"].(float64)
	if int(version) != model.CurrentSchemaVersion {
		return common.NewUserError("cannot import this file",
			&common.SchemaError{Got: int(version), Want: model.CurrentSchemaVersion})
	}

	categories := normalize.Categories(raw["categories"])
	transactions := normalize.Transactions(raw["transactions"])
	recurring := normalize.Recurring(raw["recurring"])

	fmt.Println(cli.InfoStyle.Render("Snapshot is valid."))
	fmt.Printf("transactions: %d\ncategories:   %d\ntemplates:    %d\n",
		len(transactions), len(categories), len(recurring))
	return nil
}

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all data and restore defaults",
		Long: `Clear every transaction, category, and template, restore
default settings, and re-seed the starter categories. This cannot be undone;
consider 'bucketwise data export' first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				fmt.Print(cli.WarningStyle.Render("This erases the entire ledger.") + " Type 'reset' to confirm: ")
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.TrimSpace(answer) != "reset" {
					fmt.Println(cli.InfoStyle.Render("Aborted."))
					return nil
				}
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Reset(ctx); err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Ledger reset to defaults."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
