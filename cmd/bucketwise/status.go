package main

import (
	"fmt"
	"strings"

	"github.com/joshsymonds/bucketwise/internal/cli"
	"github.com/joshsymonds/bucketwise/internal/config"
	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database health and record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dbPath := viper.GetString("database.path")
			if dbPath == "" {
				dbPath = config.DefaultDBPath
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			state := st.State()
			fmt.Println(cli.TitleStyle.Render("Ledger status"))
			fmt.Printf("database:       %s\n", config.ExpandPath(dbPath))
			fmt.Printf("schema version: %d\n", model.CurrentSchemaVersion)
			fmt.Printf("transactions:   %d\n", len(state.Transactions))
			fmt.Printf("categories:     %d\n", len(state.Categories))
			fmt.Printf("templates:      %d\n", len(state.Recurring))

			if len(state.CorruptKeys) > 0 {
				fmt.Println(cli.ErrorStyle.Render(
					"corrupt keys:   " + strings.Join(state.CorruptKeys, ", ")))
				fmt.Println(cli.WarningStyle.Render(
					"These collections loaded as defaults. Import a backup or reset to clear."))
			}
			return nil
		},
	}
}
