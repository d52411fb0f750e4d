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

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long: `List, add, rename, and archive expense categories. Categories
are never deleted — archiving hides a category from new transactions while
keeping historical references valid.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(archiveCategoryCmd(true))
	cmd.AddCommand(archiveCategoryCmd(false))

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			state := st.State()
			if len(state.Categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'bucketwise categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Bucket"),
				cli.HeaderStyle.Render("Status"))

			for _, cat := range state.Categories {
				if cat.Archived && !includeArchived {
					continue
				}
				status := "active"
				if cat.Archived {
					status = cli.SubtleStyle.Render("archived")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cat.ID, cat.Name, cat.Bucket.Title(), status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&includeArchived, "all", "a", false, "include archived categories")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			b, err := parseBucketFlag(bucket)
			if err != nil {
				return err
			}
			target := model.BucketNecessities
			if b != nil {
				target = *b
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			cat, err := st.AddCategory(ctx, args[0], target)
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added category %q (%s)", cat.Name, cat.Bucket.Title())))
			fmt.Println(cli.SubtleStyle.Render("id: " + cat.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "necessities", "bucket (necessities, leisure, savings)")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		name   string
		bucket string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or re-bucket a category",
		Long: `Change a category's name or bucket. Historical spend reports
resolve names from the live category list, so renames apply retroactively.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			upd := store.CategoryUpdate{Name: optString(name)}
			if bucket != "" {
				b, err := parseBucketFlag(bucket)
				if err != nil {
					return err
				}
				upd.Bucket = b
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			cat, err := st.UpdateCategory(ctx, args[0], upd)
			if err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}
			if cat == nil {
				fmt.Println(cli.WarningStyle.Render("No category with id " + args[0]))
				return nil
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Updated category %q (%s)", cat.Name, cat.Bucket.Title())))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&bucket, "bucket", "", "new bucket")

	return cmd
}

func archiveCategoryCmd(archive bool) *cobra.Command {
	use, short := "archive <id>", "Archive a category"
	if !archive {
		use, short = "unarchive <id>", "Restore an archived category"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			cat, err := st.ArchiveCategory(ctx, args[0], archive)
			if err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}
			if cat == nil {
				fmt.Println(cli.WarningStyle.Render("No category with id " + args[0]))
				return nil
			}

			verb := "Archived"
			if !archive {
				verb = "Restored"
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("%s category %q", verb, cat.Name)))
			return nil
		},
	}
}
