package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshsymonds/bucketwise/internal/cli"
	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/joshsymonds/bucketwise/internal/store"
	"github.com/spf13/cobra"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change ledger settings",
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setSettingsCmd())

	return cmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			s := st.State().Settings
			fmt.Println(cli.TitleStyle.Render("Settings"))
			fmt.Printf("currency:          %s\n", s.Currency)
			fmt.Printf("locale:            %s\n", s.Locale)
			fmt.Printf("rule:              %d/%d/%d (necessities/leisure/savings)\n",
				s.Rule.Necessities, s.Rule.Leisure, s.Rule.Savings)
			fmt.Printf("first day of week: %s\n", weekdayName(s.FirstDayOfWeek))
			fmt.Printf("advanced charts:   %t\n", s.ShowAdvancedCharts)
			fmt.Printf("haptic feedback:   %t\n", s.HapticFeedback)
			fmt.Printf("schema version:    %d\n", s.SchemaVersion)

			if sum := s.Rule.Necessities + s.Rule.Leisure + s.Rule.Savings; sum != 100 {
				fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("rule percentages sum to %d, not 100", sum)))
			}
			return nil
		},
	}
}

func setSettingsCmd() *cobra.Command {
	var (
		currency       string
		locale         string
		rule           string
		firstDay       int
		advancedCharts string
		haptics        string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Long: `Update one or more settings. The rule is three percentages in
necessities/leisure/savings order, e.g. --rule 50/30/20.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			patch := store.SettingsPatch{
				Currency: optString(currency),
				Locale:   optString(locale),
			}
			if rule != "" {
				r, err := parseRule(rule)
				if err != nil {
					return err
				}
				patch.Rule = &r
			}
			if cmd.Flags().Changed("first-day") {
				patch.FirstDayOfWeek = &firstDay
			}
			if advancedCharts != "" {
				v, err := strconv.ParseBool(advancedCharts)
				if err != nil {
					return fmt.Errorf("invalid --advanced-charts %q", advancedCharts)
				}
				patch.ShowAdvancedCharts = &v
			}
			if haptics != "" {
				v, err := strconv.ParseBool(haptics)
				if err != nil {
					return fmt.Errorf("invalid --haptics %q", haptics)
				}
				patch.HapticFeedback = &v
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			s, err := st.SaveSettings(ctx, patch)
			if err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Settings saved"))
			if sum := s.Rule.Necessities + s.Rule.Leisure + s.Rule.Savings; sum != 100 {
				fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("rule percentages sum to %d, not 100", sum)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency code")
	cmd.Flags().StringVar(&locale, "locale", "", "BCP-47 locale tag")
	cmd.Flags().StringVar(&rule, "rule", "", "bucket percentages, e.g. 50/30/20")
	cmd.Flags().IntVar(&firstDay, "first-day", 1, "first day of week (0 = Sunday, 1 = Monday)")
	cmd.Flags().StringVar(&advancedCharts, "advanced-charts", "", "show advanced charts (true/false)")
	cmd.Flags().StringVar(&haptics, "haptics", "", "haptic feedback (true/false)")

	return cmd
}

// parseRule parses "50/30/20" into a Rule.
func parseRule(s string) (model.Rule, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return model.Rule{}, fmt.Errorf("invalid rule %q: expected three percentages like 50/30/20", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return model.Rule{}, fmt.Errorf("invalid rule %q: expected three percentages like 50/30/20", s)
		}
		nums[i] = n
	}
	return model.Rule{Necessities: nums[0], Leisure: nums[1], Savings: nums[2]}, nil
}

func weekdayName(firstDay int) string {
	if firstDay == 0 {
		return "Sunday"
	}
	return "Monday"
}
