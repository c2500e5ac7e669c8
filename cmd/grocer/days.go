package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/grocery-manager/internal/cli"
	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/model"
)

func daysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "days",
		Short: "Show or choose your grocery days",
		Long: `Grocery days are the weekdays you go shopping. Item frequencies are
spread across them, so they must be set before items can be added.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the configured grocery days",
		Args:  cobra.NoArgs,
		RunE:  runDaysShow,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <weekday>...",
		Short: "Replace the grocery days",
		Long: `Replace the grocery days. Weekdays may be full names or abbreviations,
separated by spaces or commas.

Examples:
  grocer days set monday thursday
  grocer days set mon,thu,sat`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDaysSet,
	})

	return cmd
}

func runDaysShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	days, err := s.store.GetGroceryDays(ctx)
	if err != nil {
		return fmt.Errorf("failed to load grocery days: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("%s Grocery days: %s", cli.CalendarIcon, model.FormatWeekdays(days))))
	return err
}

func runDaysSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	days, err := model.ParseWeekdays(args)
	if err != nil {
		return common.NewUserError("Could not read the weekdays", err)
	}
	if len(days) == 0 {
		return common.NewUserError("Choose at least one grocery day", nil)
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.store.SetGroceryDays(ctx, days); err != nil {
		return fmt.Errorf("failed to save grocery days: %w", err)
	}

	slog.Info("Grocery days updated", "days", model.FormatWeekdays(days))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Grocery days: "+model.FormatWeekdays(days)))
	return err
}
