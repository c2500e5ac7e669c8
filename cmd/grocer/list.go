package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/grocery-manager/internal/cli"
	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/tui"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show today's grocery list",
		Long: `Evaluate today's grocery list.

On a grocery day this opens the day's shopping trip: items that have come due
are listed and the rest keep counting down. Running it again the same day
shows the same list minus anything you dismissed. The first run after a
grocery day closes that trip.

Use --interactive to tick items off as you shop.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("format", "", "output format (table, json, yaml)")
	cmd.Flags().BoolP("interactive", "i", false, "open the interactive shopping list")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	interactive, _ := cmd.Flags().GetBool("interactive")

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	format, err := outputFormat(cmd, s.cfg.ListFormat)
	if err != nil {
		return err
	}

	eval, err := s.lifecycle.Evaluate(ctx)
	if err != nil {
		return fmt.Errorf("failed to evaluate grocery list: %w", err)
	}

	if interactive {
		if !eval.IsGroceryDay {
			return common.NewUserError(cli.NextGroceryDayMessage(eval.DaysUntilNext), tui.ErrNotGroceryDay)
		}
		return tui.Run(ctx, eval, s.lifecycle)
	}

	return cli.NewExporter(cmd.OutOrStdout(), format, s.cfg.Color).Evaluation(eval)
}
