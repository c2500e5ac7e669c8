package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/grocery-manager/internal/cli"
	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/engine"
)

func dismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <id>...",
		Short: "Remove items from today's grocery list",
		Long: `Remove items from today's grocery list, e.g. once they are in the cart.
They stay off the list until the grocery day is over.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDismiss,
	}
}

func runDismiss(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	for _, id := range ids {
		item, err := s.lifecycle.Dismiss(ctx, id)
		switch {
		case errors.Is(err, engine.ErrNoOpenCycle):
			return common.NewUserError("No grocery list is open today. Run: grocer list", err)
		case errors.Is(err, common.ErrNotFound):
			return common.NewUserError(fmt.Sprintf("No item with ID %d", id), err)
		case err != nil:
			return fmt.Errorf("failed to dismiss item %d: %w", id, err)
		}

		if _, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Dismissed "+item.Label)); err != nil {
			return err
		}
	}
	return nil
}
