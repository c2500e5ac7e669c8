package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/grocery-manager/internal/cli"
	"github.com/Veraticus/grocery-manager/internal/engine"
	"github.com/Veraticus/grocery-manager/internal/model"
)

func cycleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Inspect or close the current grocery trip",
		Long: `A grocery cycle opens when the list is first evaluated on a grocery day and
closes on the next evaluation on another day. Closing saves the new
countdowns and removes one-time items.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the open grocery cycle",
		Args:  cobra.NoArgs,
		RunE:  runCycleStatus,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "close",
		Short: "Close the open grocery cycle now",
		Args:  cobra.NoArgs,
		RunE:  runCycleClose,
	})

	return cmd
}

func runCycleStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	status, err := s.lifecycle.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cycle state: %w", err)
	}

	return writeCycleStatus(cmd.OutOrStdout(), status)
}

func writeCycleStatus(w io.Writer, status *engine.CycleStatus) error {
	if !status.Open {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No grocery cycle is open."))
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Opened on %s\n", status.OpenedOn.Format("Monday, 2 Jan 2006"))

	fmt.Fprintf(&b, "\nCountdowns to save (%d):\n", len(status.Incremented))
	for _, item := range status.Incremented {
		fmt.Fprintf(&b, "  %-20s %.2f\n", item.Label, item.CountdownValue)
	}

	fmt.Fprintf(&b, "\nDismissed (%d):\n", len(status.Removed))
	for _, item := range status.Removed {
		fmt.Fprintf(&b, "  %s\n", item.Label)
	}

	_, err := fmt.Fprintln(w, cli.RenderBox(cli.CartIcon+" Grocery cycle", strings.TrimRight(b.String(), "\n")))
	return err
}

func runCycleClose(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	status, err := s.lifecycle.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cycle state: %w", err)
	}
	if !status.Open {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No grocery cycle is open."))
		return err
	}

	if err := s.lifecycle.OnCycleClose(ctx); err != nil {
		return fmt.Errorf("failed to close grocery cycle: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Closed the grocery cycle."))
	return err
}

func nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show how many days until the next grocery day",
		Args:  cobra.NoArgs,
		RunE:  runNext,
	}
}

func runNext(cmd *cobra.Command, _ []string) error {
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

	today := clock().Weekday()
	distance := engine.DaysUntilNextGroceryDay(today, days)

	msg := cli.NextGroceryDayMessage(distance)
	if distance > 0 && distance < engine.NoGroceryDaysSet {
		next := time.Weekday((int(today) + distance) % 7)
		msg = fmt.Sprintf("%s (%s)", strings.TrimSuffix(msg, "."), next)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(msg)); err != nil {
		return err
	}
	if len(days) > 0 {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(cli.CalendarIcon+" Grocery days: "+model.FormatWeekdays(days)))
	}
	return err
}
