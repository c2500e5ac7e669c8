package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Veraticus/grocery-manager/internal/cli"
	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/engine"
	"github.com/Veraticus/grocery-manager/internal/model"
)

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage tracked food items",
		Long: `Add, edit, delete and list the food items grocer keeps track of.

Each item has an amount, a unit and a frequency such as "2 times per week".
One-time items (--onetime) appear on the next grocery list and are removed
once that grocery day is over.`,
	}

	cmd.AddCommand(itemsListCmd())
	cmd.AddCommand(itemsAddCmd())
	cmd.AddCommand(itemsEditCmd())
	cmd.AddCommand(itemsDeleteCmd())

	return cmd
}

func addItemFlags(flags *pflag.FlagSet) {
	flags.String("label", "", "item name")
	flags.String("brand", "", "preferred brand")
	flags.String("info", "", "extra notes")
	flags.String("image", "", "image URI")
	flags.Int("amount", 1, "amount to buy each time")
	flags.String("unit", string(model.UnitPieces), "unit (pieces, packets, bags, bottles, cans, cartons, jars, boxes, kilograms, grams, liters, deciliters)")
	flags.String("time-frame", model.TimeFrameWeek.String(), "time frame (week, two-weeks, month)")
	flags.Int("frequency", 1, "times per time frame")
}

// itemFlagNames lists the flags that describe an item.
var itemFlagNames = []string{"label", "brand", "info", "image", "amount", "unit", "time-frame", "frequency"}

func anyItemFlagChanged(flags *pflag.FlagSet) bool {
	for _, name := range itemFlagNames {
		if flags.Changed(name) {
			return true
		}
	}
	return false
}

// applyItemFlags overlays the flags the user set onto req.
func applyItemFlags(flags *pflag.FlagSet, req engine.ItemRequest) (engine.ItemRequest, error) {
	if flags.Changed("label") {
		req.Label, _ = flags.GetString("label")
	}
	if flags.Changed("brand") {
		req.Brand, _ = flags.GetString("brand")
	}
	if flags.Changed("info") {
		req.Info, _ = flags.GetString("info")
	}
	if flags.Changed("image") {
		req.ImageURI, _ = flags.GetString("image")
	}
	if flags.Changed("amount") || req.Amount == 0 {
		req.Amount, _ = flags.GetInt("amount")
	}
	if flags.Changed("frequency") || req.Frequency == 0 {
		req.Frequency, _ = flags.GetInt("frequency")
	}
	if flags.Changed("unit") || req.Unit == "" {
		name, _ := flags.GetString("unit")
		unit, err := model.ParseUnit(name)
		if err != nil {
			return req, common.NewUserError("Unknown unit", err)
		}
		req.Unit = unit
	}
	if flags.Changed("time-frame") || !req.TimeFrame.IsSet() {
		name, _ := flags.GetString("time-frame")
		frame, err := model.ParseTimeFrame(name)
		if err != nil {
			return req, common.NewUserError("Unknown time frame", err)
		}
		req.TimeFrame = frame
	}
	return req, nil
}

func requestFromItem(item *model.FoodItem) engine.ItemRequest {
	return engine.ItemRequest{
		Label:     item.Label,
		Brand:     item.Brand,
		Info:      item.Info,
		ImageURI:  item.ImageURI,
		Amount:    item.Amount,
		Unit:      item.Unit,
		TimeFrame: item.TimeFrame,
		Frequency: item.Frequency,
		Onetime:   item.OnetimeItem,
	}
}

// promptItem runs the interactive item form, canceling cleanly on Ctrl-C.
func promptItem(cmd *cobra.Command, defaults *model.FoodItem, onetime bool) (engine.ItemRequest, error) {
	handler := cli.NewInterruptHandler(cmd.OutOrStdout(), "Item entry")
	ctx := handler.HandleInterrupts(cmd.Context(), "Nothing was saved.")
	defer handler.Stop()

	prompter := cli.NewItemPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	req, err := prompter.PromptItem(ctx, defaults, onetime)
	if err != nil {
		if handler.WasInterrupted() || errors.Is(err, cli.ErrInputCancelled) {
			return req, context.Canceled
		}
		return req, err
	}
	return req, nil
}

// requirementError turns an unmet item requirement into a user message.
func requirementError(err error) error {
	var reqErr *engine.RequirementError
	if errors.As(err, &reqErr) {
		msg := "Item not saved: " + string(reqErr.Requirement)
		if reqErr.Requirement == engine.RequirementGroceryDays {
			msg += " (run: grocer days set <weekday>...)"
		}
		return common.NewUserError(msg, err)
	}
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError("No such item", err)
	}
	return err
}

func itemsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every tracked item",
		RunE:  runItemsList,
	}
	cmd.Flags().String("format", "", "output format (table, json, yaml)")
	return cmd
}

func runItemsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	format, err := outputFormat(cmd, s.cfg.ListFormat)
	if err != nil {
		return err
	}

	items, err := s.catalog.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	return cli.NewExporter(cmd.OutOrStdout(), format, s.cfg.Color).Items(items)
}

func itemsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a food item",
		Long: `Add a food item. Without flags you are asked for each attribute.

Examples:
  grocer items add
  grocer items add --label Milk --amount 2 --unit liters --frequency 3 --time-frame week
  grocer items add --onetime --label "Birthday candles"`,
		RunE: runItemsAdd,
	}
	addItemFlags(cmd.Flags())
	cmd.Flags().Bool("onetime", false, "buy once on the next grocery day")
	return cmd
}

func runItemsAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	onetime, _ := cmd.Flags().GetBool("onetime")

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	var req engine.ItemRequest
	if anyItemFlagChanged(cmd.Flags()) {
		req, err = applyItemFlags(cmd.Flags(), engine.ItemRequest{})
	} else {
		req, err = promptItem(cmd, nil, onetime)
	}
	if err != nil {
		return err
	}
	req.Onetime = onetime

	item, err := s.catalog.Add(ctx, req)
	if err != nil {
		return requirementError(err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s (#%d)", item.Label, item.ID)))
	return err
}

func itemsEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a food item",
		Long: `Edit a food item. Without flags you are asked for each attribute with the
current value as the default. The item's countdown is not changed.`,
		Args: cobra.ExactArgs(1),
		RunE: runItemsEdit,
	}
	addItemFlags(cmd.Flags())
	return cmd
}

func runItemsEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	existing, err := s.catalog.Get(ctx, id)
	if err != nil {
		return requirementError(err)
	}

	var req engine.ItemRequest
	if anyItemFlagChanged(cmd.Flags()) {
		req, err = applyItemFlags(cmd.Flags(), requestFromItem(existing))
	} else {
		req, err = promptItem(cmd, existing, existing.OnetimeItem)
	}
	if err != nil {
		return err
	}

	item, err := s.catalog.Edit(ctx, id, req)
	if err != nil {
		return requirementError(err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated %s (#%d)", item.Label, item.ID)))
	return err
}

func itemsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a food item",
		Args:  cobra.ExactArgs(1),
		RunE:  runItemsDelete,
	}
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func runItemsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	yes, _ := cmd.Flags().GetBool("yes")

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	item, err := s.catalog.Get(ctx, id)
	if err != nil {
		return requirementError(err)
	}

	if !yes {
		prompter := cli.NewItemPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		ok, err := prompter.Confirm(ctx, fmt.Sprintf("Delete %s?", item.Label))
		if err != nil {
			return err
		}
		if !ok {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing deleted."))
			return err
		}
	}

	if err := s.catalog.Delete(ctx, id); err != nil {
		return requirementError(err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted %s", item.Label)))
	return err
}

// outputFormat resolves --format against the configured default.
func outputFormat(cmd *cobra.Command, configured string) (cli.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	if name == "" {
		name = configured
	}
	format, err := cli.ParseFormat(name)
	if err != nil {
		return "", common.NewUserError(err.Error(), err)
	}
	return format, nil
}
