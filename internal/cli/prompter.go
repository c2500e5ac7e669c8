package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/grocery-manager/internal/engine"
	"github.com/Veraticus/grocery-manager/internal/model"
)

// ErrInputTerminated is returned when input ends before a prompt is answered.
var ErrInputTerminated = errors.New("input terminated")

// ItemPrompter collects food item attributes interactively.
type ItemPrompter struct {
	writer io.Writer
	reader *lineReader
}

// NewItemPrompter creates a prompter with the given reader and writer.
func NewItemPrompter(reader io.Reader, writer io.Writer) *ItemPrompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &ItemPrompter{
		reader: newLineReader(reader),
		writer: writer,
	}
}

// PromptItem asks for every attribute of a food item. Values from defaults
// are offered and kept when the answer is left empty. One-time items skip
// the scheduling questions.
func (p *ItemPrompter) PromptItem(ctx context.Context, defaults *model.FoodItem, onetime bool) (engine.ItemRequest, error) {
	if defaults == nil {
		defaults = &model.FoodItem{TimeFrame: model.TimeFrameNull}
	}
	req := engine.ItemRequest{Onetime: onetime}

	title := "New food item"
	if defaults.IsPersisted() {
		title = fmt.Sprintf("Editing %s", defaults.Label)
	}
	if _, err := fmt.Fprintln(p.writer, FormatTitle(title)); err != nil {
		return req, fmt.Errorf("failed to write title: %w", err)
	}

	var err error
	if req.Label, err = p.promptText(ctx, "Label", defaults.Label, true); err != nil {
		return req, err
	}
	if req.Brand, err = p.promptText(ctx, "Brand", defaults.Brand, false); err != nil {
		return req, err
	}
	if req.Info, err = p.promptText(ctx, "Info", defaults.Info, false); err != nil {
		return req, err
	}
	req.ImageURI = defaults.ImageURI

	if req.Amount, err = p.promptPositive(ctx, "Amount", defaults.Amount); err != nil {
		return req, err
	}

	defaultUnit := string(defaults.Unit)
	if defaultUnit == "" {
		defaultUnit = string(model.UnitPieces)
	}
	unit, err := p.promptChoice(ctx, "Unit", model.UnitNames(), defaultUnit)
	if err != nil {
		return req, err
	}
	req.Unit = model.Unit(unit)

	if onetime {
		req.TimeFrame = model.TimeFrameWeek
		req.Frequency = 1
		return req, nil
	}

	frames := []string{
		model.TimeFrameWeek.String(),
		model.TimeFrameTwoWeeks.String(),
		model.TimeFrameMonth.String(),
	}
	defaultFrame := ""
	if defaults.TimeFrame.IsSet() {
		defaultFrame = defaults.TimeFrame.String()
	}
	frame, err := p.promptChoice(ctx, "Time frame", frames, defaultFrame)
	if err != nil {
		return req, err
	}
	if req.TimeFrame, err = model.ParseTimeFrame(frame); err != nil {
		return req, err
	}

	if req.Frequency, err = p.promptPositive(ctx, fmt.Sprintf("Times per %s", frame), defaults.Frequency); err != nil {
		return req, err
	}
	return req, nil
}

// Confirm asks a yes/no question. Anything but yes counts as no.
func (p *ItemPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.promptChoice(ctx, question+" [y/N]", []string{"y", "yes", "n", "no"}, "n")
	if err != nil {
		return false, err
	}
	return answer == "y" || answer == "yes", nil
}

func (p *ItemPrompter) readLine(ctx context.Context) (string, error) {
	return p.reader.readLine(ctx)
}

func (p *ItemPrompter) writePrompt(prompt, current string) error {
	text := FormatPrompt(prompt)
	if current != "" {
		text = FormatPrompt(fmt.Sprintf("%s [%s]", prompt, current))
	}
	if _, err := fmt.Fprint(p.writer, text); err != nil {
		return fmt.Errorf("failed to write prompt: %w", err)
	}
	return nil
}

func (p *ItemPrompter) invalid(message string) {
	if _, err := fmt.Fprintln(p.writer, FormatError(message)); err != nil {
		slog.Warn("Failed to write error message", "error", err)
	}
}

func (p *ItemPrompter) promptText(ctx context.Context, prompt, current string, required bool) (string, error) {
	for {
		if err := p.writePrompt(prompt, current); err != nil {
			return "", err
		}
		input, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if input == "" {
			input = current
		}
		if input == "" && required {
			p.invalid(prompt + " is required.")
			continue
		}
		return input, nil
	}
}

func (p *ItemPrompter) promptPositive(ctx context.Context, prompt string, current int) (int, error) {
	shown := ""
	if current > 0 {
		shown = strconv.Itoa(current)
	}
	for {
		if err := p.writePrompt(prompt, shown); err != nil {
			return 0, err
		}
		input, err := p.readLine(ctx)
		if err != nil {
			return 0, err
		}
		if input == "" && current > 0 {
			return current, nil
		}
		n, err := strconv.Atoi(input)
		if err != nil || n <= 0 {
			p.invalid("Please enter a whole number greater than zero.")
			continue
		}
		return n, nil
	}
}

func (p *ItemPrompter) promptChoice(ctx context.Context, prompt string, validChoices []string, current string) (string, error) {
	hint := SubtleStyle.Render("(" + strings.Join(validChoices, ", ") + ")")
	for {
		if _, err := fmt.Fprintln(p.writer, hint); err != nil {
			return "", fmt.Errorf("failed to write choices: %w", err)
		}
		if err := p.writePrompt(prompt, current); err != nil {
			return "", err
		}
		input, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(input)
		if choice == "" {
			choice = current
		}
		if normalized, ok := matchChoice(choice, validChoices); ok {
			return normalized, nil
		}

		p.invalid("Invalid choice. Please try again.")
	}
}

// matchChoice accepts an exact choice or a unit/time frame alias.
func matchChoice(choice string, validChoices []string) (string, bool) {
	if choice == "" {
		return "", false
	}
	candidates := []string{choice}
	if unit, err := model.ParseUnit(choice); err == nil {
		candidates = append(candidates, string(unit))
	}
	if frame, err := model.ParseTimeFrame(choice); err == nil {
		candidates = append(candidates, frame.String())
	}
	for _, candidate := range candidates {
		for _, valid := range validChoices {
			if candidate == valid {
				return valid, true
			}
		}
	}
	return "", false
}
