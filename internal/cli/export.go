package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/engine"
	"github.com/Veraticus/grocery-manager/internal/model"
)

// Format selects how lists are written.
type Format string

// Output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a user supplied output format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use table, json or yaml): %w", s, common.ErrInvalidConfig)
	}
}

// listDocument is the machine-readable form of an evaluation.
type listDocument struct {
	Date          string           `json:"date" yaml:"date"`
	GroceryDays   []string         `json:"grocery_days" yaml:"grocery_days"`
	Items         []model.FoodItem `json:"items" yaml:"items"`
	DaysUntilNext int              `json:"days_until_next" yaml:"days_until_next"`
	IsGroceryDay  bool             `json:"is_grocery_day" yaml:"is_grocery_day"`
	ClosedCycle   bool             `json:"closed_cycle" yaml:"closed_cycle"`
}

// Exporter writes food items and grocery lists in one format.
type Exporter struct {
	writer io.Writer
	format Format
	color  bool
}

// NewExporter creates an exporter. Color only affects the table format.
func NewExporter(writer io.Writer, format Format, color bool) *Exporter {
	return &Exporter{writer: writer, format: format, color: color}
}

// Items writes the item catalogue.
func (e *Exporter) Items(items []model.FoodItem) error {
	if items == nil {
		items = []model.FoodItem{}
	}
	switch e.format {
	case FormatJSON:
		return e.writeJSON(items)
	case FormatYAML:
		return e.writeYAML(items)
	}

	if len(items) == 0 {
		return e.line(FormatInfo("No food items yet. Add one with: grocer items add"))
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.ID),
			item.Label,
			item.DisplayAmount(),
			schedule(item),
			fmt.Sprintf("%.2f", item.CountdownValue),
			item.Brand,
		})
	}
	return e.table([]string{"ID", "LABEL", "AMOUNT", "SCHEDULE", "COUNTDOWN", "BRAND"}, rows)
}

// Evaluation writes today's grocery list.
func (e *Exporter) Evaluation(eval *engine.Evaluation) error {
	doc := listDocument{
		Date:          eval.Date.Format(time.DateOnly),
		GroceryDays:   weekdayNames(eval.GroceryDays),
		Items:         eval.Items,
		DaysUntilNext: eval.DaysUntilNext,
		IsGroceryDay:  eval.IsGroceryDay,
		ClosedCycle:   eval.ClosedCycle,
	}
	if doc.Items == nil {
		doc.Items = []model.FoodItem{}
	}

	switch e.format {
	case FormatJSON:
		return e.writeJSON(doc)
	case FormatYAML:
		return e.writeYAML(doc)
	}

	if eval.ClosedCycle {
		if err := e.line(FormatSuccess("Closed the previous grocery cycle.")); err != nil {
			return err
		}
	}

	if !eval.IsGroceryDay {
		return e.line(FormatInfo(NextGroceryDayMessage(eval.DaysUntilNext)))
	}

	title := fmt.Sprintf("Grocery list for %s", eval.Date.Format("Monday, 2 Jan"))
	if err := e.line(FormatTitle(title)); err != nil {
		return err
	}
	if len(eval.Items) == 0 {
		return e.line(FormatSuccess("Nothing to buy today."))
	}

	rows := make([][]string, 0, len(eval.Items))
	for _, item := range eval.Items {
		label := item.Label
		if item.OnetimeItem {
			label = OnetimeIcon + " " + label
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.ID),
			label,
			item.DisplayAmount(),
			item.Brand,
			item.Info,
		})
	}
	return e.table([]string{"ID", "ITEM", "AMOUNT", "BRAND", "INFO"}, rows)
}

// NextGroceryDayMessage describes the distance to the next grocery day.
func NextGroceryDayMessage(days int) string {
	switch {
	case days >= engine.NoGroceryDaysSet:
		return "No grocery days are set. Choose some with: grocer days set <weekday>..."
	case days == 0:
		return "Today is a grocery day!"
	case days == 1:
		return "Next grocery day is tomorrow."
	default:
		return fmt.Sprintf("Next grocery day is in %d days.", days)
	}
}

func schedule(item model.FoodItem) string {
	if item.OnetimeItem {
		return "one-time"
	}
	return fmt.Sprintf("%dx per %s", item.Frequency, item.TimeFrame)
}

func weekdayNames(days []time.Weekday) []string {
	names := make([]string, 0, len(days))
	for _, d := range model.SortWeekdays(days) {
		names = append(names, d.String())
	}
	return names
}

func (e *Exporter) table(header []string, rows [][]string) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to format table: %w", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if e.color {
		lines[0] = TableHeaderStyle.Render(lines[0])
	}
	for _, l := range lines {
		if err := e.line(strings.TrimRight(l, " ")); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) line(s string) error {
	if _, err := fmt.Fprintln(e.writer, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (e *Exporter) writeJSON(v any) error {
	enc := json.NewEncoder(e.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func (e *Exporter) writeYAML(v any) error {
	enc := yaml.NewEncoder(e.writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
