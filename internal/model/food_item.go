// Package model defines the household grocery domain types.
package model

import (
	"fmt"
	"time"
)

// FoodItem is a tracked grocery need.
type FoodItem struct {
	CreatedAt      time.Time `json:"-" yaml:"-"`
	UpdatedAt      time.Time `json:"-" yaml:"-"`
	Label          string    `json:"label" yaml:"label"`
	Brand          string    `json:"brand,omitempty" yaml:"brand,omitempty"`
	Info           string    `json:"info,omitempty" yaml:"info,omitempty"`
	ImageURI       string    `json:"image_uri,omitempty" yaml:"image_uri,omitempty"`
	Unit           Unit      `json:"unit" yaml:"unit"`
	ID             int64     `json:"id" yaml:"id"`
	Amount         int       `json:"amount" yaml:"amount"`
	Frequency      int       `json:"frequency" yaml:"frequency"`
	CountdownValue float64   `json:"countdown_value" yaml:"countdown_value"`
	TimeFrame      TimeFrame `json:"time_frame" yaml:"time_frame"`
	OnetimeItem    bool      `json:"onetime_item" yaml:"onetime_item"`
}

// IsPersisted reports whether storage has assigned the item an ID.
func (f FoodItem) IsPersisted() bool {
	return f.ID != 0
}

// DisplayAmount renders the amount with its unit, e.g. "2 packets".
func (f FoodItem) DisplayAmount() string {
	if f.Unit == "" {
		return fmt.Sprintf("%d", f.Amount)
	}
	return fmt.Sprintf("%d %s", f.Amount, f.Unit)
}

// NewOnetimeItem builds a one-time item that shows up on the next grocery day
// and is discarded once that cycle closes.
func NewOnetimeItem(label, brand, info string, amount int, unit Unit) FoodItem {
	return FoodItem{
		Label:          label,
		Brand:          brand,
		Info:           info,
		Amount:         amount,
		Unit:           unit,
		TimeFrame:      TimeFrameWeek,
		Frequency:      1,
		CountdownValue: 1.0,
		OnetimeItem:    true,
	}
}
