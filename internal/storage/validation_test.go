package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/grocery-manager/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{name: "valid string", str: "test", paramName: "param", wantErr: false},
		{name: "empty string", str: "", paramName: "param", wantErr: true},
		{name: "whitespace only", str: "   ", paramName: "param", wantErr: true},
		{name: "string with spaces", str: "  test  ", paramName: "param", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.paramName) {
				t.Errorf("validateString() error should contain param name %s, got %v", tt.paramName, err)
			}
		})
	}
}

func TestValidateFoodItem(t *testing.T) {
	valid := func() *model.FoodItem {
		return &model.FoodItem{
			Label:     "Cereal",
			Amount:    1,
			Unit:      model.UnitBoxes,
			TimeFrame: model.TimeFrameMonth,
			Frequency: 2,
		}
	}

	tests := []struct {
		modify  func(*model.FoodItem)
		wantErr error
		name    string
		errMsg  string
	}{
		{name: "valid item", modify: func(*model.FoodItem) {}},
		{name: "zero amount allowed", modify: func(i *model.FoodItem) { i.Amount = 0 }},
		{name: "missing label", modify: func(i *model.FoodItem) { i.Label = " " }, wantErr: ErrInvalidFoodItem, errMsg: "missing label"},
		{name: "negative amount", modify: func(i *model.FoodItem) { i.Amount = -1 }, wantErr: ErrInvalidFoodItem, errMsg: "negative amount"},
		{name: "unknown unit", modify: func(i *model.FoodItem) { i.Unit = "crates" }, wantErr: ErrInvalidFoodItem, errMsg: "unknown unit"},
		{name: "null time frame", modify: func(i *model.FoodItem) { i.TimeFrame = model.TimeFrameNull }, wantErr: ErrInvalidFoodItem, errMsg: "time frame"},
		{name: "zero frequency", modify: func(i *model.FoodItem) { i.Frequency = 0 }, wantErr: ErrInvalidFoodItem, errMsg: "frequency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid()
			tt.modify(item)
			err := validateFoodItem(item)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateFoodItem() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateFoodItem() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("validateFoodItem() error = %v, want message containing %q", err, tt.errMsg)
			}
		})
	}

	if err := validateFoodItem(nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("validateFoodItem(nil) error = %v, want ErrNilParameter", err)
	}
}

func TestValidateIDAndWeekdays(t *testing.T) {
	if err := validateID(0); !errors.Is(err, ErrInvalidID) {
		t.Errorf("validateID(0) error = %v", err)
	}
	if err := validateID(5); err != nil {
		t.Errorf("validateID(5) error = %v", err)
	}
	if err := validateWeekdays([]time.Weekday{time.Sunday, time.Saturday}); err != nil {
		t.Errorf("validateWeekdays() error = %v", err)
	}
	if err := validateWeekdays([]time.Weekday{-1}); !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("validateWeekdays(-1) error = %v", err)
	}
}
