package engine

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/Veraticus/grocery-manager/internal/model"
)

// MaxFrequencyQuotient is the largest quotient an item may be created with.
// Anything larger would need more grocery days than the user has set.
const MaxFrequencyQuotient = 1.0

// Requirement names a condition an item must satisfy before it is stored.
type Requirement string

// Item requirements, checked in this order.
const (
	RequirementGroceryDays Requirement = "no grocery days have been selected"
	RequirementLabel       Requirement = "label must not be empty"
	RequirementAmount      Requirement = "amount must be greater than zero"
	RequirementTimeFrame   Requirement = "a time frame must be chosen"
	RequirementFrequency   Requirement = "frequency must be greater than zero"
	RequirementUnit        Requirement = "unit must be one of the supported units"
	RequirementQuotient    Requirement = "not enough grocery days for this frequency"
)

// RequirementError reports the first unmet requirement.
type RequirementError struct {
	Err         error
	Requirement Requirement
}

func (e *RequirementError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Requirement, e.Err)
	}
	return string(e.Requirement)
}

func (e *RequirementError) Unwrap() error {
	return e.Err
}

// ItemRequest carries user input for a new or edited food item.
type ItemRequest struct {
	Label     string          `validate:"required"`
	Brand     string          `validate:"-"`
	Info      string          `validate:"-"`
	ImageURI  string          `validate:"-"`
	Amount    int             `validate:"gt=0"`
	TimeFrame model.TimeFrame `validate:"timeframe"`
	Frequency int             `validate:"gt=0"`
	Unit      model.Unit      `validate:"unit"`
	Onetime   bool            `validate:"-"`
}

var fieldRequirements = map[string]Requirement{
	"Label":     RequirementLabel,
	"Amount":    RequirementAmount,
	"Unit":      RequirementUnit,
	"TimeFrame": RequirementTimeFrame,
	"Frequency": RequirementFrequency,
}

// RequirementChecker validates item input before it reaches storage.
type RequirementChecker struct {
	validate *validator.Validate
}

// NewRequirementChecker creates a checker with the unit and time frame rules
// registered.
func NewRequirementChecker() *RequirementChecker {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("unit", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.String && model.Unit(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("timeframe", func(fl validator.FieldLevel) bool {
		return model.TimeFrame(fl.Field().Int()).IsSet()
	})
	return &RequirementChecker{validate: v}
}

// Check verifies req against the household's grocery-day count and returns
// the item's frequency quotient.
func (c *RequirementChecker) Check(req ItemRequest, groceryDaysPerWeek int) (float64, error) {
	if groceryDaysPerWeek <= 0 {
		return 0, &RequirementError{Requirement: RequirementGroceryDays, Err: ErrDivisionByZero}
	}

	if err := c.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			if requirement, ok := fieldRequirements[verrs[0].Field()]; ok {
				return 0, &RequirementError{Requirement: requirement}
			}
		}
		return 0, fmt.Errorf("failed to validate item: %w", err)
	}

	quotient, err := ComputeQuotient(req.Frequency, req.TimeFrame.Weight(), groceryDaysPerWeek)
	if err != nil {
		return 0, err
	}
	if quotient > MaxFrequencyQuotient {
		return 0, &RequirementError{
			Requirement: RequirementQuotient,
			Err:         fmt.Errorf("quotient %.2f exceeds %.1f", quotient, MaxFrequencyQuotient),
		}
	}
	return quotient, nil
}
