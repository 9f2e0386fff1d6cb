// Package form validates user-entered values before they reach the ledger.
// The ledger itself trusts its caller, so every write path goes through here.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/finguard-dev/finguard/internal/categories"
	"github.com/finguard-dev/finguard/internal/model"
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// ExpenseInput is the raw expense form.
type ExpenseInput struct {
	Date        string `form:"date" validate:"required,datetime=2006-01-02"`
	Category    string `form:"category" validate:"required,category"`
	Description string `form:"description" validate:"max=200"`
	Amount      string `form:"amount" validate:"required,positive_amount"`
}

// BudgetInput is the raw budget form.
type BudgetInput struct {
	Amount string `form:"budget" validate:"required,nonnegative_amount"`
}

// BankInput is the raw deposit/withdraw form.
type BankInput struct {
	Date   string `form:"date" validate:"required,datetime=2006-01-02"`
	Amount string `form:"amount" validate:"required,positive_amount"`
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string
	Message string
}

// Errors collects every rejected field of a form.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func (e Errors) Unwrap() error { return ErrInvalidInput }

// Validator checks forms against the configured category set.
type Validator struct {
	validate   *validator.Validate
	categories *categories.Service
}

// New creates a Validator. Category membership is exact and case-sensitive.
func New(cats *categories.Service) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return strings.ToLower(f.Name)
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return cats.Exists(fl.Field().String())
	})
	_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	_ = v.RegisterValidation("nonnegative_amount", validateNonNegativeAmount)

	return &Validator{validate: v, categories: cats}
}

// Expense validates in and converts it to a ledger record.
func (v *Validator) Expense(in ExpenseInput) (model.Expense, error) {
	in.Category = strings.TrimSpace(in.Category)
	in.Amount = strings.TrimSpace(in.Amount)
	if err := v.check(in); err != nil {
		return model.Expense{}, err
	}
	return model.Expense{
		Date:        model.ParseDate(in.Date),
		Category:    in.Category,
		Description: in.Description,
		Amount:      decimal.RequireFromString(in.Amount),
	}, nil
}

// Budget validates in and returns the monthly limit.
func (v *Validator) Budget(in BudgetInput) (decimal.Decimal, error) {
	in.Amount = strings.TrimSpace(in.Amount)
	if err := v.check(in); err != nil {
		return decimal.Zero, err
	}
	return decimal.RequireFromString(in.Amount), nil
}

// Bank validates in and returns the entry date and amount.
func (v *Validator) Bank(in BankInput) (model.Date, decimal.Decimal, error) {
	in.Amount = strings.TrimSpace(in.Amount)
	if err := v.check(in); err != nil {
		return model.Date{}, decimal.Zero, err
	}
	return model.ParseDate(in.Date), decimal.RequireFromString(in.Amount), nil
}

func (v *Validator) check(in any) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: v.message(fe)})
	}
	return out
}

func (v *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s %q must be a date in YYYY-MM-DD format", fe.Field(), fe.Value())
	case "category":
		val := fmt.Sprint(fe.Value())
		if s, ok := v.categories.Suggest(val); ok {
			return fmt.Sprintf("%s %q is not a known category (did you mean %q?)", fe.Field(), val, s)
		}
		return fmt.Sprintf("%s %q is not one of: %s", fe.Field(), val, strings.Join(v.categories.All(), ", "))
	case "positive_amount":
		return fmt.Sprintf("%s must be a number greater than zero", fe.Field())
	case "nonnegative_amount":
		return fmt.Sprintf("%s must be a number zero or greater", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func validatePositiveAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.IsPositive()
}

func validateNonNegativeAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !d.IsNegative()
}
