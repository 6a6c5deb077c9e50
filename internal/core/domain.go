package core

import (
	"errors"
	"strings"
	"time"
)

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

const (
	// IncomeIcon is the fixed glyph used for income rows in the merged feed.
	IncomeIcon = "💵"
	// DefaultExpenseIcon is the fallback for categories missing from the icon table.
	DefaultExpenseIcon = "💰"
)

type (
	Kind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Record is a single monetary event. Income and expense records share the
	// same shape and are distinguished by Kind; they never share an ID space.
	Record struct {
		ID          string
		Kind        Kind
		Seq         int64 // store-assigned, monotonic per store
		Title       string
		Amount      Money
		Category    string
		Description string
		Icon        string // expenses only, derived from Category
		Date        Date
		CreatedAt   time.Time
	}
)

var (
	ErrInvalidKind        = errors.New("invalid record kind")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyTitle         = errors.New("empty title")
	ErrTitleTooLong       = errors.New("title too long (max 100 characters)")
	ErrDescriptionTooLong = errors.New("description too long (max 500 characters)")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrInvalidDate        = errors.New("invalid date")
)

var incomeCategories = map[string]struct{}{
	"Salary":      {},
	"Freelance":   {},
	"Business":    {},
	"Investments": {},
	"Gift":        {},
	"Other":       {},
}

var expenseIcons = map[string]string{
	"Food":          "🍔",
	"Transport":     "🚗",
	"Entertainment": "🎬",
	"Shopping":      "🛍️",
	"Bills":         "📱",
	"Health":        "💊",
	"Education":     "📚",
	"Other":         "💰",
}

func (k Kind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// String implements fmt.Stringer
func (k Kind) String() string {
	return string(k)
}

// ValidCategory reports whether category belongs to the kind's fixed set.
func (k Kind) ValidCategory(category string) bool {
	switch k {
	case KindIncome:
		_, ok := incomeCategories[category]
		return ok
	case KindExpense:
		_, ok := expenseIcons[category]
		return ok
	default:
		return false
	}
}

// IconFor returns the display glyph for an expense category. Categories
// missing from the table fall back to DefaultExpenseIcon.
func IconFor(category string) string {
	if icon, ok := expenseIcons[category]; ok {
		return icon
	}
	return DefaultExpenseIcon
}

// NewDate creates a Date from year, month, day (UTC, no time of day).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a calendar date in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r Record) Validate() error {
	if !r.Kind.IsValid() {
		return ErrInvalidKind
	}
	if len(strings.TrimSpace(r.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(r.Title) > 100 {
		return ErrTitleTooLong
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if !r.Kind.ValidCategory(r.Category) {
		return ErrUnknownCategory
	}
	if len(r.Description) > 500 {
		return ErrDescriptionTooLong
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// IsValidationError reports whether err stems from record validation, as
// opposed to an infrastructure failure.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidKind,
		ErrInvalidAmount,
		ErrEmptyTitle,
		ErrTitleTooLong,
		ErrDescriptionTooLong,
		ErrUnknownCategory,
		ErrInvalidDate,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
