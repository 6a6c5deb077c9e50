package core

import (
	"errors"
	"strings"
	"testing"
)

func TestKind_IsValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindIncome, true},
		{KindExpense, true},
		{Kind(""), false},
		{Kind("transfer"), false},
	}

	for _, tt := range tests {
		if got := tt.kind.IsValid(); got != tt.want {
			t.Errorf("Kind(%q).IsValid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestKind_ValidCategory(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		category string
		want     bool
	}{
		{"income salary", KindIncome, "Salary", true},
		{"income gift", KindIncome, "Gift", true},
		{"income other", KindIncome, "Other", true},
		{"income unknown", KindIncome, "Rent", false},
		{"income expense category", KindIncome, "Food", false},
		{"expense food", KindExpense, "Food", true},
		{"expense bills", KindExpense, "Bills", true},
		{"expense other", KindExpense, "Other", true},
		{"expense income category", KindExpense, "Salary", false},
		{"expense unknown", KindExpense, "Groceries", false},
		{"expense case sensitive", KindExpense, "food", false},
		{"invalid kind", Kind("transfer"), "Other", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.ValidCategory(tt.category); got != tt.want {
				t.Errorf("ValidCategory(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestIconFor(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Food", "🍔"},
		{"Transport", "🚗"},
		{"Entertainment", "🎬"},
		{"Shopping", "🛍️"},
		{"Bills", "📱"},
		{"Health", "💊"},
		{"Education", "📚"},
		{"Other", "💰"},
		{"Unknown", DefaultExpenseIcon},
		{"", DefaultExpenseIcon},
	}

	for _, tt := range tests {
		if got := IconFor(tt.category); got != tt.want {
			t.Errorf("IconFor(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid date", "2024-02-01", "2024-02-01", false},
		{"valid with spaces", " 2024-12-31 ", "2024-12-31", false},
		{"empty", "", "", true},
		{"wrong format", "01/02/2024", "", true},
		{"not a date", "yesterday", "", true},
		{"invalid day", "2024-02-30", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func validIncome() Record {
	return Record{
		Kind:     KindIncome,
		Title:    "Salary",
		Amount:   Money{Cents: 200000},
		Category: "Salary",
		Date:     NewDate(2024, 2, 1),
	}
}

func validExpense() Record {
	return Record{
		Kind:     KindExpense,
		Title:    "Groceries",
		Amount:   Money{Cents: 4550},
		Category: "Food",
		Date:     NewDate(2024, 2, 2),
	}
}

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr error
	}{
		{"valid income", func(r *Record) {}, nil},
		{"invalid kind", func(r *Record) { r.Kind = "transfer" }, ErrInvalidKind},
		{"empty title", func(r *Record) { r.Title = "" }, ErrEmptyTitle},
		{"blank title", func(r *Record) { r.Title = "   " }, ErrEmptyTitle},
		{"title too long", func(r *Record) { r.Title = strings.Repeat("a", 101) }, ErrTitleTooLong},
		{"title at limit", func(r *Record) { r.Title = strings.Repeat("a", 100) }, nil},
		{"zero amount", func(r *Record) { r.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(r *Record) { r.Amount = Money{Cents: -500} }, ErrInvalidAmount},
		{"unknown category", func(r *Record) { r.Category = "Lottery" }, ErrUnknownCategory},
		{"cross kind category", func(r *Record) { r.Category = "Food" }, ErrUnknownCategory},
		{"description too long", func(r *Record) { r.Description = strings.Repeat("x", 501) }, ErrDescriptionTooLong},
		{"description at limit", func(r *Record) { r.Description = strings.Repeat("x", 500) }, nil},
		{"zero date", func(r *Record) { r.Date = Date{} }, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validIncome()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !IsValidationError(err) {
				t.Errorf("IsValidationError(%v) = false, want true", err)
			}
		})
	}
}

func TestRecord_Validate_Expense(t *testing.T) {
	r := validExpense()
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	r.Category = "Salary"
	if err := r.Validate(); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Validate() error = %v, want ErrUnknownCategory", err)
	}
}

func TestIsValidationError(t *testing.T) {
	if IsValidationError(nil) {
		t.Error("IsValidationError(nil) = true, want false")
	}
	if IsValidationError(errors.New("disk full")) {
		t.Error("IsValidationError(infrastructure error) = true, want false")
	}
	if !IsValidationError(ErrUnknownCategory) {
		t.Error("IsValidationError(ErrUnknownCategory) = false, want true")
	}
}
