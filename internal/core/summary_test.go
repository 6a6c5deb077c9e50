package core

import (
	"reflect"
	"testing"
)

func income(seq int64, title string, cents int64, date Date) Record {
	return Record{
		ID:       title,
		Kind:     KindIncome,
		Seq:      seq,
		Title:    title,
		Amount:   Money{Cents: cents},
		Category: "Salary",
		Date:     date,
	}
}

func expense(seq int64, title string, cents int64, category string, date Date) Record {
	return Record{
		ID:       title,
		Kind:     KindExpense,
		Seq:      seq,
		Title:    title,
		Amount:   Money{Cents: cents},
		Category: category,
		Icon:     IconFor(category),
		Date:     date,
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		incomes  []Record
		expenses []Record
		want     Summary
	}{
		{
			name: "empty ledger",
			want: Summary{},
		},
		{
			name: "incomes only",
			incomes: []Record{
				income(1, "Salary", 200000, NewDate(2024, 2, 1)),
				income(2, "Bonus", 50000, NewDate(2024, 2, 15)),
			},
			want: Summary{
				TotalIncome: Money{Cents: 250000},
				Balance:     Money{Cents: 250000},
			},
		},
		{
			name: "negative balance",
			incomes: []Record{
				income(1, "Gift", 10000, NewDate(2024, 2, 1)),
			},
			expenses: []Record{
				expense(2, "Rent", 80000, "Bills", NewDate(2024, 2, 2)),
			},
			want: Summary{
				TotalIncome:  Money{Cents: 10000},
				TotalExpense: Money{Cents: 80000},
				Balance:      Money{Cents: -70000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.incomes, tt.expenses)
			if got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRecentTransactions_Ordering(t *testing.T) {
	// B and C share a date; C was created after B so it must come first.
	incomes := []Record{
		income(1, "A", 10000, NewDate(2024, 1, 5)),
	}
	expenses := []Record{
		expense(2, "B", 4000, "Food", NewDate(2024, 1, 10)),
		expense(3, "C", 1500, "Transport", NewDate(2024, 1, 10)),
	}

	got := RecentTransactions(incomes, expenses, 10)

	titles := make([]string, len(got))
	for i, v := range got {
		titles[i] = v.Title
	}
	want := []string{"C", "B", "A"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("feed order = %v, want %v", titles, want)
	}
}

func TestRecentTransactions_Deterministic(t *testing.T) {
	incomes := []Record{
		income(1, "A", 10000, NewDate(2024, 1, 5)),
		income(4, "D", 2000, NewDate(2024, 1, 10)),
	}
	expenses := []Record{
		expense(2, "B", 4000, "Food", NewDate(2024, 1, 10)),
		expense(3, "C", 1500, "Transport", NewDate(2024, 1, 10)),
	}

	first := RecentTransactions(incomes, expenses, 10)
	second := RecentTransactions(incomes, expenses, 10)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls over the same snapshot differ:\n%+v\n%+v", first, second)
	}
}

func TestRecentTransactions_Limit(t *testing.T) {
	var expenses []Record
	for i := int64(1); i <= 15; i++ {
		expenses = append(expenses, expense(i, "E", 100, "Food", NewDate(2024, 1, int(i))))
	}

	got := RecentTransactions(nil, expenses, 10)
	if len(got) != 10 {
		t.Fatalf("len(feed) = %d, want 10", len(got))
	}
	// Newest first.
	if got[0].Date.String() != "2024-01-15" {
		t.Errorf("feed[0].Date = %s, want 2024-01-15", got[0].Date)
	}
}

func TestRecentTransactions_Icons(t *testing.T) {
	incomes := []Record{
		income(1, "Salary", 200000, NewDate(2024, 2, 1)),
	}
	expenses := []Record{
		expense(2, "Lunch", 1200, "Food", NewDate(2024, 2, 2)),
		{
			ID:       "no-icon",
			Kind:     KindExpense,
			Seq:      3,
			Title:    "Stored without icon",
			Amount:   Money{Cents: 500},
			Category: "Health",
			Date:     NewDate(2024, 2, 3),
		},
	}

	got := RecentTransactions(incomes, expenses, 10)
	if len(got) != 3 {
		t.Fatalf("len(feed) = %d, want 3", len(got))
	}

	byTitle := make(map[string]TransactionView)
	for _, v := range got {
		byTitle[v.Title] = v
	}

	if v := byTitle["Salary"]; v.Icon != IncomeIcon || v.Type != KindIncome {
		t.Errorf("income view = %+v, want income glyph %s", v, IncomeIcon)
	}
	if v := byTitle["Lunch"]; v.Icon != "🍔" {
		t.Errorf("expense view icon = %q, want 🍔", v.Icon)
	}
	if v := byTitle["Stored without icon"]; v.Icon != "💊" {
		t.Errorf("backfilled icon = %q, want 💊", v.Icon)
	}
}

func TestRecentTransactions_Empty(t *testing.T) {
	got := RecentTransactions(nil, nil, 10)
	if len(got) != 0 {
		t.Errorf("len(feed) = %d, want 0", len(got))
	}
}
