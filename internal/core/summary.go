package core

import "sort"

// Summary holds the derived totals over the current ledger state. It is
// always recomputed from the live record sets, never cached incrementally.
type Summary struct {
	TotalIncome  Money
	TotalExpense Money
	Balance      Money
}

// TransactionView is a read-only projection of a record tagged with its kind,
// used only for the merged feed. Income rows carry the fixed income glyph.
type TransactionView struct {
	Type     Kind
	Title    string
	Amount   Money
	Category string
	Date     Date
	Icon     string
}

// Summarize computes totals and balance from the given record sets.
// The balance may be negative; empty input yields an all-zero summary.
func Summarize(incomes, expenses []Record) Summary {
	var in, out int64
	for _, r := range incomes {
		in += r.Amount.Cents
	}
	for _, r := range expenses {
		out += r.Amount.Cents
	}
	return Summary{
		TotalIncome:  Money{Cents: in},
		TotalExpense: Money{Cents: out},
		Balance:      Money{Cents: in - out},
	}
}

// RecentTransactions merges both record kinds into one feed, ordered by date
// descending with same-date ties broken by creation order descending (Seq),
// truncated to limit. The ordering is deterministic for a given snapshot.
func RecentTransactions(incomes, expenses []Record, limit int) []TransactionView {
	merged := make([]Record, 0, len(incomes)+len(expenses))
	merged = append(merged, incomes...)
	merged = append(merged, expenses...)

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].Date.Equal(merged[j].Date.Time) {
			return merged[j].Date.Time.Before(merged[i].Date.Time)
		}
		return merged[i].Seq > merged[j].Seq
	})

	if limit >= 0 && len(merged) > limit {
		merged = merged[:limit]
	}

	views := make([]TransactionView, len(merged))
	for i, r := range merged {
		views[i] = TransactionView{
			Type:     r.Kind,
			Title:    r.Title,
			Amount:   r.Amount,
			Category: r.Category,
			Date:     r.Date,
			Icon:     r.Icon,
		}
		if r.Kind == KindIncome {
			views[i].Icon = IncomeIcon
		} else if views[i].Icon == "" {
			views[i].Icon = IconFor(r.Category)
		}
	}
	return views
}
