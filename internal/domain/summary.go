package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MonthKeyLayout formats month buckets.
const MonthKeyLayout = "2006-01"

// DefaultReportMonths is the width of the default report window, current month included.
const DefaultReportMonths = 12

// Period is an inclusive reporting window.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the inclusive window.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// ResolvePeriod fills in missing bounds. The default window ends at now and starts on the
// first day of the month DefaultReportMonths-1 months earlier.
func ResolvePeriod(start, end *time.Time, now time.Time) (Period, error) {
	if err := ValidateDateRange(start, end); err != nil {
		return Period{}, err
	}

	p := Period{End: now}
	if end != nil {
		p.End = *end
	}

	if start != nil {
		p.Start = *start
	} else {
		p.Start = MonthStart(p.End).AddDate(0, -(DefaultReportMonths - 1), 0)
	}

	if p.Start.After(p.End) {
		return Period{}, ErrInvalidDateRange
	}

	return p, nil
}

// MonthPeriod returns the inclusive window covering one calendar month in UTC.
func MonthPeriod(year int, month time.Month) (Period, error) {
	if year < 1 || month < time.January || month > time.December {
		return Period{}, ErrInvalidPeriod
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: MonthEnd(start)}, nil
}

// MonthStart truncates t to the first instant of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last instant of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// MonthsBetween lists the first instant of every calendar month touched by the window.
func MonthsBetween(p Period) []time.Time {
	var months []time.Time
	for m := MonthStart(p.Start); !m.After(p.End); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// CategoryAmount is a category rollup.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
	Count    int
}

// SumByCategory groups entries by category, largest amount first.
func SumByCategory(entries []*Entry) []CategoryAmount {
	totals := make(map[string]*CategoryAmount)
	for _, e := range entries {
		category := e.Category
		if category == "" {
			category = CategoryUncategorized
		}
		ca, ok := totals[category]
		if !ok {
			ca = &CategoryAmount{Category: category, Amount: decimal.Zero}
			totals[category] = ca
		}
		ca.Amount = ca.Amount.Add(e.Amount)
		ca.Count++
	}

	result := make([]CategoryAmount, 0, len(totals))
	for _, ca := range totals {
		result = append(result, *ca)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Amount.Equal(result[j].Amount) {
			return result[i].Amount.GreaterThan(result[j].Amount)
		}
		return result[i].Category < result[j].Category
	})

	return result
}

// SplitByKind separates expenses from incomes.
func SplitByKind(entries []*Entry) (expenses, incomes []*Entry) {
	for _, e := range entries {
		if e.Kind == EntryKindExpense {
			expenses = append(expenses, e)
		} else {
			incomes = append(incomes, e)
		}
	}
	return expenses, incomes
}

// SumAmounts adds up entry amounts.
func SumAmounts(entries []*Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// MonthlyFlow is one month of inflows and outflows.
type MonthlyFlow struct {
	Month    string
	Start    time.Time
	Inflows  decimal.Decimal
	Outflows decimal.Decimal
	Net      decimal.Decimal
}

// BucketByMonth produces one MonthlyFlow per calendar month in the window, including empty months.
// Incomes count as inflows and expenses as outflows; entries outside the window are ignored.
func BucketByMonth(entries []*Entry, p Period) []MonthlyFlow {
	months := MonthsBetween(p)
	buckets := make([]MonthlyFlow, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		key := m.Format(MonthKeyLayout)
		buckets[i] = MonthlyFlow{
			Month:    key,
			Start:    m,
			Inflows:  decimal.Zero,
			Outflows: decimal.Zero,
			Net:      decimal.Zero,
		}
		index[key] = i
	}

	for _, e := range entries {
		if !p.Contains(e.Date) {
			continue
		}
		i, ok := index[e.Date.In(p.Start.Location()).Format(MonthKeyLayout)]
		if !ok {
			continue
		}
		if e.Kind == EntryKindIncome {
			buckets[i].Inflows = buckets[i].Inflows.Add(e.Amount)
		} else {
			buckets[i].Outflows = buckets[i].Outflows.Add(e.Amount)
		}
	}

	for i := range buckets {
		buckets[i].Net = buckets[i].Inflows.Sub(buckets[i].Outflows)
	}

	return buckets
}
