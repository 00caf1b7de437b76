package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestResolvePeriod_Defaults(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	p, err := ResolvePeriod(nil, nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	if !p.Start.Equal(wantStart) {
		t.Errorf("expected start %s, got %s", wantStart, p.Start)
	}
	if !p.End.Equal(now) {
		t.Errorf("expected end %s, got %s", now, p.End)
	}
	if n := len(MonthsBetween(p)); n != DefaultReportMonths {
		t.Errorf("expected %d months, got %d", DefaultReportMonths, n)
	}
}

func TestResolvePeriod_Inverted(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	start := now
	end := now.AddDate(0, -1, 0)

	if _, err := ResolvePeriod(&start, &end, now); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	// start after the default end
	future := now.AddDate(0, 2, 0)
	if _, err := ResolvePeriod(&future, nil, now); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestMonthPeriod(t *testing.T) {
	p, err := MonthPeriod(2024, time.February)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Start.Day() != 1 || p.End.Day() != 29 {
		t.Errorf("unexpected leap-year February window: %s - %s", p.Start, p.End)
	}

	if _, err := MonthPeriod(2024, 13); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestSumByCategory(t *testing.T) {
	entries := []*Entry{
		{Category: "Rent", Amount: decimal.NewFromInt(500)},
		{Category: "Supplies", Amount: decimal.NewFromInt(50)},
		{Category: "Supplies", Amount: decimal.NewFromInt(75)},
		{Category: "", Amount: decimal.NewFromInt(5)},
	}

	got := SumByCategory(entries)

	if len(got) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(got))
	}
	if got[0].Category != "Rent" || got[1].Category != "Supplies" || got[2].Category != CategoryUncategorized {
		t.Errorf("unexpected ordering: %+v", got)
	}
	if !got[1].Amount.Equal(decimal.NewFromInt(125)) || got[1].Count != 2 {
		t.Errorf("unexpected supplies rollup: %+v", got[1])
	}
}

func TestBucketByMonth(t *testing.T) {
	p := Period{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
	}
	entries := []*Entry{
		{Kind: EntryKindIncome, Amount: decimal.NewFromInt(100), Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{Kind: EntryKindExpense, Amount: decimal.NewFromInt(40), Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
		{Kind: EntryKindIncome, Amount: decimal.NewFromInt(7), Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{Kind: EntryKindIncome, Amount: decimal.NewFromInt(999), Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}

	buckets := BucketByMonth(entries, p)

	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}
	if buckets[0].Month != "2024-01" || !buckets[0].Net.Equal(decimal.NewFromInt(60)) {
		t.Errorf("unexpected January bucket: %+v", buckets[0])
	}
	if !buckets[1].Inflows.IsZero() || !buckets[1].Outflows.IsZero() {
		t.Errorf("expected empty February bucket: %+v", buckets[1])
	}
	if !buckets[2].Inflows.Equal(decimal.NewFromInt(7)) {
		t.Errorf("unexpected March bucket: %+v", buckets[2])
	}
}
