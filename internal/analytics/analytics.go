// Package analytics computes display-ready views from a transaction
// collection. Every function is a pure transformation over its inputs:
// no I/O, no ambient clock, safe for concurrent use.
package analytics

import (
	"sort"
	"time"

	"github.com/lumina-finance/lumina-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TrendWindowDays is the length of the rolling daily-trend window
const TrendWindowDays = 30

const dateKeyLayout = "2006-01-02"

// Totals contains the running totals for a collection
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// TrendPoint is one day of aggregated cash flow. Date is the calendar
// date key in YYYY-MM-DD form.
type TrendPoint struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryTotal is the summed expense amount for one category
type CategoryTotal struct {
	Category domain.Category `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals sums income and expense over the whole collection.
// An empty collection yields all-zero totals.
func ComputeTotals(transactions []*domain.Transaction) Totals {
	totals := Totals{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	for _, t := range transactions {
		switch t.Type {
		case domain.TransactionTypeIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case domain.TransactionTypeExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	totals.Balance = totals.Income.Sub(totals.Expense)
	return totals
}

// DailyTrend groups the trailing 30 days of activity by calendar date,
// summing income and expense separately per day. The lower window bound is
// inclusive (a record dated exactly now-30d is retained) and nothing after
// now can appear. Days without transactions produce no point. Points are
// sorted ascending by date key.
func DailyTrend(transactions []*domain.Transaction, now time.Time) []TrendPoint {
	cutoff := now.AddDate(0, 0, -TrendWindowDays)

	grouped := make(map[string]*TrendPoint)
	for _, t := range transactions {
		if t.Date.Before(cutoff) || t.Date.After(now) {
			continue
		}
		key := t.Date.UTC().Format(dateKeyLayout)
		point, ok := grouped[key]
		if !ok {
			point = &TrendPoint{
				Date:    key,
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			}
			grouped[key] = point
		}
		if t.Type == domain.TransactionTypeIncome {
			point.Income = point.Income.Add(t.Amount)
		} else {
			point.Expense = point.Expense.Add(t.Amount)
		}
	}

	points := make([]TrendPoint, 0, len(grouped))
	for _, point := range grouped {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

// CategoryBreakdown sums expense amounts per category, descending by total.
// Categories without expenses are never synthesized; ties keep their
// first-appearance order.
func CategoryBreakdown(transactions []*domain.Transaction) []CategoryTotal {
	sums := make(map[domain.Category]decimal.Decimal)
	var order []domain.Category
	for _, t := range transactions {
		if t.Type != domain.TransactionTypeExpense {
			continue
		}
		if _, ok := sums[t.Category]; !ok {
			order = append(order, t.Category)
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}

	breakdown := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		breakdown = append(breakdown, CategoryTotal{Category: category, Total: sums[category]})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Total.GreaterThan(breakdown[j].Total)
	})
	return breakdown
}

// PeriodFilter restricts transactions to today, the current month, the
// current year, or nothing.
type PeriodFilter string

const (
	PeriodAll   PeriodFilter = "ALL"
	PeriodDay   PeriodFilter = "DAY"
	PeriodMonth PeriodFilter = "MONTH"
	PeriodYear  PeriodFilter = "YEAR"
)

func (p PeriodFilter) Valid() bool {
	switch p {
	case PeriodAll, PeriodDay, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// TypeFilter is ALL or one of the transaction types
type TypeFilter string

const TypeAll TypeFilter = "ALL"

func (f TypeFilter) Valid() bool {
	return f == TypeAll || domain.TransactionType(f).Valid()
}

// CategoryFilter is ALL or one closed category value
type CategoryFilter string

const CategoryAll CategoryFilter = "ALL"

func (f CategoryFilter) Valid() bool {
	return f == CategoryAll || domain.Category(f).Valid()
}

// Filter returns the records satisfying all three predicates, sorted by
// date descending. Applying the same filter twice yields the same result.
func Filter(transactions []*domain.Transaction, period PeriodFilter, typeFilter TypeFilter, categoryFilter CategoryFilter, now time.Time) []*domain.Transaction {
	nowUTC := now.UTC()

	filtered := make([]*domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if typeFilter != TypeAll && t.Type != domain.TransactionType(typeFilter) {
			continue
		}
		if categoryFilter != CategoryAll && t.Category != domain.Category(categoryFilter) {
			continue
		}
		if !matchesPeriod(t.Date.UTC(), nowUTC, period) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})
	return filtered
}

func matchesPeriod(date, now time.Time, period PeriodFilter) bool {
	switch period {
	case PeriodDay:
		y1, m1, d1 := date.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case PeriodMonth:
		return date.Year() == now.Year() && date.Month() == now.Month()
	case PeriodYear:
		return date.Year() == now.Year()
	default:
		return true
	}
}
