// Package kpi derives period totals and week-over-week comparisons from
// daily sale records. Everything here is pure.
package kpi

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storepulse/backend/internal/models"
)

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// Aggregate sums the records. The average customer value is rounded and is
// zero when there were no visitors.
func Aggregate(records []models.SaleRecord) models.AggregatedPeriod {
	var p models.AggregatedPeriod
	for _, r := range records {
		p.TotalRevenue += r.Revenue
		p.TotalVisitors += r.Visitors
		p.TotalNewCustomers += r.NewCustomers
	}
	p.DaysCount = len(records)
	p.AvgCustomerValue = avgValue(p.TotalRevenue, p.TotalVisitors)
	return p
}

// ChangePercent is the rounded relative change from previous to current.
// A zero baseline reports 100 for any growth and 0 otherwise.
func ChangePercent(current, previous int64) int64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	ratio := decimal.NewFromInt(current - previous).
		Mul(hundred).
		Div(decimal.NewFromInt(previous))
	return roundHalfUp(ratio)
}

func avgValue(revenue, visitors int64) int64 {
	if visitors <= 0 {
		return 0
	}
	return roundHalfUp(decimal.NewFromInt(revenue).Div(decimal.NewFromInt(visitors)))
}

// roundHalfUp rounds ties toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}

type Windows struct {
	ThisWeekStart models.Date
	ThisWeekEnd   models.Date
	LastWeekStart models.Date
	LastWeekEnd   models.Date
}

// WeekWindows returns the current week to date and the full week before
// it. Weeks start on Sunday.
func WeekWindows(ref time.Time) Windows {
	end := models.NewDate(ref)
	start := end.AddDays(-int(end.Weekday()))
	return Windows{
		ThisWeekStart: start,
		ThisWeekEnd:   end,
		LastWeekStart: start.AddDays(-7),
		LastWeekEnd:   start.AddDays(-1),
	}
}

func (w Windows) Period() models.DashboardPeriod {
	return models.DashboardPeriod{
		ThisWeekStart: w.ThisWeekStart,
		ThisWeekEnd:   w.ThisWeekEnd,
		LastWeekStart: w.LastWeekStart,
		LastWeekEnd:   w.LastWeekEnd,
	}
}

func within(d, from, to models.Date) bool {
	return !d.Before(from.Time) && !d.After(to.Time)
}

// Split partitions records into the two windows. Records outside both are
// dropped.
func (w Windows) Split(records []models.SaleRecord) (current, previous []models.SaleRecord) {
	for _, r := range records {
		switch {
		case within(r.Date, w.ThisWeekStart, w.ThisWeekEnd):
			current = append(current, r)
		case within(r.Date, w.LastWeekStart, w.LastWeekEnd):
			previous = append(previous, r)
		}
	}
	return current, previous
}

func delta(current, previous int64) models.MetricDelta {
	return models.MetricDelta{
		Current:       current,
		Previous:      previous,
		ChangePercent: ChangePercent(current, previous),
	}
}

// BuildDashboard compares the week containing ref against the week before.
func BuildDashboard(store models.StoreDescriptor, records []models.SaleRecord, ref time.Time) models.Dashboard {
	w := WeekWindows(ref)
	current, previous := w.Split(records)
	cur := Aggregate(current)
	prev := Aggregate(previous)

	daily := make([]models.DailyPoint, 0, len(current))
	for _, r := range current {
		daily = append(daily, models.DailyPoint{
			Date:         r.Date,
			Revenue:      r.Revenue,
			Visitors:     r.Visitors,
			NewCustomers: r.NewCustomers,
		})
	}
	sort.SliceStable(daily, func(i, j int) bool {
		return daily[i].Date.Before(daily[j].Date.Time)
	})

	return models.Dashboard{
		Store:  store,
		Period: w.Period(),
		Metrics: models.DashboardMetrics{
			Revenue:          delta(cur.TotalRevenue, prev.TotalRevenue),
			Visitors:         delta(cur.TotalVisitors, prev.TotalVisitors),
			AvgCustomerValue: delta(cur.AvgCustomerValue, prev.AvgCustomerValue),
			NewCustomers:     delta(cur.TotalNewCustomers, prev.TotalNewCustomers),
		},
		DailyBreakdown: daily,
	}
}
