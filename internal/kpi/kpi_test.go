package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storepulse/backend/internal/models"
)

func day(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sale(date string, revenue, visitors, newCustomers int64) models.SaleRecord {
	return models.SaleRecord{StoreID: "s", Date: day(date), Revenue: revenue, Visitors: visitors, NewCustomers: newCustomers}
}

func TestAggregate(t *testing.T) {
	p := Aggregate([]models.SaleRecord{
		sale("2024-01-01", 1000, 10, 1),
		sale("2024-01-02", 2000, 20, 2),
		sale("2024-01-03", 501, 0, 0),
	})
	assert.Equal(t, int64(3501), p.TotalRevenue)
	assert.Equal(t, int64(30), p.TotalVisitors)
	assert.Equal(t, int64(3), p.TotalNewCustomers)
	assert.Equal(t, int64(117), p.AvgCustomerValue)
	assert.Equal(t, 3, p.DaysCount)
}

func TestAggregate_ZeroVisitors(t *testing.T) {
	p := Aggregate([]models.SaleRecord{sale("2024-01-01", 5000, 0, 0)})
	assert.Equal(t, int64(0), p.AvgCustomerValue)

	empty := Aggregate(nil)
	assert.Equal(t, models.AggregatedPeriod{}, empty)
}

func TestChangePercent(t *testing.T) {
	cases := []struct {
		cur, prev, want int64
	}{
		{5, 0, 100},
		{0, 0, 0},
		{8, 10, -20},
		{7000, 5000, 40},
		{10, 10, 0},
		{1, 3, -67},
		{2, 3, -33},
		{3, 2, 50},
		{1, 8, -87},
		{3, 8, -62},
	}
	for _, c := range cases {
		if got := ChangePercent(c.cur, c.prev); got != c.want {
			t.Errorf("ChangePercent(%d, %d) = %d, want %d", c.cur, c.prev, got, c.want)
		}
	}
}

func TestWeekWindows_StartsOnSunday(t *testing.T) {
	// 2024-01-10 is a Wednesday.
	w := WeekWindows(time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, "2024-01-07", w.ThisWeekStart.String())
	assert.Equal(t, "2024-01-10", w.ThisWeekEnd.String())
	assert.Equal(t, "2023-12-31", w.LastWeekStart.String())
	assert.Equal(t, "2024-01-06", w.LastWeekEnd.String())

	sunday := WeekWindows(time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-01-07", sunday.ThisWeekStart.String())
	assert.Equal(t, "2024-01-07", sunday.ThisWeekEnd.String())
}

func TestBuildDashboard(t *testing.T) {
	store := models.StoreDescriptor{ID: "s", Name: "Cafe"}
	records := []models.SaleRecord{
		sale("2024-01-09", 4000, 40, 4),
		sale("2024-01-08", 3000, 30, 1),
		sale("2024-01-02", 5000, 50, 5),
		sale("2023-12-20", 9999, 99, 9),
	}
	d := BuildDashboard(store, records, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "Cafe", d.Store.Name)
	assert.Equal(t, models.MetricDelta{Current: 7000, Previous: 5000, ChangePercent: 40}, d.Metrics.Revenue)
	assert.Equal(t, models.MetricDelta{Current: 70, Previous: 50, ChangePercent: 40}, d.Metrics.Visitors)
	assert.Equal(t, models.MetricDelta{Current: 100, Previous: 100, ChangePercent: 0}, d.Metrics.AvgCustomerValue)
	assert.Equal(t, models.MetricDelta{Current: 5, Previous: 5, ChangePercent: 0}, d.Metrics.NewCustomers)

	require.Len(t, d.DailyBreakdown, 2)
	assert.Equal(t, "2024-01-08", d.DailyBreakdown[0].Date.String())
	assert.Equal(t, "2024-01-09", d.DailyBreakdown[1].Date.String())
	assert.Equal(t, "2023-12-31", d.Period.LastWeekStart.String())
}

func TestBuildDashboard_NoPreviousWeek(t *testing.T) {
	d := BuildDashboard(models.StoreDescriptor{}, []models.SaleRecord{
		sale("2024-01-08", 100, 0, 0),
	}, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, int64(100), d.Metrics.Revenue.ChangePercent)
	assert.Equal(t, int64(0), d.Metrics.Visitors.ChangePercent)
	assert.Equal(t, int64(0), d.Metrics.AvgCustomerValue.Current)
}
