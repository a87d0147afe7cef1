package models

import "time"

type StoreDescriptor struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"`
	CreatedAt time.Time `json:"created_at"`
}

type SaleRecord struct {
	StoreID      string    `json:"store_id"`
	Date         Date      `json:"date"`
	Revenue      int64     `json:"revenue"`
	Visitors     int64     `json:"visitors"`
	NewCustomers int64     `json:"new_customers"`
	Notes        *string   `json:"notes"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

type FeedbackSnippet struct {
	StoreID     string    `json:"store_id"`
	Rating      *float64  `json:"rating"`
	Text        *string   `json:"text"`
	CollectedAt time.Time `json:"collected_at"`
}

type AggregatedPeriod struct {
	TotalRevenue      int64 `json:"total_revenue"`
	TotalVisitors     int64 `json:"total_visitors"`
	TotalNewCustomers int64 `json:"total_new_customers"`
	AvgCustomerValue  int64 `json:"avg_customer_value"`
	DaysCount         int   `json:"days_count"`
}

type Forecast struct {
	Revenue   *float64 `json:"revenue" validate:"required"`
	Visitors  *float64 `json:"visitors" validate:"required"`
	Reasoning string   `json:"reasoning" validate:"required"`
}

// ReportContent is the structured payload returned by the generation provider.
type ReportContent struct {
	Summary     string    `json:"summary" validate:"required"`
	KPIAnalysis []string  `json:"kpi_analysis" validate:"len=3,dive,required"`
	Issues      []string  `json:"issues" validate:"len=3,dive,required"`
	Actions     []string  `json:"actions" validate:"len=5,dive,required"`
	Forecast    *Forecast `json:"forecast" validate:"required"`
}

type Report struct {
	ID          string         `json:"id"`
	StoreID     string         `json:"store_id"`
	PeriodStart Date           `json:"period_start"`
	PeriodEnd   Date           `json:"period_end"`
	Content     *ReportContent `json:"content"`
	PDFPath     *string        `json:"pdf_path,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type ReportSummary struct {
	ID          string    `json:"id"`
	PeriodStart Date      `json:"period_start"`
	PeriodEnd   Date      `json:"period_end"`
	CreatedAt   time.Time `json:"created_at"`
}

type MetricDelta struct {
	Current       int64 `json:"current"`
	Previous      int64 `json:"previous"`
	ChangePercent int64 `json:"change_percent"`
}

type DailyPoint struct {
	Date         Date  `json:"date"`
	Revenue      int64 `json:"revenue"`
	Visitors     int64 `json:"visitors"`
	NewCustomers int64 `json:"new_customers"`
}

type DashboardPeriod struct {
	ThisWeekStart Date `json:"this_week_start"`
	ThisWeekEnd   Date `json:"this_week_end"`
	LastWeekStart Date `json:"last_week_start"`
	LastWeekEnd   Date `json:"last_week_end"`
}

type DashboardMetrics struct {
	Revenue          MetricDelta `json:"revenue"`
	Visitors         MetricDelta `json:"visitors"`
	AvgCustomerValue MetricDelta `json:"avg_customer_value"`
	NewCustomers     MetricDelta `json:"new_customers"`
}

type Dashboard struct {
	Store          StoreDescriptor  `json:"store"`
	Period         DashboardPeriod  `json:"period"`
	Metrics        DashboardMetrics `json:"metrics"`
	DailyBreakdown []DailyPoint     `json:"daily_breakdown"`
}
