package report

import (
	"strconv"

	"github.com/storepulse/backend/internal/models"
	"github.com/storepulse/backend/internal/prompt"
)

const (
	HeadingSummary  = "Summary"
	HeadingKPI      = "KPI Analysis"
	HeadingIssues   = "Issues"
	HeadingActions  = "Recommended Actions"
	HeadingForecast = "Forecast"
)

type Section struct {
	Heading string
	Items   []string
}

type ForecastBlock struct {
	Revenue   string
	Visitors  string
	Reasoning string
}

// Document is the fixed layout of a rendered report.
type Document struct {
	Title       string
	StoreName   string
	Industry    string
	PeriodLabel string
	Summary     string
	Sections    []Section
	Forecast    ForecastBlock
}

func PeriodLabel(start, end models.Date) string {
	return start.String() + " - " + end.String()
}

// Layout arranges content into a Document. The result depends only on its
// arguments.
func Layout(content *models.ReportContent, store models.StoreDescriptor, periodLabel string) (Document, error) {
	if content == nil {
		return Document{}, ErrEmptyContent
	}
	doc := Document{
		Title:       "Store Report",
		StoreName:   store.Name,
		Industry:    prompt.Label(store.Industry),
		PeriodLabel: periodLabel,
		Summary:     content.Summary,
		Sections: []Section{
			{Heading: HeadingKPI, Items: content.KPIAnalysis},
			{Heading: HeadingIssues, Items: content.Issues},
			{Heading: HeadingActions, Items: content.Actions},
		},
	}
	if f := content.Forecast; f != nil {
		doc.Forecast = ForecastBlock{
			Revenue:   formatNumber(f.Revenue),
			Visitors:  formatNumber(f.Visitors),
			Reasoning: f.Reasoning,
		}
	}
	return doc, nil
}

func formatNumber(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
