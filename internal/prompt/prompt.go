// Package prompt builds the analysis request sent to the report generation
// provider. It does no I/O.
package prompt

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/storepulse/backend/internal/models"
)

const (
	DefaultLanguage = "English"
	MaxFeedback     = 5
	MaxFeedbackText = 200
)

// SchemaHint is the response contract embedded in every request.
const SchemaHint = `{
  "summary": "overall assessment of the period (2-3 sentences)",
  "kpi_analysis": [
    "KPI insight 1",
    "KPI insight 2",
    "KPI insight 3"
  ],
  "issues": [
    "issue that needs improvement 1",
    "issue that needs improvement 2",
    "issue that needs improvement 3"
  ],
  "actions": [
    "concrete action for next week 1",
    "concrete action for next week 2",
    "concrete action for next week 3",
    "concrete action for next week 4",
    "concrete action for next week 5"
  ],
  "forecast": {
    "revenue": <projected revenue for the next period, number>,
    "visitors": <projected visitors for the next period, number>,
    "reasoning": "basis for the forecast (1 sentence)"
  }
}`

type Input struct {
	Store       models.StoreDescriptor
	Period      models.AggregatedPeriod
	PeriodStart models.Date
	PeriodEnd   models.Date
	Daily       []models.SaleRecord
	Feedback    []models.FeedbackSnippet
	Language    string
}

type Prompt struct {
	System string
	User   string
	Schema string
}

var numbers = message.NewPrinter(language.English)

func num(n int64) string {
	return numbers.Sprintf("%d", n)
}

// Compose renders in into a system and user message pair.
func Compose(in Input) Prompt {
	lang := strings.TrimSpace(in.Language)
	if lang == "" {
		lang = DefaultLanguage
	}
	industry := ParseIndustry(in.Store.Industry)
	label := Label(in.Store.Industry)

	var b strings.Builder
	b.WriteString("You are a management consultant for a " + label + " business.\n")
	b.WriteString("Analyze the data below and write a management report.\n\n")

	b.WriteString("[Store]\n")
	b.WriteString("Name: " + in.Store.Name + "\n")
	b.WriteString("Industry: " + label + "\n\n")

	b.WriteString("[Results " + in.PeriodStart.String() + " to " + in.PeriodEnd.String() + "]\n")
	b.WriteString("Total revenue: " + num(in.Period.TotalRevenue) + "\n")
	b.WriteString("Visitors: " + num(in.Period.TotalVisitors) + "\n")
	b.WriteString("Average spend per customer: " + num(in.Period.AvgCustomerValue) + "\n")
	b.WriteString("New customers: " + num(in.Period.TotalNewCustomers) + "\n")
	b.WriteString("Days with data: " + strconv.Itoa(in.Period.DaysCount) + "\n\n")

	b.WriteString("[Daily data]\n")
	for _, s := range chronological(in.Daily) {
		b.WriteString(s.Date.String() + ": revenue " + num(s.Revenue) + ", visitors " + num(s.Visitors) + "\n")
	}
	b.WriteString("\n")

	if fb := feedbackLines(in.Feedback); len(fb) > 0 {
		b.WriteString("[Recent reviews]\n")
		for _, line := range fb {
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Respond with JSON in exactly this format:\n")
	b.WriteString(SchemaHint + "\n")

	if g := industry.Guidance(); g != "" {
		b.WriteString("\n" + g)
	}

	return Prompt{
		System: "You are a business analyst specializing in small business management. " +
			"Provide actionable insights in " + lang + ". Respond with a single JSON object and nothing else.",
		User:   b.String(),
		Schema: SchemaHint,
	}
}

func chronological(records []models.SaleRecord) []models.SaleRecord {
	out := append([]models.SaleRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date.Time)
	})
	return out
}

func feedbackLines(items []models.FeedbackSnippet) []string {
	if len(items) > MaxFeedback {
		items = items[:MaxFeedback]
	}
	lines := make([]string, 0, len(items))
	for _, f := range items {
		rating := "-"
		if f.Rating != nil {
			rating = strconv.FormatFloat(*f.Rating, 'f', -1, 64)
		}
		text := ""
		if f.Text != nil {
			text = truncate(strings.TrimSpace(*f.Text), MaxFeedbackText)
		}
		lines = append(lines, "★"+rating+": "+text)
	}
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
