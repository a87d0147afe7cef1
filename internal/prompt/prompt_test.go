package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storepulse/backend/internal/models"
)

func ptr[T any](v T) *T { return &v }

func date(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixture() Input {
	return Input{
		Store: models.StoreDescriptor{ID: "s1", Name: "Blue Door", Industry: "restaurant"},
		Period: models.AggregatedPeriod{
			TotalRevenue:      123456,
			TotalVisitors:     1200,
			TotalNewCustomers: 30,
			AvgCustomerValue:  103,
			DaysCount:         2,
		},
		PeriodStart: date("2024-01-01"),
		PeriodEnd:   date("2024-01-08"),
		Daily: []models.SaleRecord{
			{Date: date("2024-01-02"), Revenue: 60000, Visitors: 500},
			{Date: date("2024-01-01"), Revenue: 63456, Visitors: 700},
		},
		Feedback: []models.FeedbackSnippet{
			{Rating: ptr(4.5), Text: ptr("Great coffee")},
			{Text: ptr("  no rating  ")},
		},
	}
}

func TestCompose_Snapshot(t *testing.T) {
	p := Compose(fixture())

	want := "You are a management consultant for a Restaurant business.\n" +
		"Analyze the data below and write a management report.\n\n" +
		"[Store]\n" +
		"Name: Blue Door\n" +
		"Industry: Restaurant\n\n" +
		"[Results 2024-01-01 to 2024-01-08]\n" +
		"Total revenue: 123,456\n" +
		"Visitors: 1,200\n" +
		"Average spend per customer: 103\n" +
		"New customers: 30\n" +
		"Days with data: 2\n\n" +
		"[Daily data]\n" +
		"2024-01-01: revenue 63,456, visitors 700\n" +
		"2024-01-02: revenue 60,000, visitors 500\n\n" +
		"[Recent reviews]\n" +
		"★4.5: Great coffee\n" +
		"★-: no rating\n\n" +
		"Respond with JSON in exactly this format:\n" +
		SchemaHint + "\n" +
		"\n[Restaurant focus points]\n" +
		"- Table turnover and visitor trends by time of day\n" +
		"- Menu improvement proposals\n" +
		"- Measures to raise the repeat-visit rate\n" +
		"- Seasonal factors\n"

	assert.Equal(t, want, p.User)
	assert.Equal(t, SchemaHint, p.Schema)
	assert.Contains(t, p.System, "insights in English")
}

func TestCompose_LanguageOverride(t *testing.T) {
	in := fixture()
	in.Language = "Japanese"
	assert.Contains(t, Compose(in).System, "insights in Japanese")
}

func TestCompose_UnknownIndustry(t *testing.T) {
	in := fixture()
	in.Store.Industry = "bakery"
	p := Compose(in)
	assert.Contains(t, p.User, "Industry: bakery\n")
	assert.NotContains(t, p.User, "focus points")
	assert.True(t, strings.HasSuffix(p.User, SchemaHint+"\n"))
}

func TestCompose_FeedbackLimits(t *testing.T) {
	in := fixture()
	in.Feedback = nil
	for i := 0; i < 8; i++ {
		in.Feedback = append(in.Feedback, models.FeedbackSnippet{Rating: ptr(5.0), Text: ptr(strings.Repeat("あ", 300))})
	}
	p := Compose(in)
	assert.Equal(t, 5, strings.Count(p.User, "★5: "))
	assert.Contains(t, p.User, "★5: "+strings.Repeat("あ", 200)+"\n")
	assert.NotContains(t, p.User, strings.Repeat("あ", 201))
}

func TestCompose_NoFeedbackSection(t *testing.T) {
	in := fixture()
	in.Feedback = nil
	assert.NotContains(t, Compose(in).User, "[Recent reviews]")
}

func TestIndustry(t *testing.T) {
	cases := []struct {
		tag   string
		want  Industry
		label string
	}{
		{"restaurant", IndustryRestaurant, "Restaurant"},
		{"clinic", IndustryClinic, "Clinic"},
		{"salon", IndustrySalon, "Hair Salon"},
		{"real_estate", IndustryRealEstate, "Real Estate"},
		{"florist", IndustryOther, "florist"},
		{"", IndustryOther, ""},
	}
	for _, c := range cases {
		if got := ParseIndustry(c.tag); got != c.want {
			t.Fatalf("ParseIndustry(%q) = %v, want %v", c.tag, got, c.want)
		}
		if got := Label(c.tag); got != c.label {
			t.Fatalf("Label(%q) = %q, want %q", c.tag, got, c.label)
		}
	}
	assert.Empty(t, IndustryOther.Guidance())
	assert.Contains(t, IndustryRealEstate.Guidance(), "viewings to signed contracts")
	assert.Contains(t, IndustryClinic.Guidance(), "first visits to return visits")
	assert.Contains(t, IndustrySalon.Guidance(), "Staff utilization")
}
