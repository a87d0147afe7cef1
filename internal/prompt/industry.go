package prompt

type Industry int

const (
	IndustryOther Industry = iota
	IndustryRestaurant
	IndustryClinic
	IndustrySalon
	IndustryRealEstate
)

var industryTags = map[string]Industry{
	"restaurant":  IndustryRestaurant,
	"clinic":      IndustryClinic,
	"salon":       IndustrySalon,
	"real_estate": IndustryRealEstate,
}

var industryLabels = map[Industry]string{
	IndustryRestaurant: "Restaurant",
	IndustryClinic:     "Clinic",
	IndustrySalon:      "Hair Salon",
	IndustryRealEstate: "Real Estate",
}

var industryGuidance = map[Industry][]string{
	IndustryRestaurant: {
		"Table turnover and visitor trends by time of day",
		"Menu improvement proposals",
		"Measures to raise the repeat-visit rate",
		"Seasonal factors",
	},
	IndustryClinic: {
		"Ratio of first visits to return visits",
		"Optimization of booking slots",
		"Measures to improve patient satisfaction",
		"Efficiency of consultation hours",
	},
	IndustrySalon: {
		"Repeat rate and revisit cycle",
		"Raising the average ticket through menu suggestions",
		"How fully the booking calendar is filled",
		"Staff utilization",
	},
	IndustryRealEstate: {
		"Conversion from viewings to signed contracts",
		"Analysis of inquiry channels",
		"Trends by property type",
		"Comparison with competing listings",
	},
}

// ParseIndustry maps a stored industry tag to its variant. Unknown tags map
// to IndustryOther.
func ParseIndustry(tag string) Industry {
	if ind, ok := industryTags[tag]; ok {
		return ind
	}
	return IndustryOther
}

// Label returns the display name for tag, or the tag itself when it is not
// a known industry.
func Label(tag string) string {
	if l, ok := industryLabels[ParseIndustry(tag)]; ok {
		return l
	}
	return tag
}

// Guidance returns the industry checklist block, empty for IndustryOther.
func (i Industry) Guidance() string {
	items, ok := industryGuidance[i]
	if !ok {
		return ""
	}
	out := "[" + industryLabels[i] + " focus points]\n"
	for _, item := range items {
		out += "- " + item + "\n"
	}
	return out
}
