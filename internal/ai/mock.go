package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/storepulse/backend/internal/prompt"
	"github.com/storepulse/backend/internal/utils"
)

// MockProvider returns schema-valid content derived from a hash of the
// prompt, so equal prompts always give equal reports. No network.
type MockProvider struct {
	Model string
}

func (m MockProvider) Name() string { return ProviderMock }

func (m MockProvider) Generate(ctx context.Context, p prompt.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h := utils.Fingerprint(p.System, p.User)

	focus := []string{"weekday lunch traffic", "weekend demand", "average ticket size", "first-time visitors"}
	levers := []string{"a limited-time set menu", "a loyalty stamp card", "review requests at checkout", "an SNS campaign", "targeted staff scheduling", "a referral discount"}
	pick := func(list []string, salt uint64) string {
		return list[int((h/salt)%uint64(len(list)))]
	}

	revenue := float64(100000 + h%400000)
	visitors := float64(200 + (h/7)%800)

	out := map[string]any{
		"summary": fmt.Sprintf("Performance was stable this period; %s stood out.", pick(focus, 3)),
		"kpi_analysis": []string{
			"Revenue tracked in line with the daily series.",
			"Visitor counts were consistent across the period.",
			fmt.Sprintf("Average spend suggests room to grow %s.", pick(focus, 5)),
		},
		"issues": []string{
			fmt.Sprintf("Softness in %s.", pick(focus, 11)),
			"Repeat visits are not yet measured.",
			"Few customer reviews were collected.",
		},
		"actions": []string{
			fmt.Sprintf("Introduce %s.", pick(levers, 13)),
			fmt.Sprintf("Pilot %s.", pick(levers, 17)),
			"Review staffing against peak hours.",
			"Track new versus returning customers daily.",
			"Ask satisfied customers for a review.",
		},
		"forecast": map[string]any{
			"revenue":   revenue,
			"visitors":  visitors,
			"reasoning": "Projected from the recent daily trend.",
		},
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
