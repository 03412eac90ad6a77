package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/marceelkacz03/lola-crm/internal/model"
)

func TestBuildBody(t *testing.T) {
	followups := &model.DailyFollowups{
		Deals: []model.FollowupDeal{
			{AccountName: "Acme Corp", Status: model.DealStatusNegotiation},
		},
		Activities: []model.FollowupActivity{
			{Type: model.ActivityTypeCall, AccountName: "Beta Ltd"},
		},
	}
	alerts := &model.SalesAlerts{
		OverdueFollowups: []model.DealAlert{
			{AccountName: "Late Co", Status: model.DealStatusContacted},
		},
		InactiveDeals: []model.InactiveDealAlert{
			{AccountName: "Quiet Co", LastActivityAt: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
		},
	}

	body := buildBody(followups, alerts)

	assert.Contains(t, body, "- Deal for Acme Corp (negotiation)")
	assert.Contains(t, body, "- call follow-up for Beta Ltd")
	assert.Contains(t, body, "- Overdue follow-up: Late Co (contacted)")
	assert.Contains(t, body, "- No activity since 2026-08-20: Quiet Co")
	assert.NotContains(t, body, "None.")
}

func TestBuildBodyEmpty(t *testing.T) {
	body := buildBody(&model.DailyFollowups{}, &model.SalesAlerts{})

	assert.Contains(t, body, "Follow-ups due today")
	assert.Contains(t, body, "Alerts")
	assert.Equal(t, 2, countOccurrences(body, "None."))
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}
