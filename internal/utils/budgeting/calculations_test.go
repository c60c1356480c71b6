package budgeting

import (
	"testing"
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAvailableAmount(t *testing.T) {
	voted := decimal.NewFromInt(100000)
	engaged := decimal.NewFromInt(48000)
	assert.True(t, AvailableAmount(voted, engaged).Equal(decimal.NewFromInt(52000)))
}

func TestEngagementRate(t *testing.T) {
	t.Run("normal rate", func(t *testing.T) {
		rate := EngagementRate(decimal.NewFromInt(100000), decimal.NewFromInt(48000))
		assert.InDelta(t, 48.0, rate, 0.001)
	})

	t.Run("zero voted reports zero", func(t *testing.T) {
		rate := EngagementRate(decimal.Zero, decimal.NewFromInt(500))
		assert.Equal(t, 0.0, rate)
	})
}

func TestIsOverThreshold(t *testing.T) {
	line := domain.BudgetLine{
		VotedAmount:       decimal.NewFromInt(100000),
		EngagedAmount:     decimal.NewFromInt(85000),
		AlertThresholdPct: 80,
	}
	assert.True(t, IsOverThreshold(line))

	line.EngagedAmount = decimal.NewFromInt(50000)
	assert.False(t, IsOverThreshold(line))

	// Unset threshold falls back to the default.
	line.AlertThresholdPct = 0
	line.EngagedAmount = decimal.NewFromInt(80000)
	assert.True(t, IsOverThreshold(line))
}

func TestComputeTTC(t *testing.T) {
	ttc := ComputeTTC(decimal.NewFromInt(1000), decimal.NewFromFloat(20.0))
	assert.True(t, ttc.Equal(decimal.NewFromInt(1200)), "got %s", ttc)
}

func TestContractAlertLevel(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mk := func(status domain.ContractStatus, end time.Time) domain.Contract {
		return domain.Contract{Status: status, EndDate: end}
	}

	testCases := []struct {
		name     string
		contract domain.Contract
		want     domain.AlertLevel
	}{
		{"past end date", mk(domain.ContractActive, now.AddDate(0, 0, -1)), domain.AlertExpired},
		{"25 days left", mk(domain.ContractActive, now.AddDate(0, 0, 25)), domain.AlertCritical},
		{"60 days left", mk(domain.ContractRenewed, now.AddDate(0, 0, 60)), domain.AlertWarning},
		{"150 days left", mk(domain.ContractActive, now.AddDate(0, 0, 150)), domain.AlertInfo},
		{"200 days left", mk(domain.ContractActive, now.AddDate(0, 0, 200)), domain.AlertOK},
		{"terminated is quiet", mk(domain.ContractTerminated, now.AddDate(0, 0, -10)), domain.AlertOK},
		{"expired status stays expired", mk(domain.ContractExpired, now.AddDate(0, 0, -10)), domain.AlertExpired},
		{"draft follows the date formula", mk(domain.ContractDraft, now.AddDate(0, 0, 25)), domain.AlertCritical},
		{"no end date is quiet", mk(domain.ContractActive, time.Time{}), domain.AlertOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level, _ := ContractAlertLevel(tc.contract, now)
			assert.Equal(t, tc.want, level)
		})
	}
}
