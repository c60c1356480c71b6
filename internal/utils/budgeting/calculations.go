package budgeting

import (
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AvailableAmount computes the remaining headroom of a budget scope.
// Conservation invariant: voted = engaged + available at all times.
func AvailableAmount(voted, engaged decimal.Decimal) decimal.Decimal {
	return voted.Sub(engaged)
}

// EngagementRate returns engaged/voted as a percentage. A scope that was
// never voted reports 0 so dashboards don't divide by zero.
func EngagementRate(voted, engaged decimal.Decimal) float64 {
	if voted.IsZero() {
		return 0
	}
	rate, _ := engaged.Div(voted).Mul(decimal.NewFromInt(100)).Float64()
	return rate
}

// IsOverThreshold reports whether a line's engagement rate crossed its
// configured alert threshold.
func IsOverThreshold(line domain.BudgetLine) bool {
	threshold := line.AlertThresholdPct
	if threshold <= 0 {
		threshold = domain.DefaultAlertThresholdPct
	}
	return EngagementRate(line.VotedAmount, line.EngagedAmount) >= float64(threshold)
}

// ComputeTTC derives the tax-inclusive amount from a pre-tax amount and a
// VAT percentage.
func ComputeTTC(amountHT, taxRate decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(taxRate.Div(decimal.NewFromInt(100)))
	return amountHT.Mul(factor).Round(2)
}

// DaysUntil returns the whole number of days from asOf until the given date,
// negative when the date is already past.
func DaysUntil(date, asOf time.Time) int {
	return int(date.Sub(asOf).Hours() / 24)
}

// ContractAlertLevel classifies a contract's urgency as of the given date.
// Only terminated contracts are exempt from the date formula: nothing is
// actionable on them anymore. A contract already in EXPIRED status stays at
// the highest urgency so it does not drop off the dashboard once the sweep
// has flagged it.
func ContractAlertLevel(c domain.Contract, asOf time.Time) (domain.AlertLevel, int) {
	if c.Status == domain.ContractTerminated {
		return domain.AlertOK, 0
	}
	if c.EndDate.IsZero() {
		return domain.AlertOK, 0
	}

	days := DaysUntil(c.EndDate, asOf)
	if c.Status == domain.ContractExpired {
		return domain.AlertExpired, days
	}
	switch {
	case days < 0:
		return domain.AlertExpired, days
	case days <= domain.AlertCriticalWindowDays:
		return domain.AlertCritical, days
	case days <= domain.AlertWarningWindowDays:
		return domain.AlertWarning, days
	case days <= domain.AlertInfoWindowDays:
		return domain.AlertInfo, days
	}
	return domain.AlertOK, days
}
