package domain

// AlertLevel classifies how close a contract is to its end date. Levels are
// ordered from most to least urgent.
type AlertLevel string

const (
	AlertExpired   AlertLevel = "EXPIRE"
	AlertCritical  AlertLevel = "CRITIQUE"
	AlertWarning   AlertLevel = "ATTENTION"
	AlertInfo      AlertLevel = "INFO"
	AlertOK        AlertLevel = "OK"
)

// Day windows for each alert level, in days before the contract end date.
const (
	AlertCriticalWindowDays = 30
	AlertWarningWindowDays  = 90
	AlertInfoWindowDays     = 180
)

// ContractAlert pairs a contract with its computed urgency for dashboards.
type ContractAlert struct {
	Contract      Contract   `json:"contract"`
	Level         AlertLevel `json:"level"`
	DaysRemaining int        `json:"daysRemaining"`
}

// BudgetLineAlert flags a budget line whose engagement rate crossed its
// configured threshold.
type BudgetLineAlert struct {
	Line           BudgetLine `json:"line"`
	EngagementRate float64    `json:"engagementRate"`
	ThresholdPct   int        `json:"thresholdPct"`
}
