package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus tracks a procurement contract. EXPIRED is entered
// automatically by the scheduled sweep, never by user action.
type ContractStatus string

const (
	ContractDraft      ContractStatus = "DRAFT"
	ContractActive     ContractStatus = "ACTIVE"
	ContractRenewed    ContractStatus = "RENEWED"
	ContractTerminated ContractStatus = "TERMINATED"
	ContractExpired    ContractStatus = "EXPIRED"
)

// ContractType enumerates the procurement categories.
type ContractType string

const (
	ContractOrderMarket ContractType = "MARCHE_BC"
	ContractMaintenance ContractType = "MARCHE_MAINTENANCE"
	ContractDirect      ContractType = "GRE_A_GRE"
	ContractFramework   ContractType = "ACCORD_CADRE"
	ContractOffMarket   ContractType = "HORS_MARCHE"
)

// DefaultMaxRenewals bounds tacit renewal, matching common market terms.
const DefaultMaxRenewals = 3

// Contract is a procurement contract. CumulativeEngaged is a read-time
// aggregate over the contract's non-cancelled orders; it is never stored.
type Contract struct {
	ContractID    int64           `json:"contractID"`
	Number        string          `json:"number"` // human-assigned, unique
	Type          ContractType    `json:"type"`
	Object        string          `json:"object"`
	SupplierID    int64           `json:"supplierID"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	InitialAmount decimal.Decimal `json:"initialAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"` // ceiling after amendments
	RenewalCount  int             `json:"renewalCount"`
	MaxRenewals   int             `json:"maxRenewals"`
	Status        ContractStatus  `json:"status"`

	// CumulativeEngaged is derived on query; zero unless loaded with it.
	CumulativeEngaged decimal.Decimal `json:"cumulativeEngaged"`
	AuditFields
}

// CanActivate reports whether the contract may move DRAFT → ACTIVE.
func (c *Contract) CanActivate() bool {
	return c.Status == ContractDraft
}

// CanRenew reports whether the contract may be renewed once more.
func (c *Contract) CanRenew() bool {
	if c.Status != ContractActive && c.Status != ContractRenewed {
		return false
	}
	return c.MaxRenewals <= 0 || c.RenewalCount < c.MaxRenewals
}

// CanTerminate reports whether the contract may be terminated.
func (c *Contract) CanTerminate() bool {
	return c.Status == ContractActive || c.Status == ContractRenewed
}

// ShouldExpire reports whether the scheduled sweep must mark this contract
// EXPIRED as of the given date.
func (c *Contract) ShouldExpire(asOf time.Time) bool {
	if c.Status != ContractActive && c.Status != ContractRenewed {
		return false
	}
	return !c.EndDate.IsZero() && c.EndDate.Before(asOf)
}
