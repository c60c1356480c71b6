package domain

import (
	"github.com/shopspring/decimal"
)

// AuthorizationStatus indicates the state of a multi-year spending envelope.
type AuthorizationStatus string

const (
	AuthorizationActive    AuthorizationStatus = "ACTIVE"
	AuthorizationClosed    AuthorizationStatus = "CLOSED"
	AuthorizationCancelled AuthorizationStatus = "CANCELLED"
)

// Authorization is a multi-year spending envelope (autorisation de
// programme) approved by the governing body. Its annual slices are
// AnnualCredits; the sum of their voted amounts may not exceed TotalAmount
// at credit-creation time.
type Authorization struct {
	AuthorizationID int64               `json:"authorizationID"`
	Number          string              `json:"number"` // human-assigned, unique
	Label           string              `json:"label"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	FiscalYearStart int                 `json:"fiscalYearStart"`
	FiscalYearEnd   int                 `json:"fiscalYearEnd"`
	Status          AuthorizationStatus `json:"status"`
	AuditFields
}
