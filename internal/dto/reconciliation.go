package dto

import (
	"time"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconcileRequest triggers a reconciliation run. With LineID unset every
// budget line is checked; Repair false means report-only.
type ReconcileRequest struct {
	LineID *int64 `json:"lineID"`
	Repair bool   `json:"repair"`
}

// LineDriftResponse is one detected divergence between cached and real totals.
type LineDriftResponse struct {
	BudgetLineID  int64           `json:"budgetLineID"`
	Label         string          `json:"label"`
	CachedEngaged decimal.Decimal `json:"cachedEngaged"`
	RealEngaged   decimal.Decimal `json:"realEngaged"`
	CachedPaid    decimal.Decimal `json:"cachedPaid"`
	RealPaid      decimal.Decimal `json:"realPaid"`
	Repaired      bool            `json:"repaired"`
}

// ReconciliationReportResponse summarizes one reconciliation run.
type ReconciliationReportResponse struct {
	StartedAt     time.Time           `json:"startedAt"`
	FinishedAt    time.Time           `json:"finishedAt"`
	LinesChecked  int                 `json:"linesChecked"`
	LinesRepaired int                 `json:"linesRepaired"`
	Drifts        []LineDriftResponse `json:"drifts"`
	DryRun        bool                `json:"dryRun"`
}

// ToReconciliationReportResponse converts a domain report to its DTO
func ToReconciliationReportResponse(r *domain.ReconciliationReport) ReconciliationReportResponse {
	drifts := make([]LineDriftResponse, len(r.Drifts))
	repaired := 0
	for i, d := range r.Drifts {
		drifts[i] = LineDriftResponse{
			BudgetLineID:  d.BudgetLineID,
			Label:         d.Label,
			CachedEngaged: d.CachedEngaged,
			RealEngaged:   d.RealEngaged,
			CachedPaid:    d.CachedPaid,
			RealPaid:      d.RealPaid,
			Repaired:      d.Repaired,
		}
		if d.Repaired {
			repaired++
		}
	}
	return ReconciliationReportResponse{
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
		LinesChecked:  r.LinesChecked,
		LinesRepaired: repaired,
		Drifts:        drifts,
		DryRun:        r.DryRun,
	}
}
