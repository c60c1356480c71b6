package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BudgetNature classifies spending as operating or capital, following the
// M57 public accounting split.
type BudgetNature string

const (
	NatureOperating BudgetNature = "FONCTIONNEMENT"
	NatureCapital   BudgetNature = "INVESTISSEMENT"
)
