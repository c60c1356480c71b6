package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	testCases := []struct {
		status      OrderStatus
		canSubmit   bool
		canApprove  bool
		canImpute   bool
		canCancel   bool
		canSettle   bool
		needsRevert bool
	}{
		{OrderDraft, true, false, false, true, false, false},
		{OrderPending, false, true, false, true, false, false},
		{OrderValidated, false, false, true, true, false, false},
		{OrderImputed, false, false, false, true, true, true},
		{OrderSettled, false, false, false, false, false, false},
		{OrderCancelled, false, false, false, false, false, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			o := Order{Status: tc.status}
			assert.Equal(t, tc.canSubmit, o.CanSubmit())
			assert.Equal(t, tc.canApprove, o.CanApprove())
			assert.Equal(t, tc.canImpute, o.CanImpute())
			assert.Equal(t, tc.canCancel, o.CanCancel())
			assert.Equal(t, tc.canSettle, o.CanSettle())
			assert.Equal(t, tc.needsRevert, o.RequiresReversal())
		})
	}
}

func TestOrderCommittedAmount(t *testing.T) {
	t.Run("TTC wins when larger", func(t *testing.T) {
		o := Order{AmountHT: decimal.NewFromInt(100), AmountTTC: decimal.NewFromInt(120)}
		assert.True(t, o.CommittedAmount().Equal(decimal.NewFromInt(120)))
	})

	t.Run("falls back to HT when TTC missing", func(t *testing.T) {
		o := Order{AmountHT: decimal.NewFromInt(100)}
		assert.True(t, o.CommittedAmount().Equal(decimal.NewFromInt(100)))
	})
}

func TestContractRenewal(t *testing.T) {
	t.Run("renewable until count reaches limit", func(t *testing.T) {
		c := Contract{Status: ContractActive, RenewalCount: 2, MaxRenewals: 3}
		assert.True(t, c.CanRenew())

		c.RenewalCount = 3
		assert.False(t, c.CanRenew())
	})

	t.Run("unlimited when no limit set", func(t *testing.T) {
		c := Contract{Status: ContractRenewed, RenewalCount: 10, MaxRenewals: 0}
		assert.True(t, c.CanRenew())
	})

	t.Run("terminated contracts never renew", func(t *testing.T) {
		c := Contract{Status: ContractTerminated, RenewalCount: 0, MaxRenewals: 3}
		assert.False(t, c.CanRenew())
	})
}
