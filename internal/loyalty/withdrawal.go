package loyalty

import (
	"math"

	"github.com/vitalrecife/storefront/internal/format"
)

// MinWithdrawal is the smallest cashback balance that can be withdrawn.
const MinWithdrawal = 50.00

type Withdrawal struct {
	Enabled   bool    `json:"enabled"`
	Label     string  `json:"label"`
	Balance   float64 `json:"balance"`
	Remaining float64 `json:"remaining"`
}

// WithdrawalFor builds the withdraw affordance for a balance. Amounts are
// compared in whole cents.
func WithdrawalFor(cashback float64) Withdrawal {
	balance := math.Round(cashback*100) / 100
	minCents := math.Round(MinWithdrawal * 100)
	cents := math.Round(cashback * 100)
	if cents >= minCents {
		return Withdrawal{
			Enabled: true,
			Label:   "Sacar " + format.Currency(balance),
			Balance: balance,
		}
	}
	remaining := (minCents - cents) / 100
	return Withdrawal{
		Label:     "Saque mínimo: " + format.Currency(MinWithdrawal) + " (faltam " + format.Currency(remaining) + ")",
		Balance:   balance,
		Remaining: remaining,
	}
}
