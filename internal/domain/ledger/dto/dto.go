// Package dto contains data transfer objects for the referral ledger
package dto

// WithdrawalInput is a payout request entered by a user
type WithdrawalInput struct {
	UserID int64  `json:"user_id" validate:"required"`
	Amount int64  `json:"amount" validate:"gt=0"`
	Card   string `json:"card" validate:"required"`
}

// BalanceInfo is shown by the balance command
type BalanceInfo struct {
	Balance       int64 `json:"balance"`
	ReferralCount int64 `json:"referral_count"`
	Bonus         int64 `json:"bonus"`
	MinWithdrawal int64 `json:"min_withdrawal"`
}
