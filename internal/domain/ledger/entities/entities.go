// Package entities contains referral ledger types
package entities

import "time"

// WithdrawalStatus is the lifecycle state of a withdrawal request
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// User is a bot user together with their referral balance
type User struct {
	UserID          int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	FullName        string    `gorm:"column:full_name;not null"`
	Username        string    `gorm:"column:username;not null"`
	IsPremium       bool      `gorm:"column:is_premium;not null"`
	ReferredBy      *int64    `gorm:"column:referred_by;index"`
	ReferralBalance int64     `gorm:"column:referral_balance;not null;check:referral_balance >= 0"`
	JoinedAt        time.Time `gorm:"column:joined_at;not null"`
}

func (User) TableName() string {
	return "users"
}

// NewUser carries the identity of a user seen for the first time
type NewUser struct {
	UserID   int64
	FullName string
	Username string
}

// ReferralHistory is the audit row appended for every credited referral
type ReferralHistory struct {
	ID          uint      `gorm:"primaryKey"`
	ReferrerID  int64     `gorm:"column:referrer_id;not null;index"`
	ReferredID  int64     `gorm:"column:referred_id;not null;uniqueIndex"`
	BonusAmount int64     `gorm:"column:bonus_amount;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (ReferralHistory) TableName() string {
	return "referral_history"
}

// WithdrawalRequest is a payout request. The amount is debited when the request is created.
type WithdrawalRequest struct {
	ID          uint             `gorm:"primaryKey"`
	UserID      int64            `gorm:"column:user_id;not null;index"`
	Amount      int64            `gorm:"column:amount;not null"`
	CardNumber  string           `gorm:"column:card_number;not null"`
	Status      WithdrawalStatus `gorm:"column:status;not null;index"`
	AdminID     *int64           `gorm:"column:admin_id"`
	CreatedAt   time.Time        `gorm:"column:created_at;not null"`
	ProcessedAt *time.Time       `gorm:"column:processed_at"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}

// Registration is the outcome of registering a user
type Registration struct {
	Created  bool
	Credited bool
}

// TopReferrer is one row of the referral leaderboard
type TopReferrer struct {
	UserID   int64  `gorm:"column:user_id"`
	FullName string `gorm:"column:full_name"`
	Count    int64  `gorm:"column:referrals"`
	Earned   int64  `gorm:"column:earned"`
}

// Stats aggregates referral and payout totals for admins
type Stats struct {
	TotalReferrals int64
	TotalBonuses   int64
	TotalWithdrawn int64
	PendingCount   int64
	TopReferrers   []TopReferrer
}
