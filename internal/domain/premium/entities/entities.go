// Package entities contains premium subscription types
package entities

import "time"

// RequestStatus is the lifecycle state of a premium purchase request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Plan is a purchasable premium period
type Plan struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	DurationDays int       `gorm:"column:duration_days;not null;check:duration_days > 0"`
	Price        int64     `gorm:"column:price;not null;check:price > 0"`
	Description  string    `gorm:"column:description;not null"`
	IsActive     bool      `gorm:"column:is_active;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Plan) TableName() string {
	return "premium_plans"
}

// Subscription is a premium validity window. EndDate is exclusive.
type Subscription struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;index:idx_premium_subscriptions_user_active"`
	PlanID    *uint     `gorm:"column:plan_id"`
	StartDate time.Time `gorm:"column:start_date;not null"`
	EndDate   time.Time `gorm:"column:end_date;not null"`
	IsActive  bool      `gorm:"column:is_active;not null;index:idx_premium_subscriptions_user_active"`
}

func (Subscription) TableName() string {
	return "premium_subscriptions"
}

// ValidAt reports whether the subscription grants premium at now
func (s Subscription) ValidAt(now time.Time) bool {
	return s.IsActive && s.EndDate.After(now)
}

// DaysLeft rounds the remaining validity up to whole days
func (s Subscription) DaysLeft(now time.Time) int {
	if !s.ValidAt(now) {
		return 0
	}
	remaining := s.EndDate.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Request is a purchase awaiting an admin decision
type Request struct {
	ID          uint          `gorm:"primaryKey"`
	UserID      int64         `gorm:"column:user_id;not null"`
	PlanID      uint          `gorm:"column:plan_id;not null"`
	FileID      string        `gorm:"column:file_id;not null"`
	FileType    string        `gorm:"column:file_type;not null"`
	Status      RequestStatus `gorm:"column:status;not null;index"`
	AdminID     *int64        `gorm:"column:admin_id"`
	CreatedAt   time.Time     `gorm:"column:created_at;not null"`
	ProcessedAt *time.Time    `gorm:"column:processed_at"`
}

func (Request) TableName() string {
	return "premium_requests"
}

// Grant is the outcome of GrantOrExtend
type Grant struct {
	Subscription Subscription
	Stacked      bool
}

// Resolution is the outcome of approving or rejecting a request
type Resolution struct {
	Request Request
	Plan    Plan
	Grant   *Grant
}
