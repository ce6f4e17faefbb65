// Package events contains domain events published to Kafka
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TopicReferralCredited    = "kinobot.referral.credited"
	TopicWithdrawalRequested = "kinobot.withdrawal.requested"
	TopicWithdrawalResolved  = "kinobot.withdrawal.resolved"
	TopicPremiumRequested    = "kinobot.premium.requested"
	TopicPremiumResolved     = "kinobot.premium.resolved"
)

// NotificationTopics are consumed by the notification worker
var NotificationTopics = []string{
	TopicReferralCredited,
	TopicWithdrawalRequested,
	TopicWithdrawalResolved,
	TopicPremiumRequested,
	TopicPremiumResolved,
}

// Resolution statuses carried by resolved events
const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Envelope wraps every event on the wire
type Envelope struct {
	EventID    string          `json:"event_id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope marshals payload into an envelope of the given type
func NewEnvelope(eventType string, payload any, now time.Time) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return &Envelope{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: now.UTC(),
		Payload:    data,
	}, nil
}

// Decode unmarshals the payload into dst
func (e *Envelope) Decode(dst any) error {
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.Type, err)
	}
	return nil
}

// ReferralCredited is published after a referrer received a signup bonus
type ReferralCredited struct {
	ReferrerID   int64  `json:"referrer_id"`
	ReferredID   int64  `json:"referred_id"`
	ReferredName string `json:"referred_name"`
	Bonus        int64  `json:"bonus"`
}

// WithdrawalRequested is published after a payout request was created
type WithdrawalRequested struct {
	RequestID  uint   `json:"request_id"`
	UserID     int64  `json:"user_id"`
	Amount     int64  `json:"amount"`
	CardMasked string `json:"card_masked"`
}

// WithdrawalResolved is published after an admin approved or rejected a payout
type WithdrawalResolved struct {
	RequestID uint   `json:"request_id"`
	UserID    int64  `json:"user_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	AdminID   int64  `json:"admin_id"`
}

// PremiumRequested is published after a user submitted a payment receipt
type PremiumRequested struct {
	RequestID uint   `json:"request_id"`
	UserID    int64  `json:"user_id"`
	PlanID    uint   `json:"plan_id"`
	PlanName  string `json:"plan_name"`
	Price     int64  `json:"price"`
	FileID    string `json:"file_id"`
	FileType  string `json:"file_type"`
}

// PremiumResolved is published after an admin approved or rejected a purchase
type PremiumResolved struct {
	RequestID uint       `json:"request_id"`
	UserID    int64      `json:"user_id"`
	PlanName  string     `json:"plan_name"`
	Status    string     `json:"status"`
	AdminID   int64      `json:"admin_id"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}
