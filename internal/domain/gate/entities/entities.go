// Package entities contains subscription gate types
package entities

import "time"

// MembershipStatus is a chat member status reported by Telegram
type MembershipStatus string

const (
	StatusCreator       MembershipStatus = "creator"
	StatusAdministrator MembershipStatus = "administrator"
	StatusMember        MembershipStatus = "member"
	StatusRestricted    MembershipStatus = "restricted"
	StatusLeft          MembershipStatus = "left"
	StatusKicked        MembershipStatus = "kicked"
)

// Satisfies reports whether the status counts as subscribed.
// Anything other than left or kicked passes, including unknown statuses.
func (s MembershipStatus) Satisfies() bool {
	return s != StatusLeft && s != StatusKicked
}

// Channel is a gating requirement
type Channel struct {
	ID             uint      `gorm:"primaryKey"`
	ChannelID      string    `gorm:"column:channel_id;not null;uniqueIndex"`
	Title          string    `gorm:"column:title;not null"`
	URL            string    `gorm:"column:url;not null"`
	InviteLink     string    `gorm:"column:invite_link;not null"`
	IsRequestGroup bool      `gorm:"column:is_request_group;not null"`
	IsExternalLink bool      `gorm:"column:is_external_link;not null"`
	IsActive       bool      `gorm:"column:is_active;not null;index"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Channel) TableName() string {
	return "channels"
}

// JoinURL is the link shown to users in the join prompt
func (c Channel) JoinURL() string {
	if c.InviteLink != "" {
		return c.InviteLink
	}
	return c.URL
}

// JoinRequest proves membership in a request-group channel
type JoinRequest struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_join_requests_user_channel"`
	ChannelID string    `gorm:"column:channel_id;not null;uniqueIndex:idx_join_requests_user_channel"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (JoinRequest) TableName() string {
	return "join_requests"
}
