// Package dto contains data transfer objects for the subscription gate
package dto

// AddChannelRequest describes a channel added by an admin
type AddChannelRequest struct {
	ChannelID      string `json:"channel_id" validate:"required,max=128"`
	Title          string `json:"title" validate:"required,max=256"`
	URL            string `json:"url" validate:"required,url"`
	InviteLink     string `json:"invite_link" validate:"omitempty,url"`
	IsRequestGroup bool   `json:"is_request_group"`
	IsExternalLink bool   `json:"is_external_link"`
}

// ChannelStatus is one line of the join prompt
type ChannelStatus struct {
	ChannelID string `json:"channel_id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	External  bool   `json:"external"`
}
