// Package dto contains data transfer objects for the bot domain
package dto

// StartRequest is built from a /start message
type StartRequest struct {
	UserID   int64
	FullName string
	Username string
	Payload  string
}

// Button is one inline keyboard button. Exactly one of URL and Data is set.
type Button struct {
	Text string
	URL  string
	Data string
}

// Reply is the text and keyboard sent back to a chat
type Reply struct {
	Text    string
	Buttons [][]Button
}

// Attachment is a file forwarded to admins by id
type Attachment struct {
	FileID   string
	FileType string
}

// CommandResponse wraps a plain text reply
func CommandResponse(text string) *Reply {
	return &Reply{Text: text}
}
