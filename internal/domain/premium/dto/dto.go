// Package dto contains data transfer objects for premium subscriptions
package dto

// Receipt file types accepted with a purchase request
const (
	FileTypePhoto    = "photo"
	FileTypeDocument = "document"
)

// CreatePlanRequest describes a new premium plan
type CreatePlanRequest struct {
	Name         string `json:"name" validate:"required,max=128"`
	DurationDays int    `json:"duration_days" validate:"gt=0"`
	Price        int64  `json:"price" validate:"gt=0"`
	Description  string `json:"description" validate:"max=1024"`
}

// SubmitRequest is a payment receipt uploaded by a user
type SubmitRequest struct {
	UserID   int64  `json:"user_id" validate:"required"`
	PlanID   uint   `json:"plan_id" validate:"required"`
	FileID   string `json:"file_id" validate:"required"`
	FileType string `json:"file_type" validate:"oneof=photo document"`
}
