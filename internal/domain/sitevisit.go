package domain

import "time"

// Site-visit statuses.
const (
	VisitRequested = "requested"
	VisitConfirmed = "confirmed"
	VisitDeclined  = "declined"
)

// SiteVisit is a request by a user to tour a listed property.
type SiteVisit struct {
	VisitID   string    `json:"id" dynamodbav:"visit_id"`
	ListingID string    `json:"listing_id" dynamodbav:"listing_id"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	AgentID   string    `json:"agent_id" dynamodbav:"agent_id"`
	VisitDate string    `json:"visit_date" dynamodbav:"visit_date"` // YYYY-MM-DD
	Note      string    `json:"note,omitempty" dynamodbav:"note"`
	Status    string    `json:"status" dynamodbav:"status"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateSiteVisitRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
	VisitDate string `json:"visit_date" validate:"required"` // YYYY-MM-DD
	Note      string `json:"note"`
}

type UpdateSiteVisitRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed declined"`
}
