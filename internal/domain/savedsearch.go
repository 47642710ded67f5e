package domain

import "time"

// Alert frequencies. Only immediate alerts are consumed by the fan-out
// pipeline; daily and weekly tiers are stored for future aggregation.
const (
	FrequencyImmediate = "immediate"
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
)

// Sentinel criteria values that disable the corresponding filter.
const (
	FilterAllTypes    = "allTypes"
	FilterAllListings = "allListings"
	FilterAnyBedrooms = "any"
)

// SearchCriteria is the saved filter set of a search. Every field is
// optional; nil means the dimension is unconstrained. Attributes stored on
// old documents that this struct does not know are dropped on decode, so new
// filter keys can be introduced without breaking existing readers.
//
// Bedrooms is kept as a string because the UI submits either a number or the
// "any" sentinel; the matcher parses it and skips the check when it cannot.
type SearchCriteria struct {
	Type     *string  `json:"type,omitempty" dynamodbav:"type,omitempty"`
	Purpose  *string  `json:"listingType,omitempty" dynamodbav:"listing_type,omitempty"`
	City     *string  `json:"city,omitempty" dynamodbav:"city,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty" dynamodbav:"min_price,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty" dynamodbav:"max_price,omitempty"`
	Bedrooms *string  `json:"bedrooms,omitempty" dynamodbav:"bedrooms,omitempty"`
}

// SavedSearch is a persisted filter set a user subscribes to for alerts.
// The alert pipeline treats saved searches as read-only.
type SavedSearch struct {
	SearchID       string         `json:"id" dynamodbav:"search_id"`
	UserID         string         `json:"user_id" dynamodbav:"user_id"`
	Name           string         `json:"name" dynamodbav:"name"`
	Criteria       SearchCriteria `json:"criteria" dynamodbav:"criteria"`
	AlertEnabled   bool           `json:"alert_enabled" dynamodbav:"alert_enabled"`
	AlertFrequency string         `json:"alert_frequency" dynamodbav:"alert_frequency"`
	CreatedAt      time.Time      `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time      `json:"updated" dynamodbav:"updated_at"`
}

type CreateSavedSearchRequest struct {
	Name           string         `json:"name" validate:"required,max=100"`
	Criteria       SearchCriteria `json:"criteria"`
	AlertEnabled   bool           `json:"alert_enabled"`
	AlertFrequency string         `json:"alert_frequency" validate:"omitempty,oneof=immediate daily weekly"`
}

type UpdateSavedSearchRequest struct {
	Name           *string         `json:"name" validate:"omitempty,max=100"`
	Criteria       *SearchCriteria `json:"criteria"`
	AlertEnabled   *bool           `json:"alert_enabled"`
	AlertFrequency *string         `json:"alert_frequency" validate:"omitempty,oneof=immediate daily weekly"`
}
