package domain

import "time"

// Notification categories.
const (
	CategoryNewListing = "new_listing"
	CategorySiteVisit  = "site_visit"
)

// Notification is an in-app notification. The alert pipeline only ever
// appends notifications; marking as read is a separate user action.
type Notification struct {
	NotificationID string    `json:"id" dynamodbav:"notification_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	Message        string    `json:"message" dynamodbav:"message"`
	Category       string    `json:"category" dynamodbav:"category"`
	ListingID      string    `json:"listing_id,omitempty" dynamodbav:"listing_id"`
	Readed         int       `json:"readed" dynamodbav:"readed"` // 0 = unread, 1 = read
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}
