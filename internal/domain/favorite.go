package domain

import "time"

// Favorite marks a listing a user saved for later comparison.
type Favorite struct {
	FavoriteID string    `json:"id" dynamodbav:"favorite_id"`
	UserID     string    `json:"user_id" dynamodbav:"user_id"`
	ListingID  string    `json:"listing_id" dynamodbav:"listing_id"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateFavoriteRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
}
