package domain

import "time"

// Listing statuses. Only active listings are visible to buyers and eligible
// for saved-search matching; pending listings await admin approval.
const (
	ListingStatusPending = "pending"
	ListingStatusActive  = "active"
	ListingStatusSold    = "sold"
	ListingStatusClosed  = "closed"
)

// Listing purposes.
const (
	PurposeSale = "sale"
	PurposeRent = "rent"
)

// Location is the nested location block of a listing document.
type Location struct {
	City    string `json:"city" dynamodbav:"city"`
	SubCity string `json:"sub_city,omitempty" dynamodbav:"sub_city"`
	Address string `json:"address,omitempty" dynamodbav:"address"`
}

// Specifications is the nested specification block of a listing document.
// Bedrooms is a pointer so that listings without a bedroom count (land,
// commercial) can be distinguished from listings with zero bedrooms.
type Specifications struct {
	Bedrooms  *int     `json:"bedrooms,omitempty" dynamodbav:"bedrooms"`
	Bathrooms *int     `json:"bathrooms,omitempty" dynamodbav:"bathrooms"`
	AreaSqm   *float64 `json:"area_sqm,omitempty" dynamodbav:"area_sqm"`
}

// Listing is a property listing. Price is a pointer: some listings (price on
// request) carry no comparable price, and price-range filters must skip them
// rather than exclude them.
type Listing struct {
	ListingID      string         `json:"id" dynamodbav:"listing_id"`
	Title          string         `json:"title" dynamodbav:"title"`
	Type           string         `json:"type" dynamodbav:"type"`
	Purpose        string         `json:"purpose" dynamodbav:"purpose"`
	Price          *float64       `json:"price,omitempty" dynamodbav:"price"`
	Currency       string         `json:"currency,omitempty" dynamodbav:"currency"`
	Status         string         `json:"status" dynamodbav:"status"`
	Location       Location       `json:"location" dynamodbav:"location"`
	Specifications Specifications `json:"specifications" dynamodbav:"specifications"`
	Description    string         `json:"description,omitempty" dynamodbav:"description"`
	CreatedBy      string         `json:"created_by" dynamodbav:"created_by"`
	CreatedAt      time.Time      `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time      `json:"updated" dynamodbav:"updated_at"`
}

type CreateListingRequest struct {
	Title       string         `json:"title" validate:"required"`
	Type        string         `json:"type" validate:"required"`
	Purpose     string         `json:"purpose" validate:"required,oneof=sale rent"`
	Price       *float64       `json:"price" validate:"omitempty,gt=0"`
	Currency    string         `json:"currency"`
	Location    Location       `json:"location" validate:"required"`
	Specs       Specifications `json:"specifications"`
	Description string         `json:"description"`
}

type UpdateListingRequest struct {
	Title       *string  `json:"title"`
	Type        *string  `json:"type"`
	Purpose     *string  `json:"purpose" validate:"omitempty,oneof=sale rent"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Currency    *string  `json:"currency"`
	City        *string  `json:"city"`
	SubCity     *string  `json:"sub_city"`
	Address     *string  `json:"address"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	AreaSqm     *float64 `json:"area_sqm"`
	Description *string  `json:"description"`
	Status      *string  `json:"status" validate:"omitempty,oneof=pending active sold closed"`
}

// ListingFilter holds the browse-query filters. Zero values mean "no filter".
type ListingFilter struct {
	Type        string
	Purpose     string
	City        string
	MinPrice    *float64
	MaxPrice    *float64
	MinBedrooms *int
}
