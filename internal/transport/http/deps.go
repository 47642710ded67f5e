package http

import (
	"github.com/gojo-homes/api/internal/infrastructure/cache"
	"github.com/gojo-homes/api/internal/infrastructure/dynamo"
	"github.com/gojo-homes/api/internal/infrastructure/email"
	jwtinfra "github.com/gojo-homes/api/internal/infrastructure/jwt"
	"github.com/gojo-homes/api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router. Cache,
// SMSSender and JWTProvider are optional: a nil value disables the browse
// cache, the SMS channel and token verification respectively.
type Deps struct {
	ListingRepo      *dynamo.ListingRepo
	SavedSearchRepo  *dynamo.SavedSearchRepo
	UserRepo         *dynamo.UserRepo
	NotificationRepo *dynamo.NotificationRepo
	FavoriteRepo     *dynamo.FavoriteRepo
	SiteVisitRepo    *dynamo.SiteVisitRepo
	Cache            *cache.ListingCache
	Email            email.Sender
	SMSSender        sns.SMSSender
	JWTProvider      *jwtinfra.Provider
}
