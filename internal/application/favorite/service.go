package favorite

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gojo-homes/api/internal/domain"
	"github.com/gojo-homes/api/internal/pkg/id"
)

// Service handles the shortlist a user saves for later comparison.
type Service interface {
	Add(ctx context.Context, userID, listingID string) (*domain.Favorite, error)
	List(ctx context.Context, userID string) ([]domain.Favorite, error)
	Compare(ctx context.Context, userID string) ([]domain.Listing, error)
	Remove(ctx context.Context, favoriteID, userID string) error
}

type favoriteStore interface {
	Put(ctx context.Context, f *domain.Favorite) error
	Get(ctx context.Context, favoriteID string) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
	Delete(ctx context.Context, favoriteID string) error
}

type listingStore interface {
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
}

type service struct {
	repo     favoriteStore
	listings listingStore
}

func NewService(repo favoriteStore, listings listingStore) Service {
	return &service{repo: repo, listings: listings}
}

// Add saves a listing to the user's shortlist. The listing must exist, and
// saving the same listing twice is a conflict.
func (s *service) Add(ctx context.Context, userID, listingID string) (*domain.Favorite, error) {
	if _, err := s.listings.Get(ctx, listingID); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, f := range existing {
		if f.ListingID == listingID {
			return nil, fmt.Errorf("listing %s already saved: %w", listingID, domain.ErrConflict)
		}
	}

	f := &domain.Favorite{
		FavoriteID: id.New(),
		UserID:     userID,
		ListingID:  listingID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Compare resolves the user's shortlist into full listing documents so the
// client can render them side by side. Favorites pointing at listings that
// have since been deleted are skipped.
func (s *service) Compare(ctx context.Context, userID string) ([]domain.Listing, error) {
	favorites, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	listings := make([]domain.Listing, 0, len(favorites))
	for _, f := range favorites {
		l, err := s.listings.Get(ctx, f.ListingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				log.Printf("favorite: listing %s gone, skipping", f.ListingID)
				continue
			}
			return nil, err
		}
		listings = append(listings, *l)
	}
	return listings, nil
}

func (s *service) Remove(ctx context.Context, favoriteID, userID string) error {
	f, err := s.repo.Get(ctx, favoriteID)
	if err != nil {
		return err
	}
	if f.UserID != userID {
		return fmt.Errorf("favorite %s belongs to another user: %w", favoriteID, domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, favoriteID)
}
