package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gojo-homes/api/internal/domain"
	"github.com/gojo-homes/api/internal/infrastructure/cache"
	"github.com/gojo-homes/api/internal/pkg/id"
)

const maxBrowseLimit = 100

// Service handles the listing lifecycle: creation, moderation, browsing,
// updates and removal. Activating a listing (admin creation or approval)
// hands it to the alert pipeline.
type Service interface {
	Create(ctx context.Context, actorID, role string, req domain.CreateListingRequest) (*domain.Listing, error)
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
	Browse(ctx context.Context, filter domain.ListingFilter, limit int32) ([]domain.Listing, error)
	ListByAgent(ctx context.Context, agentID string) ([]domain.Listing, error)
	Update(ctx context.Context, actorID, role, listingID string, req domain.UpdateListingRequest) (*domain.Listing, error)
	Approve(ctx context.Context, listingID string) (*domain.Listing, error)
	Delete(ctx context.Context, actorID, role, listingID string) error
}

type listingStore interface {
	Put(ctx context.Context, l *domain.Listing) error
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
	Update(ctx context.Context, listingID string, updates map[string]interface{}) error
	Delete(ctx context.Context, listingID string) error
	QueryActive(ctx context.Context, filter domain.ListingFilter, limit int32) ([]domain.Listing, error)
	ListByAgent(ctx context.Context, agentID string) ([]domain.Listing, error)
}

// alertEngine is the trigger surface of the alert pipeline. The engine
// detaches its own goroutine, so calls return immediately.
type alertEngine interface {
	ListingActivated(listingID string)
}

type browseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
	InvalidateBrowse(ctx context.Context)
}

// ServiceDeps holds the dependencies of the listing service. Cache and
// Alerts are optional; nil disables the corresponding behavior.
type ServiceDeps struct {
	Repo     listingStore
	Cache    browseCache
	Alerts   alertEngine
	PageSize int32
}

type service struct {
	repo     listingStore
	cache    browseCache
	alerts   alertEngine
	pageSize int32
}

func NewService(deps ServiceDeps) Service {
	if deps.PageSize <= 0 {
		deps.PageSize = 20
	}
	return &service{
		repo:     deps.Repo,
		cache:    deps.Cache,
		alerts:   deps.Alerts,
		pageSize: deps.PageSize,
	}
}

// Create persists a new listing. Agent submissions start pending and wait
// for admin approval; admin submissions go live immediately and trigger
// the alert pipeline.
func (s *service) Create(ctx context.Context, actorID, role string, req domain.CreateListingRequest) (*domain.Listing, error) {
	status := domain.ListingStatusPending
	if role == domain.RoleAdmin {
		status = domain.ListingStatusActive
	}
	currency := req.Currency
	if currency == "" {
		currency = "ETB"
	}

	now := time.Now().UTC()
	l := &domain.Listing{
		ListingID:      id.New(),
		Title:          req.Title,
		Type:           req.Type,
		Purpose:        req.Purpose,
		Price:          req.Price,
		Currency:       currency,
		Status:         status,
		Location:       req.Location,
		Specifications: req.Specs,
		Description:    req.Description,
		CreatedBy:      actorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, l); err != nil {
		return nil, err
	}

	s.invalidateBrowse()
	if l.Status == domain.ListingStatusActive && s.alerts != nil {
		s.alerts.ListingActivated(l.ListingID)
	}
	return l, nil
}

func (s *service) Get(ctx context.Context, listingID string) (*domain.Listing, error) {
	return s.repo.Get(ctx, listingID)
}

// Browse returns active listings matching the filter, newest first, through
// the cache-aside layer when one is configured.
func (s *service) Browse(ctx context.Context, filter domain.ListingFilter, limit int32) ([]domain.Listing, error) {
	if limit <= 0 || limit > maxBrowseLimit {
		limit = s.pageSize
	}

	key := cache.BrowseKey(filter, int(limit))
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, key); ok {
			var listings []domain.Listing
			if err := json.Unmarshal(data, &listings); err == nil {
				return listings, nil
			}
			log.Printf("listing: corrupt cache entry %s, falling through", key)
		}
	}

	listings, err := s.repo.QueryActive(ctx, filter, limit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if data, err := json.Marshal(listings); err == nil {
			s.cache.Set(ctx, key, data)
		}
	}
	return listings, nil
}

func (s *service) ListByAgent(ctx context.Context, agentID string) ([]domain.Listing, error) {
	return s.repo.ListByAgent(ctx, agentID)
}

// Update applies a partial edit. Only the creating agent or an admin may
// edit; status changes are reserved for admins, and a change to active
// triggers the alert pipeline the same way approval does.
func (s *service) Update(ctx context.Context, actorID, role, listingID string, req domain.UpdateListingRequest) (*domain.Listing, error) {
	l, err := s.repo.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.CreatedBy != actorID && role != domain.RoleAdmin {
		return nil, fmt.Errorf("listing %s belongs to another agent: %w", listingID, domain.ErrForbidden)
	}
	if req.Status != nil && role != domain.RoleAdmin {
		return nil, fmt.Errorf("status changes require admin: %w", domain.ErrForbidden)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		l.Title = *req.Title
		updates["title"] = *req.Title
	}
	if req.Type != nil {
		l.Type = *req.Type
		updates["type"] = *req.Type
	}
	if req.Purpose != nil {
		l.Purpose = *req.Purpose
		updates["purpose"] = *req.Purpose
	}
	if req.Price != nil {
		l.Price = req.Price
		updates["price"] = *req.Price
	}
	if req.Currency != nil {
		l.Currency = *req.Currency
		updates["currency"] = *req.Currency
	}
	if req.Description != nil {
		l.Description = *req.Description
		updates["description"] = *req.Description
	}
	if req.City != nil || req.SubCity != nil || req.Address != nil {
		if req.City != nil {
			l.Location.City = *req.City
		}
		if req.SubCity != nil {
			l.Location.SubCity = *req.SubCity
		}
		if req.Address != nil {
			l.Location.Address = *req.Address
		}
		updates["location"] = l.Location
	}
	if req.Bedrooms != nil || req.Bathrooms != nil || req.AreaSqm != nil {
		if req.Bedrooms != nil {
			l.Specifications.Bedrooms = req.Bedrooms
		}
		if req.Bathrooms != nil {
			l.Specifications.Bathrooms = req.Bathrooms
		}
		if req.AreaSqm != nil {
			l.Specifications.AreaSqm = req.AreaSqm
		}
		updates["specifications"] = l.Specifications
	}

	activated := false
	if req.Status != nil && *req.Status != l.Status {
		activated = *req.Status == domain.ListingStatusActive
		l.Status = *req.Status
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return l, nil
	}

	if err := s.repo.Update(ctx, listingID, updates); err != nil {
		return nil, err
	}
	l.UpdatedAt = time.Now().UTC()

	s.invalidateBrowse()
	if activated && s.alerts != nil {
		s.alerts.ListingActivated(listingID)
	}
	return l, nil
}

// Approve moves a pending listing to active and hands it to the alert
// pipeline. Approving anything but a pending listing is a conflict.
func (s *service) Approve(ctx context.Context, listingID string) (*domain.Listing, error) {
	l, err := s.repo.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.Status != domain.ListingStatusPending {
		return nil, fmt.Errorf("listing %s is %s, not pending: %w", listingID, l.Status, domain.ErrConflict)
	}

	if err := s.repo.Update(ctx, listingID, map[string]interface{}{
		"status": domain.ListingStatusActive,
	}); err != nil {
		return nil, err
	}
	l.Status = domain.ListingStatusActive
	l.UpdatedAt = time.Now().UTC()

	s.invalidateBrowse()
	if s.alerts != nil {
		s.alerts.ListingActivated(listingID)
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, actorID, role, listingID string) error {
	l, err := s.repo.Get(ctx, listingID)
	if err != nil {
		return err
	}
	if l.CreatedBy != actorID && role != domain.RoleAdmin {
		return fmt.Errorf("listing %s belongs to another agent: %w", listingID, domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, listingID); err != nil {
		return err
	}
	s.invalidateBrowse()
	return nil
}

// invalidateBrowse drops cached browse pages off the request path. Losing
// the invalidation only leaves stale pages until the TTL expires.
func (s *service) invalidateBrowse() {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.cache.InvalidateBrowse(ctx)
	}()
}
