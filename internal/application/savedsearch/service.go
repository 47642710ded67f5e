package savedsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/gojo-homes/api/internal/domain"
	"github.com/gojo-homes/api/internal/pkg/id"
)

// Service handles the owner-scoped saved-search CRUD surface. The alert
// pipeline reads the same table through its own store interface.
type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateSavedSearchRequest) (*domain.SavedSearch, error)
	Get(ctx context.Context, searchID, userID string) (*domain.SavedSearch, error)
	List(ctx context.Context, userID string) ([]domain.SavedSearch, error)
	Update(ctx context.Context, searchID, userID string, req domain.UpdateSavedSearchRequest) (*domain.SavedSearch, error)
	Delete(ctx context.Context, searchID, userID string) error
}

type searchStore interface {
	Put(ctx context.Context, s *domain.SavedSearch) error
	Get(ctx context.Context, searchID string) (*domain.SavedSearch, error)
	ListByUser(ctx context.Context, userID string) ([]domain.SavedSearch, error)
	Update(ctx context.Context, searchID string, updates map[string]interface{}) error
	Delete(ctx context.Context, searchID string) error
}

type service struct {
	repo searchStore
}

func NewService(repo searchStore) Service {
	return &service{repo: repo}
}

// Create persists a new saved search for the user. The alert frequency
// defaults to immediate so a bare "save this search" subscribes to the
// fan-out pipeline.
func (s *service) Create(ctx context.Context, userID string, req domain.CreateSavedSearchRequest) (*domain.SavedSearch, error) {
	frequency := req.AlertFrequency
	if frequency == "" {
		frequency = domain.FrequencyImmediate
	}

	now := time.Now().UTC()
	search := &domain.SavedSearch{
		SearchID:       id.New(),
		UserID:         userID,
		Name:           req.Name,
		Criteria:       req.Criteria,
		AlertEnabled:   req.AlertEnabled,
		AlertFrequency: frequency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, search); err != nil {
		return nil, err
	}
	return search, nil
}

func (s *service) Get(ctx context.Context, searchID, userID string) (*domain.SavedSearch, error) {
	search, err := s.repo.Get(ctx, searchID)
	if err != nil {
		return nil, err
	}
	if search.UserID != userID {
		return nil, fmt.Errorf("saved search %s belongs to another user: %w", searchID, domain.ErrForbidden)
	}
	return search, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.SavedSearch, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, searchID, userID string, req domain.UpdateSavedSearchRequest) (*domain.SavedSearch, error) {
	search, err := s.Get(ctx, searchID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		search.Name = *req.Name
		updates["name"] = *req.Name
	}
	if req.Criteria != nil {
		// Criteria are replaced wholesale, never merged: the client always
		// submits the full filter set.
		search.Criteria = *req.Criteria
		updates["criteria"] = *req.Criteria
	}
	if req.AlertEnabled != nil {
		search.AlertEnabled = *req.AlertEnabled
		updates["alert_enabled"] = *req.AlertEnabled
	}
	if req.AlertFrequency != nil {
		search.AlertFrequency = *req.AlertFrequency
		updates["alert_frequency"] = *req.AlertFrequency
	}
	if len(updates) == 0 {
		return search, nil
	}

	if err := s.repo.Update(ctx, searchID, updates); err != nil {
		return nil, err
	}
	search.UpdatedAt = time.Now().UTC()
	return search, nil
}

func (s *service) Delete(ctx context.Context, searchID, userID string) error {
	if _, err := s.Get(ctx, searchID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, searchID)
}
