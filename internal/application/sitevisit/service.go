package sitevisit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gojo-homes/api/internal/application/notification"
	"github.com/gojo-homes/api/internal/domain"
	"github.com/gojo-homes/api/internal/pkg/id"
)

// Service handles site-visit requests: a user asks to tour a listed
// property, and the listing agent confirms or declines.
type Service interface {
	Request(ctx context.Context, userID string, req domain.CreateSiteVisitRequest) (*domain.SiteVisit, error)
	ListForUser(ctx context.Context, userID string) ([]domain.SiteVisit, error)
	ListForAgent(ctx context.Context, agentID string) ([]domain.SiteVisit, error)
	SetStatus(ctx context.Context, visitID, agentID, status string) (*domain.SiteVisit, error)
}

type visitStore interface {
	Put(ctx context.Context, v *domain.SiteVisit) error
	Get(ctx context.Context, visitID string) (*domain.SiteVisit, error)
	ListByUser(ctx context.Context, userID string) ([]domain.SiteVisit, error)
	ListByAgent(ctx context.Context, agentID string) ([]domain.SiteVisit, error)
	UpdateStatus(ctx context.Context, visitID, status string) error
}

type listingStore interface {
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
}

// ServiceDeps holds the dependencies of the site-visit service.
// Notifications is optional; nil disables the in-app notices.
type ServiceDeps struct {
	Repo          visitStore
	Listings      listingStore
	Notifications notification.Writer
}

type service struct {
	repo     visitStore
	listings listingStore
	notices  notification.Writer
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:     deps.Repo,
		listings: deps.Listings,
		notices:  deps.Notifications,
	}
}

// Request files a visit request against an active listing. The listing's
// agent is resolved from the listing itself and gets an in-app notice.
func (s *service) Request(ctx context.Context, userID string, req domain.CreateSiteVisitRequest) (*domain.SiteVisit, error) {
	l, err := s.listings.Get(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if l.Status != domain.ListingStatusActive {
		return nil, fmt.Errorf("listing %s is not active: %w", req.ListingID, domain.ErrConflict)
	}

	now := time.Now().UTC()
	v := &domain.SiteVisit{
		VisitID:   id.New(),
		ListingID: l.ListingID,
		UserID:    userID,
		AgentID:   l.CreatedBy,
		VisitDate: req.VisitDate,
		Note:      req.Note,
		Status:    domain.VisitRequested,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, v); err != nil {
		return nil, err
	}

	s.notify(ctx, v.AgentID, v.ListingID,
		fmt.Sprintf("Visit requested for %s on %s", l.Title, v.VisitDate))
	return v, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]domain.SiteVisit, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListForAgent(ctx context.Context, agentID string) ([]domain.SiteVisit, error) {
	return s.repo.ListByAgent(ctx, agentID)
}

// SetStatus confirms or declines a requested visit. Only the listing's
// agent may decide, and only once.
func (s *service) SetStatus(ctx context.Context, visitID, agentID, status string) (*domain.SiteVisit, error) {
	v, err := s.repo.Get(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if v.AgentID != agentID {
		return nil, fmt.Errorf("visit %s belongs to another agent: %w", visitID, domain.ErrForbidden)
	}
	if v.Status != domain.VisitRequested {
		return nil, fmt.Errorf("visit %s already %s: %w", visitID, v.Status, domain.ErrConflict)
	}

	if err := s.repo.UpdateStatus(ctx, visitID, status); err != nil {
		return nil, err
	}
	v.Status = status
	v.UpdatedAt = time.Now().UTC()

	s.notify(ctx, v.UserID, v.ListingID,
		fmt.Sprintf("Your visit on %s was %s", v.VisitDate, status))
	return v, nil
}

// notify writes a best-effort in-app notice; failures are logged, never
// surfaced.
func (s *service) notify(ctx context.Context, userID, listingID, message string) {
	if s.notices == nil {
		return
	}
	err := s.notices.CreateBatch(ctx, []domain.Notification{{
		UserID:    userID,
		Message:   message,
		Category:  domain.CategorySiteVisit,
		ListingID: listingID,
	}})
	if err != nil {
		log.Printf("sitevisit: notify user %s: %v", userID, err)
	}
}
