package sitevisit

import (
	"context"
	"errors"
	"testing"

	"github.com/gojo-homes/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockVisitStore struct{ mock.Mock }

func (m *mockVisitStore) Put(ctx context.Context, v *domain.SiteVisit) error {
	return m.Called(ctx, v).Error(0)
}
func (m *mockVisitStore) Get(ctx context.Context, visitID string) (*domain.SiteVisit, error) {
	args := m.Called(ctx, visitID)
	if v, _ := args.Get(0).(*domain.SiteVisit); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockVisitStore) ListByUser(ctx context.Context, userID string) ([]domain.SiteVisit, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.SiteVisit), args.Error(1)
}
func (m *mockVisitStore) ListByAgent(ctx context.Context, agentID string) ([]domain.SiteVisit, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).([]domain.SiteVisit), args.Error(1)
}
func (m *mockVisitStore) UpdateStatus(ctx context.Context, visitID, status string) error {
	return m.Called(ctx, visitID, status).Error(0)
}

type mockListingStore struct{ mock.Mock }

func (m *mockListingStore) Get(ctx context.Context, listingID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if l, _ := args.Get(0).(*domain.Listing); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) CreateBatch(ctx context.Context, ns []domain.Notification) error {
	return m.Called(ctx, ns).Error(0)
}

func boleHouse() *domain.Listing {
	return &domain.Listing{
		ListingID: "L1",
		Title:     "House in Bole",
		Status:    domain.ListingStatusActive,
		CreatedBy: "agent-1",
	}
}

func TestRequest_ResolvesAgentAndNotifies(t *testing.T) {
	visits := &mockVisitStore{}
	listings := &mockListingStore{}
	notices := &mockNotifier{}
	listings.On("Get", mock.Anything, "L1").Return(boleHouse(), nil)
	visits.On("Put", mock.Anything, mock.MatchedBy(func(v *domain.SiteVisit) bool {
		return v.AgentID == "agent-1" && v.Status == domain.VisitRequested && v.VisitID != ""
	})).Return(nil)
	notices.On("CreateBatch", mock.Anything, mock.MatchedBy(func(ns []domain.Notification) bool {
		return len(ns) == 1 && ns[0].UserID == "agent-1" && ns[0].Category == domain.CategorySiteVisit
	})).Return(nil)

	svc := NewService(ServiceDeps{Repo: visits, Listings: listings, Notifications: notices})
	v, err := svc.Request(context.Background(), "u1", domain.CreateSiteVisitRequest{
		ListingID: "L1",
		VisitDate: "2026-09-05",
	})

	require.NoError(t, err)
	assert.Equal(t, "agent-1", v.AgentID)
	visits.AssertExpectations(t)
	notices.AssertExpectations(t)
}

func TestRequest_InactiveListingRejected(t *testing.T) {
	visits := &mockVisitStore{}
	listings := &mockListingStore{}
	l := boleHouse()
	l.Status = domain.ListingStatusPending
	listings.On("Get", mock.Anything, "L1").Return(l, nil)

	svc := NewService(ServiceDeps{Repo: visits, Listings: listings})
	_, err := svc.Request(context.Background(), "u1", domain.CreateSiteVisitRequest{
		ListingID: "L1",
		VisitDate: "2026-09-05",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	visits.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSetStatus_OnlyListingAgentDecides(t *testing.T) {
	visits := &mockVisitStore{}
	visits.On("Get", mock.Anything, "v1").Return(&domain.SiteVisit{
		VisitID: "v1", AgentID: "agent-1", Status: domain.VisitRequested,
	}, nil)

	svc := NewService(ServiceDeps{Repo: visits, Listings: &mockListingStore{}})
	_, err := svc.SetStatus(context.Background(), "v1", "agent-2", domain.VisitConfirmed)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestSetStatus_AlreadyDecidedIsConflict(t *testing.T) {
	visits := &mockVisitStore{}
	visits.On("Get", mock.Anything, "v1").Return(&domain.SiteVisit{
		VisitID: "v1", AgentID: "agent-1", Status: domain.VisitConfirmed,
	}, nil)

	svc := NewService(ServiceDeps{Repo: visits, Listings: &mockListingStore{}})
	_, err := svc.SetStatus(context.Background(), "v1", "agent-1", domain.VisitDeclined)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestSetStatus_ConfirmNotifiesRequester(t *testing.T) {
	visits := &mockVisitStore{}
	notices := &mockNotifier{}
	visits.On("Get", mock.Anything, "v1").Return(&domain.SiteVisit{
		VisitID: "v1", UserID: "u1", AgentID: "agent-1", ListingID: "L1",
		VisitDate: "2026-09-05", Status: domain.VisitRequested,
	}, nil)
	visits.On("UpdateStatus", mock.Anything, "v1", domain.VisitConfirmed).Return(nil)
	notices.On("CreateBatch", mock.Anything, mock.MatchedBy(func(ns []domain.Notification) bool {
		return len(ns) == 1 && ns[0].UserID == "u1"
	})).Return(nil)

	svc := NewService(ServiceDeps{Repo: visits, Listings: &mockListingStore{}, Notifications: notices})
	v, err := svc.SetStatus(context.Background(), "v1", "agent-1", domain.VisitConfirmed)

	require.NoError(t, err)
	assert.Equal(t, domain.VisitConfirmed, v.Status)
	notices.AssertExpectations(t)
}
