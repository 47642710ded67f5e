package listing

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gojo-homes/api/internal/domain"
	"github.com/gojo-homes/api/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, l *domain.Listing) error {
	return m.Called(ctx, l).Error(0)
}
func (m *mockStore) Get(ctx context.Context, listingID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if l, _ := args.Get(0).(*domain.Listing); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Update(ctx context.Context, listingID string, updates map[string]interface{}) error {
	return m.Called(ctx, listingID, updates).Error(0)
}
func (m *mockStore) Delete(ctx context.Context, listingID string) error {
	return m.Called(ctx, listingID).Error(0)
}
func (m *mockStore) QueryActive(ctx context.Context, filter domain.ListingFilter, limit int32) ([]domain.Listing, error) {
	args := m.Called(ctx, filter, limit)
	return args.Get(0).([]domain.Listing), args.Error(1)
}
func (m *mockStore) ListByAgent(ctx context.Context, agentID string) ([]domain.Listing, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

type mockEngine struct{ mock.Mock }

func (m *mockEngine) ListingActivated(listingID string) { m.Called(listingID) }

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated chan struct{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, invalidated: make(chan struct{}, 1)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	return data, ok
}

func (c *fakeCache) Set(_ context.Context, key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = payload
}

func (c *fakeCache) InvalidateBrowse(_ context.Context) {
	select {
	case c.invalidated <- struct{}{}:
	default:
	}
}

func createReq() domain.CreateListingRequest {
	price := 1500000.0
	return domain.CreateListingRequest{
		Title:    "House in Bole",
		Type:     "house",
		Purpose:  domain.PurposeSale,
		Price:    &price,
		Location: domain.Location{City: "Addis Ababa", SubCity: "Bole"},
	}
}

func TestCreate_AgentSubmissionStartsPending(t *testing.T) {
	st := &mockStore{}
	eng := &mockEngine{}
	st.On("Put", mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.Status == domain.ListingStatusPending && l.ListingID != "" && l.CreatedBy == "agent-1"
	})).Return(nil)

	svc := NewService(ServiceDeps{Repo: st, Alerts: eng})
	l, err := svc.Create(context.Background(), "agent-1", domain.RoleAgent, createReq())

	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusPending, l.Status)
	assert.Equal(t, "ETB", l.Currency)
	eng.AssertNotCalled(t, "ListingActivated", mock.Anything)
	st.AssertExpectations(t)
}

func TestCreate_AdminSubmissionGoesLiveAndTriggersAlerts(t *testing.T) {
	st := &mockStore{}
	eng := &mockEngine{}
	st.On("Put", mock.Anything, mock.Anything).Return(nil)
	eng.On("ListingActivated", mock.Anything).Return()

	svc := NewService(ServiceDeps{Repo: st, Alerts: eng})
	l, err := svc.Create(context.Background(), "admin-1", domain.RoleAdmin, createReq())

	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusActive, l.Status)
	eng.AssertCalled(t, "ListingActivated", l.ListingID)
}

func TestApprove_PendingListingGoesActive(t *testing.T) {
	st := &mockStore{}
	eng := &mockEngine{}
	st.On("Get", mock.Anything, "L1").Return(&domain.Listing{
		ListingID: "L1", Status: domain.ListingStatusPending,
	}, nil)
	st.On("Update", mock.Anything, "L1", map[string]interface{}{
		"status": domain.ListingStatusActive,
	}).Return(nil)
	eng.On("ListingActivated", "L1").Return()

	svc := NewService(ServiceDeps{Repo: st, Alerts: eng})
	l, err := svc.Approve(context.Background(), "L1")

	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusActive, l.Status)
	eng.AssertExpectations(t)
}

func TestApprove_NonPendingListingIsConflict(t *testing.T) {
	st := &mockStore{}
	eng := &mockEngine{}
	st.On("Get", mock.Anything, "L1").Return(&domain.Listing{
		ListingID: "L1", Status: domain.ListingStatusActive,
	}, nil)

	svc := NewService(ServiceDeps{Repo: st, Alerts: eng})
	_, err := svc.Approve(context.Background(), "L1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	eng.AssertNotCalled(t, "ListingActivated", mock.Anything)
}

func TestUpdate_NonOwnerForbidden(t *testing.T) {
	st := &mockStore{}
	st.On("Get", mock.Anything, "L1").Return(&domain.Listing{
		ListingID: "L1", CreatedBy: "agent-1",
	}, nil)

	svc := NewService(ServiceDeps{Repo: st})
	title := "new title"
	_, err := svc.Update(context.Background(), "agent-2", domain.RoleAgent, "L1", domain.UpdateListingRequest{Title: &title})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	st.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_StatusChangeRequiresAdmin(t *testing.T) {
	st := &mockStore{}
	st.On("Get", mock.Anything, "L1").Return(&domain.Listing{
		ListingID: "L1", CreatedBy: "agent-1", Status: domain.ListingStatusPending,
	}, nil)

	svc := NewService(ServiceDeps{Repo: st})
	status := domain.ListingStatusActive
	_, err := svc.Update(context.Background(), "agent-1", domain.RoleAgent, "L1", domain.UpdateListingRequest{Status: &status})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestUpdate_OwnerEditsNestedBlocks(t *testing.T) {
	st := &mockStore{}
	st.On("Get", mock.Anything, "L1").Return(&domain.Listing{
		ListingID: "L1", CreatedBy: "agent-1",
		Location: domain.Location{City: "Addis Ababa"},
	}, nil)
	st.On("Update", mock.Anything, "L1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		loc, ok := updates["location"].(domain.Location)
		return ok && loc.City == "Addis Ababa" && loc.SubCity == "Yeka"
	})).Return(nil)

	svc := NewService(ServiceDeps{Repo: st})
	sub := "Yeka"
	l, err := svc.Update(context.Background(), "agent-1", domain.RoleAgent, "L1", domain.UpdateListingRequest{SubCity: &sub})

	require.NoError(t, err)
	assert.Equal(t, "Addis Ababa", l.Location.City)
	assert.Equal(t, "Yeka", l.Location.SubCity)
	st.AssertExpectations(t)
}

func TestBrowse_CacheMissQueriesAndFills(t *testing.T) {
	st := &mockStore{}
	c := newFakeCache()
	filter := domain.ListingFilter{City: "addis"}
	listings := []domain.Listing{{ListingID: "L1"}, {ListingID: "L2"}}
	st.On("QueryActive", mock.Anything, filter, int32(20)).Return(listings, nil)

	svc := NewService(ServiceDeps{Repo: st, Cache: c})
	got, err := svc.Browse(context.Background(), filter, 0)

	require.NoError(t, err)
	assert.Equal(t, listings, got)

	cached, ok := c.Get(context.Background(), cache.BrowseKey(filter, 20))
	require.True(t, ok)
	var fromCache []domain.Listing
	require.NoError(t, json.Unmarshal(cached, &fromCache))
	assert.Len(t, fromCache, 2)
}

func TestBrowse_CacheHitSkipsStore(t *testing.T) {
	st := &mockStore{}
	c := newFakeCache()
	filter := domain.ListingFilter{City: "addis"}
	payload, _ := json.Marshal([]domain.Listing{{ListingID: "L1"}})
	c.Set(context.Background(), cache.BrowseKey(filter, 20), payload)

	svc := NewService(ServiceDeps{Repo: st, Cache: c})
	got, err := svc.Browse(context.Background(), filter, 20)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	st.AssertNotCalled(t, "QueryActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_InvalidatesBrowseCache(t *testing.T) {
	st := &mockStore{}
	c := newFakeCache()
	st.On("Get", mock.Anything, "L1").Return(&domain.Listing{ListingID: "L1", CreatedBy: "agent-1"}, nil)
	st.On("Delete", mock.Anything, "L1").Return(nil)

	svc := NewService(ServiceDeps{Repo: st, Cache: c})
	require.NoError(t, svc.Delete(context.Background(), "agent-1", domain.RoleAgent, "L1"))

	select {
	case <-c.invalidated:
	case <-time.After(time.Second):
		t.Fatal("browse cache was not invalidated")
	}
}
