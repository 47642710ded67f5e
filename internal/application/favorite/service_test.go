package favorite

import (
	"context"
	"errors"
	"testing"

	"github.com/gojo-homes/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFavoriteStore struct{ mock.Mock }

func (m *mockFavoriteStore) Put(ctx context.Context, f *domain.Favorite) error {
	return m.Called(ctx, f).Error(0)
}
func (m *mockFavoriteStore) Get(ctx context.Context, favoriteID string) (*domain.Favorite, error) {
	args := m.Called(ctx, favoriteID)
	if f, _ := args.Get(0).(*domain.Favorite); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockFavoriteStore) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Favorite), args.Error(1)
}
func (m *mockFavoriteStore) Delete(ctx context.Context, favoriteID string) error {
	return m.Called(ctx, favoriteID).Error(0)
}

type mockListingStore struct{ mock.Mock }

func (m *mockListingStore) Get(ctx context.Context, listingID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if l, _ := args.Get(0).(*domain.Listing); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAdd_DuplicateListingIsConflict(t *testing.T) {
	favs := &mockFavoriteStore{}
	listings := &mockListingStore{}
	listings.On("Get", mock.Anything, "L1").Return(&domain.Listing{ListingID: "L1"}, nil)
	favs.On("ListByUser", mock.Anything, "u1").Return([]domain.Favorite{
		{FavoriteID: "f1", UserID: "u1", ListingID: "L1"},
	}, nil)

	svc := NewService(favs, listings)
	_, err := svc.Add(context.Background(), "u1", "L1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	favs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestAdd_MissingListingRejected(t *testing.T) {
	favs := &mockFavoriteStore{}
	listings := &mockListingStore{}
	listings.On("Get", mock.Anything, "L9").Return(nil, domain.ErrNotFound)

	svc := NewService(favs, listings)
	_, err := svc.Add(context.Background(), "u1", "L9")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCompare_SkipsDeletedListings(t *testing.T) {
	favs := &mockFavoriteStore{}
	listings := &mockListingStore{}
	favs.On("ListByUser", mock.Anything, "u1").Return([]domain.Favorite{
		{FavoriteID: "f1", UserID: "u1", ListingID: "L1"},
		{FavoriteID: "f2", UserID: "u1", ListingID: "L2"},
	}, nil)
	listings.On("Get", mock.Anything, "L1").Return(&domain.Listing{ListingID: "L1"}, nil)
	listings.On("Get", mock.Anything, "L2").Return(nil, domain.ErrNotFound)

	svc := NewService(favs, listings)
	got, err := svc.Compare(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "L1", got[0].ListingID)
}

func TestRemove_OwnerOnly(t *testing.T) {
	favs := &mockFavoriteStore{}
	listings := &mockListingStore{}
	favs.On("Get", mock.Anything, "f1").Return(&domain.Favorite{FavoriteID: "f1", UserID: "owner"}, nil)

	svc := NewService(favs, listings)
	err := svc.Remove(context.Background(), "f1", "intruder")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	favs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
