package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/gojo-homes/api/internal/domain"
	"github.com/gojo-homes/api/internal/pkg/id"
)

// Writer is the append-only surface the alert pipeline consumes.
type Writer interface {
	CreateBatch(ctx context.Context, notifications []domain.Notification) error
}

// Service handles the user-facing notification operations plus the bulk
// append used by the alert pipeline.
type Service interface {
	Writer
	ListUnread(ctx context.Context, userID string) ([]domain.Notification, error)
	Get(ctx context.Context, notificationID, userID string) (*domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID, userID string) (*domain.Notification, error)
}

type notificationStore interface {
	BatchPut(ctx context.Context, notifications []domain.Notification) error
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListUnread(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) error
}

type service struct {
	repo notificationStore
}

func NewService(repo notificationStore) Service {
	return &service{repo: repo}
}

// CreateBatch stamps ids and timestamps and performs one bulk insert.
func (s *service) CreateBatch(ctx context.Context, notifications []domain.Notification) error {
	now := time.Now().UTC()
	for i := range notifications {
		if notifications[i].NotificationID == "" {
			notifications[i].NotificationID = id.New()
		}
		if notifications[i].CreatedAt.IsZero() {
			notifications[i].CreatedAt = now
			notifications[i].UpdatedAt = now
		}
	}
	return s.repo.BatchPut(ctx, notifications)
}

func (s *service) ListUnread(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.repo.ListUnread(ctx, userID)
}

func (s *service) Get(ctx context.Context, notificationID, userID string) (*domain.Notification, error) {
	n, err := s.repo.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, fmt.Errorf("notification belongs to another user: %w", domain.ErrForbidden)
	}
	return n, nil
}

func (s *service) MarkAsRead(ctx context.Context, notificationID, userID string) (*domain.Notification, error) {
	n, err := s.Get(ctx, notificationID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkAsRead(ctx, notificationID); err != nil {
		return nil, err
	}
	n.Readed = 1
	return n, nil
}
