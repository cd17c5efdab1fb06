package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles notification business logic
type Service struct {
	repo Repository
	hub  *Hub // nil disables realtime pushes
}

// NewService creates notification service
func NewService(repo Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

// wsEvent is the payload pushed over the notification WebSocket
type wsEvent struct {
	Type         string                `json:"type"`
	Notification *NotificationResponse `json:"notification"`
}

// Notify stores a notification and pushes it to the user's open connections.
// A failed push is logged, not returned: the stored row is the source of truth.
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, kind, title, message string) error {
	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		event := &wsEvent{Type: "notification:new", Notification: ToResponse(n)}
		if err := s.hub.SendToUser(userID, event); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to push notification")
		}
	}

	return nil
}

// List returns the user's notifications, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Notification, int, error) {
	offset := (page - 1) * limit
	notifications, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// UnreadCount returns how many notifications the user has not read
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotFound
	}
	if n.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead marks every unread notification of the user as read
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
