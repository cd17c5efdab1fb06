package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type fakeNotificationRepo struct {
	notifications map[uuid.UUID]*Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[uuid.UUID]*Notification{}}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *Notification) error {
	f.notifications[n.ID] = n
	return nil
}
func (f *fakeNotificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	return f.notifications[id], nil
}
func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, error) {
	var out []*Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}
func (f *fakeNotificationRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	list, _ := f.ListByUser(ctx, userID, 0, 0)
	return len(list), nil
}
func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}
func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	n := f.notifications[id]
	if n == nil {
		return ErrNotFound
	}
	n.IsRead = true
	return nil
}
func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	marked := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			marked++
		}
	}
	return marked, nil
}

func TestNotifyStoresUnreadNotification(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	userID := uuid.New()

	if err := svc.Notify(ctx, userID, "booking.created", "New booking", "details"); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	unread, _ := svc.UnreadCount(ctx, userID)
	if unread != 1 {
		t.Fatalf("expected 1 unread, got %d", unread)
	}
}

func TestMarkReadChecksOwnership(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	userID := uuid.New()

	if err := svc.Notify(ctx, userID, "booking.created", "New booking", "details"); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	var id uuid.UUID
	for nid := range repo.notifications {
		id = nid
	}

	if err := svc.MarkRead(ctx, id, uuid.New()); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.MarkRead(ctx, id, userID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}

	unread, _ := svc.UnreadCount(ctx, userID)
	if unread != 0 {
		t.Fatalf("expected 0 unread, got %d", unread)
	}
}

func TestMarkAllReadReportsCount(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		svc.Notify(ctx, userID, "booking.created", "New booking", "details")
	}
	svc.Notify(ctx, uuid.New(), "booking.created", "Other user", "details")

	marked, err := svc.MarkAllRead(ctx, userID)
	if err != nil {
		t.Fatalf("mark all read failed: %v", err)
	}
	if marked != 3 {
		t.Fatalf("expected 3 marked, got %d", marked)
	}
}
