package notification

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kintaihq/kintai-backend-go/internal/domain/notification"
	"github.com/kintaihq/kintai-backend-go/internal/pkg/sse"
)

type NotificationServiceImpl struct {
	notification.NotificationRepository
	hub *sse.Hub
}

func NewNotificationService(repo notification.NotificationRepository, hub *sse.Hub) notification.NotificationService {
	return &NotificationServiceImpl{
		NotificationRepository: repo,
		hub:                    hub,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

func toResponse(n notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.ReadAt != nil,
		CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Notify implements notification.NotificationService. The userID is passed
// explicitly because the sweep runs outside any request context.
func (s *NotificationServiceImpl) Notify(ctx context.Context, userID string, t notification.Type, title, body string) error {
	created, err := s.NotificationRepository.Create(ctx, notification.Notification{
		UserID: userID,
		Type:   t,
		Title:  title,
		Body:   body,
	})
	if err != nil {
		return err
	}

	s.hub.Publish(userID, sse.Event{
		UserID: userID,
		Event:  "notification",
		Data:   toResponse(created),
	})

	return nil
}

// ListMine implements notification.NotificationService.
func (s *NotificationServiceImpl) ListMine(ctx context.Context, limit int) (*notification.ListNotificationResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	notifications, err := s.NotificationRepository.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.NotificationRepository.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &notification.ListNotificationResponse{
		UnreadCount:   unread,
		Notifications: []notification.NotificationResponse{},
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, toResponse(n))
	}

	return resp, nil
}

// MarkRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.NotificationRepository.MarkRead(ctx, userID, id)
}

// MarkAllRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.NotificationRepository.MarkAllRead(ctx, userID)
}
