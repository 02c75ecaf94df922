package notification

import "context"

type NotificationService interface {
	// Notify persists a notification and pushes it to the user's live
	// stream when one is open.
	Notify(ctx context.Context, userID string, t Type, title, body string) error
	ListMine(ctx context.Context, limit int) (*ListNotificationResponse, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}
