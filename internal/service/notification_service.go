package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aydocorp/portal-api/internal/events"
)

// NotificationService surfaces reconciliation outcomes to operators. Today it
// logs; the webhook hook is where a Discord announcement would plug in.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to sync events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSyncCompleted, n.handleSyncCompleted)
	n.dispatcher.Subscribe(events.EventSyncFailed, n.handleSyncFailed)
}

func (n *NotificationService) handleSyncCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("SyncCompleted", zap.String("domain", event.Domain), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleSyncFailed(ctx context.Context, event events.Event) error {
	n.logger.Warn("SyncFailed", zap.String("domain", event.Domain), zap.Any("payload", event.Payload))
	return nil
}
