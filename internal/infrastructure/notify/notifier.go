package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"homeserve.backend/pkg/logger"
	"homeserve.backend/pkg/redis"
)

const channel = "notifications"

// Message is the payload published for each notification
type Message struct {
	UserID    uuid.UUID `json:"userId"`
	Event     string    `json:"event"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RedisNotifier publishes notifications on a Redis channel for downstream
// delivery (email, push). Publishing is best effort: failures are logged and
// never reach the caller.
type RedisNotifier struct {
	publish func(ctx context.Context, channel string, payload interface{}) error
	now     func() time.Time
}

// NewRedisNotifier creates a notifier backed by the shared Redis client
func NewRedisNotifier() *RedisNotifier {
	return &RedisNotifier{
		publish: redis.Publish,
		now:     time.Now,
	}
}

// Notify publishes a notification event for the given user
func (n *RedisNotifier) Notify(ctx context.Context, userID uuid.UUID, event, message string) {
	payload, err := json.Marshal(Message{
		UserID:    userID,
		Event:     event,
		Message:   message,
		Timestamp: n.now().UTC(),
	})
	if err != nil {
		logger.Error(ctx, "failed to encode notification", zap.Error(err))
		return
	}

	if err := n.publish(ctx, channel, payload); err != nil {
		logger.Warn(ctx, "failed to publish notification",
			zap.String("event", event),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}

	logger.Debug(ctx, "notification published",
		zap.String("event", event),
		zap.String("user_id", userID.String()),
	)
}
