package notifier

import (
	"context"
	"encoding/json"
	"fmt"
)

// ChannelPrefix префикс каналов Redis Pub/Sub с событиями пользователя
const ChannelPrefix = "notifications:user:"

// RedisNotifier публикует уведомления в Redis Pub/Sub
// Доставку до клиента выполняет чат-транспорт, подписанный на канал пользователя
type RedisNotifier struct {
	publisher Publisher
}

// NewRedisNotifier создает новый экземпляр notifier
func NewRedisNotifier(publisher Publisher) *RedisNotifier {
	return &RedisNotifier{publisher: publisher}
}

// NotifyUser публикует уведомление в канал пользователя
func (n *RedisNotifier) NotifyUser(ctx context.Context, userID int64, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	if err := n.publisher.Publish(ctx, Channel(userID), payload).Err(); err != nil {
		return fmt.Errorf("%w: user_id=%d: %v", ErrPublish, userID, err)
	}

	return nil
}

// Channel возвращает имя канала пользователя
func Channel(userID int64) string {
	return fmt.Sprintf("%s%d", ChannelPrefix, userID)
}
