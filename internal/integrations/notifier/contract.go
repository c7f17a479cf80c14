package notifier

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Publisher часть redis.UniversalClient, нужная для публикации
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}
