package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// Stream carrying an audit record for every star message the bot
// creates, edits or removes. Consumers are external (dashboards, moderation
// tooling); nothing in the bot reads it back.
const streamStarEvents = "accord.starboard.events"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

func PublishStarEvent(ctx context.Context, rdb *redis.Client, values map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamStarEvents,
		Values: values,
	}).Result()
	return err
}

// StreamPublisher adapts the Redis stream to the engine's audit interface.
type StreamPublisher struct {
	RDB *redis.Client
}

func (p StreamPublisher) Publish(values map[string]interface{}) error {
	return PublishStarEvent(context.Background(), p.RDB, values)
}
