package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/redis/go-redis/v9"
)

const publishTimeout = time.Second

// Connect opens a Redis client and checks it answers. The caller decides
// whether a failure is fatal.
func Connect(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log.Println("[REDIS] Connected successfully")
	return client, nil
}

type publishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher pushes every board update to <prefix>:<gameID> so a
// renderer running in another process can follow a game.
type RedisPublisher struct {
	client publishClient
	prefix string
}

func NewRedisPublisher(client publishClient, prefix string) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: prefix}
}

func (p *RedisPublisher) Channel(gameID string) string {
	return p.prefix + ":" + gameID
}

// Notify implements game.Notifier. Failures are logged and never reach the
// game.
func (p *RedisPublisher) Notify(snapshot game.Snapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("[REDIS] Failed to marshal snapshot for game %s: %v", snapshot.GameID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.Channel(snapshot.GameID), payload).Err(); err != nil {
		log.Printf("[REDIS] Publish failed for game %s: %v", snapshot.GameID, err)
	}
}
