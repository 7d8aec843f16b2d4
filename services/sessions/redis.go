package sessions

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the token bindings in Redis so they survive restarts and
// are shared by every server process.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(addr string, db int) *RedisStore {
	var client *redis.Client
	if addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisStore{
		client: client,
		ctx:    context.Background(),
	}
}

// InitRedis initializes the Redis connection and verifies it with a ping
func InitRedis(addr string, db int) (*RedisStore, error) {
	rs := NewRedisStore(addr, db)
	if err := rs.client.Ping(rs.ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}
	log.Println("Successfully connected to Redis")
	return rs, nil
}

// CloseRedis gracefully closes the Redis connection
func CloseRedis(rs *RedisStore) error {
	if err := rs.client.Close(); err != nil {
		return fmt.Errorf("error closing Redis connection: %v", err)
	}
	return nil
}

// Key format: "session:{token}"
func formatSessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (rs *RedisStore) Bind(token string, playerID uint, ttl time.Duration) error {
	key := formatSessionKey(token)
	if err := rs.client.Set(rs.ctx, key, uint64(playerID), ttl).Err(); err != nil {
		return fmt.Errorf("error storing session binding: %v", err)
	}
	return nil
}

func (rs *RedisStore) Lookup(token string) (uint, bool, error) {
	key := formatSessionKey(token)
	val, err := rs.client.Get(rs.ctx, key).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("error resolving session token: %v", err)
	}
	playerID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("error parsing session binding: %v", err)
	}
	return uint(playerID), true, nil
}

func (rs *RedisStore) Revoke(token string) error {
	key := formatSessionKey(token)
	if err := rs.client.Del(rs.ctx, key).Err(); err != nil {
		return fmt.Errorf("error revoking session token: %v", err)
	}
	return nil
}
