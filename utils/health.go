package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

func (h HealthStatus) Healthy() bool { return h.Mongo && h.Redis }

// CheckHealth pings MongoDB through mongoPing and every configured Redis client.
func CheckHealth(ctx context.Context, mongoPing func(context.Context) error, redisClients ...*redis.Client) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := HealthStatus{Mongo: mongoPing(ctx) == nil, Redis: true, CheckedAt: time.Now()}
	for _, client := range redisClients {
		if client == nil || client.Ping(ctx).Err() != nil {
			status.Redis = false
		}
	}
	return status
}
