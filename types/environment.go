package types

import (
	"github.com/redis/go-redis/v9"
)

// Environment holds shared clients passed down to services
type Environment struct {
	RedisClient *redis.Client
}

func NewEnvironment(redisClient *redis.Client) *Environment {
	return &Environment{
		RedisClient: redisClient,
	}
}
