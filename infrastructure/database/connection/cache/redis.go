package cache

import (
	"os"

	"github.com/redis/go-redis/v9"
	"lifex.health/infrastructure/logger"
)

var (
	Client *redis.Client
)

type CacheClient struct {
	Client *redis.Client
}

func ConnectToCache() {
	connectRedis()
}

func GetInstance() (*CacheClient, error) {
	if Client == nil {
		connectRedis()
	}
	return &CacheClient{Client: Client}, nil
}

func connectRedis() {
	opt := &redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
		PoolSize: 10,
	}
	Client = redis.NewClient(opt)
	logger.Info("connected to redis successfully")
}
