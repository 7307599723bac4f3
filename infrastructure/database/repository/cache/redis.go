package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	redisClient "lifex.health/infrastructure/database/connection/cache"
	"lifex.health/infrastructure/logger"
)

var (
	Cache RedisRepository
)

type RedisRepository struct {
	Client *redis.Client
}

func (redisRepo *RedisRepository) preRequest() {
	if redisRepo.Client == nil {
		client, _ := redisClient.GetInstance()
		redisRepo.Client = client.Client
		logger.Info("redis repository initialisation complete")
	}
}

func (redisRepo *RedisRepository) CreateEntry(key string, payload interface{}, ttl time.Duration) bool {
	redisRepo.preRequest()
	ctx := context.Background()
	_, err := redisRepo.Client.Set(ctx, key, payload, ttl).Result()
	if err != nil {
		logger.Error("redis error occured while running CreateEntry", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}

	logger.Info("redis CreateEntry completed")
	return true
}

// TakeOne fetches and deletes a key in one round trip so a value can
// only ever be consumed once.
func (redisRepo *RedisRepository) TakeOne(key string) *string {
	redisRepo.preRequest()
	ctx := context.Background()

	result, err := redisRepo.Client.GetDel(ctx, key).Result()

	if err != nil {
		if err.Error() == "redis: nil" {
			return nil
		}
		logger.Error("redis error occured while running TakeOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return nil
	}

	logger.Info("redis TakeOne completed")
	return &result
}

func (redisRepo *RedisRepository) DeleteOne(key string) bool {
	redisRepo.preRequest()
	ctx := context.Background()

	result, err := redisRepo.Client.Del(ctx, key).Result()

	if err != nil {
		logger.Error("redis error occured while running DeleteOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}
	if int(result) != 1 {
		return false
	}

	logger.Info("redis DeleteOne completed")
	return true
}

func (redisRepo *RedisRepository) IncrementField(key string, amount int64) int64 {
	redisRepo.preRequest()
	ctx := context.Background()

	result := redisRepo.Client.IncrBy(ctx, key, amount)
	if err := result.Err(); err != nil {
		logger.Error("redis error occured while running IncrementField", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return 0
	}
	logger.Info("redis IncrementField completed")
	return result.Val()
}

func (redisRepo *RedisRepository) SetTTL(key string, ttl time.Duration) bool {
	redisRepo.preRequest()
	ctx := context.Background()

	result := redisRepo.Client.Expire(ctx, key, ttl)
	if err := result.Err(); err != nil {
		logger.Error("redis error occured while running SetTTL", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}
	return result.Val()
}
