package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/config"
)

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	CacheTaskSummary(ctx context.Context, summary *models.TaskSummary, expiration time.Duration) error
	GetTaskSummary(ctx context.Context, professionalID string) (*models.TaskSummary, error)
	DeleteTaskSummary(ctx context.Context, professionalID string) error
	Ping(ctx context.Context) error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
}

// NewRedisClient creates a client for the configured Redis server
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisService creates a new Redis service
func NewRedisService(client *redis.Client) InterfaceRedisService {
	return &RedisService{Client: client}
}

// 1 Set stores value as JSON under key with expiration
func (s *RedisService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, key, jsonValue, expiration).Err()
}

// 2 Get decodes the JSON stored under key into dest. A missing key returns redis.Nil.
func (s *RedisService) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := s.Client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

// 3 Delete deletes a key from Redis
func (s *RedisService) Delete(ctx context.Context, key string) error {
	return s.Client.Del(ctx, key).Err()
}

func taskSummaryKey(professionalID string) string {
	return "task_summary:" + professionalID
}

// 4 CacheTaskSummary caches a professional's task summary with expiration
func (s *RedisService) CacheTaskSummary(ctx context.Context, summary *models.TaskSummary, expiration time.Duration) error {
	return s.Set(ctx, taskSummaryKey(summary.ProfessionalID), summary, expiration)
}

// 5 GetTaskSummary returns the cached summary, or nil on a cache miss
func (s *RedisService) GetTaskSummary(ctx context.Context, professionalID string) (*models.TaskSummary, error) {
	var summary models.TaskSummary
	err := s.Get(ctx, taskSummaryKey(professionalID), &summary)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// 6 DeleteTaskSummary drops a cached summary
func (s *RedisService) DeleteTaskSummary(ctx context.Context, professionalID string) error {
	return s.Delete(ctx, taskSummaryKey(professionalID))
}

// 7 Ping checks the connection
func (s *RedisService) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
