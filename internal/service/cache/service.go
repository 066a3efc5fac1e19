package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/inkmatch/inkmatch-server/internal/constants"
	"github.com/inkmatch/inkmatch-server/internal/domain"
	"github.com/inkmatch/inkmatch-server/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type CacheService struct {
	client *redis.Client
	logger *zap.Logger
}

type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewCacheService(cfg CacheConfig, logger *zap.Logger) (*CacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &CacheService{
		client: client,
		logger: logger,
	}, nil
}

func (c *CacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil // Key doesn't exist - not an error
	}
	if err != nil {
		c.logger.Error("Cache get failed", zap.String("key", key), zap.Error(err))
		return false, errors.NewCacheError("get failed", "get", key, err)
	}

	if dest != nil {
		if err := json.Unmarshal([]byte(value), dest); err != nil {
			c.logger.Error("Cache unmarshal failed", zap.String("key", key), zap.Error(err))
			return false, errors.NewCacheError("unmarshal failed", "get", key, err)
		}
	}

	return true, nil
}

func (c *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return errors.NewCacheError("marshal failed", "set", key, err)
	}

	if err := c.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		c.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("set failed", "set", key, err)
	}

	return nil
}

func (c *CacheService) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("Cache delete failed", zap.Int("keys", len(keys)), zap.Error(err))
		return errors.NewCacheError("delete failed", "del", fmt.Sprintf("%d keys", len(keys)), err)
	}
	return nil
}

// GetClassification looks up a cached classification result by image digest.
// Cache failures are reported as a miss; classification must never fail on a
// cache outage.
func (c *CacheService) GetClassification(ctx context.Context, digest string) (*domain.Classification, bool) {
	var result domain.Classification
	found, err := c.Get(ctx, constants.CacheKeyClassification+digest, &result)
	if err != nil || !found {
		return nil, false
	}
	return &result, true
}

func (c *CacheService) SetClassification(ctx context.Context, digest string, result *domain.Classification, ttl time.Duration) {
	if err := c.Set(ctx, constants.CacheKeyClassification+digest, result, ttl); err != nil {
		c.logger.Warn("Failed to cache classification", zap.String("digest", digest), zap.Error(err))
	}
}

// GetArtist returns a cached artist profile, treating errors as misses.
func (c *CacheService) GetArtist(ctx context.Context, artistID string) (*domain.Artist, bool) {
	var artist domain.Artist
	found, err := c.Get(ctx, constants.CacheKeyArtist+artistID, &artist)
	if err != nil || !found {
		return nil, false
	}
	return &artist, true
}

func (c *CacheService) SetArtist(ctx context.Context, artist *domain.Artist, ttl time.Duration) {
	if artist == nil || artist.ID == "" {
		return
	}
	if err := c.Set(ctx, constants.CacheKeyArtist+artist.ID, artist, ttl); err != nil {
		c.logger.Warn("Failed to cache artist", zap.String("artist_id", artist.ID), zap.Error(err))
	}
}

func (c *CacheService) InvalidateArtist(ctx context.Context, artistID string) {
	if err := c.Del(ctx, constants.CacheKeyArtist+artistID); err != nil {
		c.logger.Warn("Failed to invalidate artist cache", zap.String("artist_id", artistID), zap.Error(err))
	}
}

func (c *CacheService) IsConnected(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}

func (c *CacheService) Close() error {
	if err := c.client.Close(); err != nil {
		c.logger.Error("Failed to close Redis connection", zap.Error(err))
		return err
	}
	c.logger.Info("Redis disconnected")
	return nil
}
