package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"ms-hotelbooking/internal/models"
)

const hotelsKey = "cache:hotels"

// RedisCache keeps the hotel listing, which is reference data, out of the
// read path for its TTL.
type RedisCache struct {
	client    *redis.Client
	hotelsTTL time.Duration
}

func NewRedisCache(client *redis.Client, hotelsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, hotelsTTL: hotelsTTL}
}

// GetHotels returns the cached listing, or nil on a miss.
func (c *RedisCache) GetHotels(ctx context.Context) ([]models.Hotel, error) {
	data, err := c.client.Get(ctx, hotelsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var hotels []models.Hotel
	if err := json.Unmarshal(data, &hotels); err != nil {
		return nil, err
	}
	return hotels, nil
}

func (c *RedisCache) SetHotels(ctx context.Context, hotels []models.Hotel) error {
	payload, err := json.Marshal(hotels)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, hotelsKey, payload, c.hotelsTTL).Err()
}
