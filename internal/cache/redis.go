// Package cache keeps read-side booking state in redis: free-seat
// counters per session, cached seat maps, and sales tallies. The
// counters are advisory; the database holds the occupancy truth and
// every counter mutation happens after the store committed.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

var ctx = context.Background()

type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(url string) (*RedisCache, error) {
	client := redis.NewClient(
		&redis.Options{
			Addr:     url,
			Password: "",
			DB:       0,
		},
	)
	return &RedisCache{Client: client}, nil
}

// Init wipes the cache and seeds the free-seat counter for every
// known session.
func (r *RedisCache) Init(sessionFreeSeats map[uint]int) error {
	if err := r.Client.FlushDB(ctx).Err(); err != nil {
		return err
	}
	if len(sessionFreeSeats) == 0 {
		return nil
	}

	args := make([]any, 0, len(sessionFreeSeats)*2)
	for sessionID, free := range sessionFreeSeats {
		args = append(args, MakeSessionFreeSeatsKey(sessionID), free)
	}
	_, err := initFreeSeatsScript.Run(ctx, r.Client, []string{}, args...).Result()
	return err
}

func (r *RedisCache) SeatSold(sessionID uint) error {
	if err := r.Client.Decr(ctx, MakeSessionFreeSeatsKey(sessionID)).Err(); err != nil {
		return err
	}
	return r.invalidateSeatMap(sessionID)
}

func (r *RedisCache) SeatFreed(sessionID uint) error {
	if err := r.Client.Incr(ctx, MakeSessionFreeSeatsKey(sessionID)).Err(); err != nil {
		return err
	}
	return r.invalidateSeatMap(sessionID)
}

// FreeSeats returns the cached counter; ok is false when the session
// has no counter yet.
func (r *RedisCache) FreeSeats(sessionID uint) (int, bool, error) {
	n, err := r.Client.Get(ctx, MakeSessionFreeSeatsKey(sessionID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return n, true, nil
}

func (r *RedisCache) SetSeatMap(sessionID uint, seatMap any) error {
	data, err := json.Marshal(seatMap)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, MakeSessionSeatMapKey(sessionID), data, 5*time.Minute).Err()
}

func (r *RedisCache) GetSeatMap(sessionID uint, dest any) (bool, error) {
	data, err := r.Client.Get(ctx, MakeSessionSeatMapKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, json.Unmarshal(data, dest)
}

func (r *RedisCache) invalidateSeatMap(sessionID uint) error {
	return r.Client.Del(ctx, MakeSessionSeatMapKey(sessionID)).Err()
}

func (r *RedisCache) BumpSalesTally(sessionID uint) error {
	return r.Client.Incr(ctx, MakeSessionSalesKey(sessionID)).Err()
}

func (r *RedisCache) DropSalesTally(sessionID uint) error {
	return r.Client.Decr(ctx, MakeSessionSalesKey(sessionID)).Err()
}
