package client

import (
	"context"

	"github.com/redis/go-redis/v9"

	"library/pkg/logger"
)

func (c *Client) SetRedis(log *logger.Logger, addr, password string, db int) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pong, err := rdb.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err, "addr", addr)
	}

	log.Info("Successfully connected to Redis", "pong", pong)
	c.Redis = rdb
}
