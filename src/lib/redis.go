package lib

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient parses the connection URL and returns a client, or nil
// when the URL is empty or invalid; callers treat a nil client as
// cache-disabled.
func NewRedisClient(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	return redis.NewClient(opt)
}
