package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/assetverse/assetverse-backend/utils"
)

// RateLimiter limits requests per IP across the whole API surface. Backed by
// Redis when available so the limit holds across replicas; falls back to the
// in-memory store otherwise.
func RateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	var store limiter.Store
	if client := utils.RedisClient(); client != nil {
		s, err := redisstore.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix: "assetverse_ratelimit",
		})
		if err != nil {
			log.Printf("⚠️ Redis limiter store unavailable, using memory store: %v", err)
			store = memory.NewStore()
		} else {
			store = s
		}
	} else {
		store = memory.NewStore()
	}

	instance := limiter.New(store, rate)
	return ginlimiter.NewMiddleware(instance)
}
