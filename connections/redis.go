package connections

import (
	"sync"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/Ptt-Alertor/bank-api/config"
)

var (
	redisPool     *redis.Pool
	redisPoolOnce sync.Once
)

// NewRedisPool creates a connection pool for addr
func NewRedisPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr,
				redis.DialConnectTimeout(5*time.Second),
				redis.DialReadTimeout(5*time.Second),
				redis.DialWriteTimeout(5*time.Second),
			)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// RedisPool returns the shared Redis pool for cfg
func RedisPool(cfg *config.Config) *redis.Pool {
	redisPoolOnce.Do(func() {
		redisPool = NewRedisPool(cfg.RedisAddr())
	})
	return redisPool
}

// PingRedis checks that the pool can reach the server
func PingRedis(pool *redis.Pool) error {
	conn := pool.Get()
	defer conn.Close()
	_, err := conn.Do("PING")
	return err
}

// CloseRedis closes the shared Redis pool
func CloseRedis() {
	if redisPool != nil {
		redisPool.Close()
	}
}
