package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	log "github.com/Ptt-Alertor/logrus"
	"github.com/gomodule/redigo/redis"
)

const (
	// RedisKeyPrefix prefixes the key each account is mirrored under
	RedisKeyPrefix = "bank:"
	// RedisEventChannel is the pub/sub channel every event is published on
	RedisEventChannel = "bank:events"

	redisSyncBuffer = 1024
)

// RedisKey returns the Redis key an account number is mirrored under
func RedisKey(accountNumber int64) string {
	return fmt.Sprintf("%s%d", RedisKeyPrefix, accountNumber)
}

// RedisSync mirrors account changes to Redis. It is write-only: nothing is
// ever loaded back from Redis.
type RedisSync struct {
	pool *redis.Pool
	ch   chan Event
	done chan struct{}
	once sync.Once
}

// NewRedisSync starts the sync worker. Call Close to drain and stop it.
func NewRedisSync(pool *redis.Pool) *RedisSync {
	rs := &RedisSync{
		pool: pool,
		ch:   make(chan Event, redisSyncBuffer),
		done: make(chan struct{}),
	}
	go rs.worker()
	return rs
}

// Handle queues e without blocking; events are dropped when the queue is full
func (rs *RedisSync) Handle(e Event) {
	select {
	case rs.ch <- e:
	default:
		log.WithFields(log.Fields{
			"op":             e.Op,
			"account_number": e.AccountNumber,
		}).Warn("Redis sync queue full, event dropped")
	}
}

// Close stops accepting events and waits until queued ones are written
func (rs *RedisSync) Close() {
	rs.once.Do(func() {
		close(rs.ch)
		<-rs.done
	})
}

func (rs *RedisSync) worker() {
	defer close(rs.done)
	for e := range rs.ch {
		if err := rs.Sync(e); err != nil {
			log.WithFields(log.Fields{
				"op":             e.Op,
				"account_number": e.AccountNumber,
			}).WithError(err).Error("Failed to sync bank account to Redis")
		}
	}
}

// Sync writes a single event to Redis
func (rs *RedisSync) Sync(e Event) error {
	conn := rs.pool.Get()
	defer conn.Close()

	switch e.Op {
	case OpDelete:
		if _, err := conn.Do("DEL", RedisKey(e.AccountNumber)); err != nil {
			return err
		}
	default:
		if e.Op == OpReplace && e.Account.AccountNumber != e.AccountNumber {
			if _, err := conn.Do("DEL", RedisKey(e.AccountNumber)); err != nil {
				return err
			}
		}
		aJSON, err := json.Marshal(e.Account)
		if err != nil {
			return err
		}
		if _, err := conn.Do("SET", RedisKey(e.Account.AccountNumber), aJSON); err != nil {
			return err
		}
	}

	eJSON, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = conn.Do("PUBLISH", RedisEventChannel, eJSON)
	return err
}
