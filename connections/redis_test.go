package connections

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestPingRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	addr := mr.Addr()
	pool := NewRedisPool(addr)
	defer pool.Close()
	if err := PingRedis(pool); err != nil {
		t.Errorf("PingRedis() error = %v", err)
	}

	mr.Close()
	if err := PingRedis(NewRedisPool(addr)); err == nil {
		t.Error("PingRedis() expected error on closed server")
	}
}
