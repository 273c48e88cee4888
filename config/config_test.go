package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":9090", c.HTTPAddr)
	assert.Equal(t, ":9091", c.AdminAddr)
	assert.Equal(t, ":6060", c.GopsAddr)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "", c.RedisHost)
	assert.Equal(t, "", c.PGHost)
	assert.Equal(t, 10, c.PGPoolMax)
	assert.Equal(t, "@hourly", c.ReportSpec)
	assert.Equal(t, 5*time.Second, c.ShutdownTimeout)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("GOPS_ADDR", "")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_USER", "u")
	t.Setenv("PG_PASSWORD", "p")
	t.Setenv("PG_DATABASE", "d")
	t.Setenv("PG_POOL_MAX", "3")
	t.Setenv("SHUTDOWN_TIMEOUT", "1s")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, "", c.GopsAddr)
	assert.Equal(t, "redis:6379", c.RedisAddr())
	assert.Equal(t, "postgres://u:p@db:5432/d?pool_max_conns=3", c.PostgresURL())
	assert.Equal(t, time.Second, c.ShutdownTimeout)
}

func TestPostgresURL_EscapesCredentials(t *testing.T) {
	c := Config{
		PGUser:     "bank",
		PGPassword: "p@ss:w/rd",
		PGHost:     "db",
		PGPort:     "5432",
		PGDatabase: "ledger",
		PGPoolMax:  4,
	}

	assert.Equal(t, "postgres://bank:p%40ss%3Aw%2Frd@db:5432/ledger?pool_max_conns=4", c.PostgresURL())

	u, err := url.Parse(c.PostgresURL())
	require.NoError(t, err)
	pass, _ := u.User.Password()
	assert.Equal(t, "p@ss:w/rd", pass)
	assert.Equal(t, "db:5432", u.Host)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"pool max not a number", "PG_POOL_MAX", "many"},
		{"pool max zero", "PG_POOL_MAX", "0"},
		{"bad duration", "SHUTDOWN_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
