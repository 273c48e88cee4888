// Package config reads the service configuration from environment variables.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds runtime settings.
//
// Redis and Postgres are optional: an empty RedisHost disables the Redis
// mirror and an empty PGHost disables the ledger.
type Config struct {
	HTTPAddr        string
	AdminAddr       string
	GopsAddr        string
	LogLevel        string
	LogFormat       string
	RedisHost       string
	RedisPort       string
	PGHost          string
	PGPort          string
	PGUser          string
	PGPassword      string
	PGDatabase      string
	PGPoolMax       int
	ReportSpec      string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates c with development defaults
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":9090"
	c.AdminAddr = ":9091"
	c.GopsAddr = ":6060"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.RedisPort = "6379"
	c.PGPort = "5432"
	c.PGUser = "postgres"
	c.PGDatabase = "bank"
	c.PGPoolMax = 10
	c.ReportSpec = "@hourly"
	c.ShutdownTimeout = 5 * time.Second
}

// Load applies defaults and overlays any environment variables that are set
func Load() (*Config, error) {
	c := &Config{}
	c.LoadDefaults()

	stringVar(&c.HTTPAddr, "HTTP_ADDR")
	stringVar(&c.AdminAddr, "ADMIN_ADDR")
	stringVar(&c.GopsAddr, "GOPS_ADDR")
	stringVar(&c.LogLevel, "LOG_LEVEL")
	stringVar(&c.LogFormat, "LOG_FORMAT")
	stringVar(&c.RedisHost, "REDIS_HOST")
	stringVar(&c.RedisPort, "REDIS_PORT")
	stringVar(&c.PGHost, "PG_HOST")
	stringVar(&c.PGPort, "PG_PORT")
	stringVar(&c.PGUser, "PG_USER")
	stringVar(&c.PGPassword, "PG_PASSWORD")
	stringVar(&c.PGDatabase, "PG_DATABASE")
	stringVar(&c.ReportSpec, "REPORT_SPEC")

	if v, ok := os.LookupEnv("PG_POOL_MAX"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid PG_POOL_MAX %q", v)
		}
		c.PGPoolMax = n
	}
	if v, ok := os.LookupEnv("SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		c.ShutdownTimeout = d
	}

	return c, nil
}

// RedisAddr returns host:port of the Redis server
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// PostgresURL returns the pgx connection string
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PGUser, c.PGPassword),
		Host:     net.JoinHostPort(c.PGHost, c.PGPort),
		Path:     "/" + c.PGDatabase,
		RawQuery: url.Values{"pool_max_conns": {strconv.Itoa(c.PGPoolMax)}}.Encode(),
	}
	return u.String()
}

// stringVar overwrites *dst when the variable is present, even if empty,
// so a default can be switched off with VAR=.
func stringVar(dst *string, name string) {
	if v, ok := os.LookupEnv(name); ok {
		*dst = v
	}
}
