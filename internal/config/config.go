package config

import (
	"strconv"
	"time"

	"github.com/maxviazov/accounts-service/internal/logger"
)

type Config struct {
	App        AppConfig           `mapstructure:"app"`
	Logger     logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Postgres   PostgresConfig      `mapstructure:"postgres"`
	Redis      RedisConfig         `mapstructure:"redis"`
	Pagination PaginationConfig    `mapstructure:"pagination"`
}

type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
	// RequestTimeout and ShutdownTimeout are seconds.
	RequestTimeout  int `mapstructure:"request_timeout" validate:"min=0"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout" validate:"min=0"`
}

// Addr is the listen address for the HTTP server.
func (a AppConfig) Addr() string {
	return ":" + strconv.Itoa(a.Port)
}

type PostgresConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"min=1,max=65535"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	DBName   string `mapstructure:"db" validate:"required"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`

	MaxConns          int32 `mapstructure:"max_conns" validate:"min=0"`
	MinConns          int32 `mapstructure:"min_conns" validate:"min=0"`
	MaxConnLifetime   int   `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int   `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int   `mapstructure:"health_check_period"`

	// AutoMigrate applies embedded migrations on startup.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
	// CountTTL is seconds.
	CountTTL int `mapstructure:"count_ttl" validate:"min=0"`
}

func (r RedisConfig) CountTTLDuration() time.Duration {
	return time.Duration(r.CountTTL) * time.Second
}

type PaginationConfig struct {
	DefaultRecordCount int `mapstructure:"default_record_count" validate:"min=1"`
	// MaxRecordCount of 0 disables the upper bound.
	MaxRecordCount     int  `mapstructure:"max_record_count" validate:"min=0"`
	ConsistentSnapshot bool `mapstructure:"consistent_snapshot"`
}
