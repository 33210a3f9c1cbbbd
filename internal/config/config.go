package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	JWT      JWTConfig
	Sync     SyncConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	MigrationsDir string

	// WSAllowedOrigins limits websocket upgrades. Empty accepts any origin.
	WSAllowedOrigins []string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	// SlowQueryThreshold logs statements slower than this. Zero disables it.
	SlowQueryThreshold time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

// MongoConfig describes the remote post store. An empty URI runs the
// service local-only.
type MongoConfig struct {
	URI             string
	Database        string
	PostsCollection string
	Timeout         time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type SyncConfig struct {
	Interval    time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		MigrationsDir: opt("MIGRATIONS_DIR"),

		WSAllowedOrigins: list(opt("WS_ALLOWED_ORIGINS")),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  optDefault("DB_SSL_MODE", "disable"),

		ConnectTimeout:        secondsOr(opt("DB_CONNECT_TIMEOUT_SECONDS"), 5*time.Second),
		PoolMaxConns:          int32(intOr(opt("DB_POOL_MAX_CONNS"), 10)),
		PoolMinConns:          int32(intOr(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   minutesOr(opt("DB_POOL_MAX_CONN_LIFETIME_MINUTES"), time.Hour),
		PoolMaxConnIdleTime:   minutesOr(opt("DB_POOL_MAX_CONN_IDLE_MINUTES"), 30*time.Minute),
		PoolHealthCheckPeriod: secondsOr(opt("DB_POOL_HEALTH_CHECK_SECONDS"), time.Minute),

		SlowQueryThreshold: millisOr(opt("DB_SLOW_QUERY_MS"), 500*time.Millisecond),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      secondsOr(opt("REDIS_TTL"), 600*time.Second),
	}

	cfg.Mongo = MongoConfig{
		URI:             opt("MONGO_URI"),
		Database:        optDefault("MONGO_DATABASE", "jobconnect"),
		PostsCollection: optDefault("MONGO_POSTS_COLLECTION", "posts"),
		Timeout:         secondsOr(opt("MONGO_TIMEOUT_SECONDS"), 5*time.Second),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  minutesOr(opt("JWT_ACCESS_EXPIRES_IN_MINUTES"), 15*time.Minute),
		RefreshExpiresIn: minutesOr(opt("JWT_REFRESH_EXPIRES_IN_MINUTES"), 7*24*time.Hour),
	}

	cfg.Sync = SyncConfig{
		Interval:    minutesOr(opt("POST_SYNC_INTERVAL_MINUTES"), 5*time.Minute),
		MaxAttempts: intOr(opt("POST_SYNC_MAX_ATTEMPTS"), 3),
		BaseDelay:   secondsOr(opt("POST_SYNC_BASE_DELAY_SECONDS"), time.Second),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

// RemoteEnabled reports whether a remote post store is configured.
func (c Config) RemoteEnabled() bool {
	return strings.TrimSpace(c.Mongo.URI) != ""
}

func list(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func intOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func secondsOr(raw string, def time.Duration) time.Duration {
	v := intOr(raw, -1)
	if v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}

func millisOr(raw string, def time.Duration) time.Duration {
	v := intOr(raw, -1)
	if v < 0 {
		return def
	}
	return time.Duration(v) * time.Millisecond
}

func minutesOr(raw string, def time.Duration) time.Duration {
	v := intOr(raw, -1)
	if v <= 0 {
		return def
	}
	return time.Duration(v) * time.Minute
}
