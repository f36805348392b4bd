package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	maxIdleTimeoutSeconds = 255
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	ServerName    string
	ServerVersion string
	Env           string // development, staging, production
	Port          string
	GinMode       string
	LogLevel      string
	IdleTimeout   time.Duration

	// MCP transport
	Transport    string // http, stdio
	MCPStateless bool

	// Storage
	DBDriver   string // sqlite, postgres, memory
	SQLitePath string

	// Postgres
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// Redis (rate limiting); empty address disables it
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RateLimitPerMinute int

	// RabbitMQ (user events); empty URL disables it
	RabbitMQURL             string
	RabbitMQUserEventsQueue string

	// Elasticsearch (user index); empty addresses disable it
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESUsersIndex       string

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Debug metrics (/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		ServerName:    getenv("MCP_SERVER_NAME", "mcp-template"),
		ServerVersion: getenv("MCP_SERVER_VERSION", "1.0.0"),
		Env:           getenv("APP_ENV", "development"),
		Port:          getenv("PORT", "3000"),
		GinMode:       getenv("GIN_MODE", "release"),
		LogLevel:      getenv("LOG_LEVEL", ""),
		IdleTimeout:   idleTimeout(getint("IDLE_TIMEOUT", 30)),

		Transport:    strings.ToLower(getenv("MCP_TRANSPORT", TransportHTTP)),
		MCPStateless: getbool("MCP_STATELESS", false),

		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
		SQLitePath: getenv("SQLITE_PATH", ""),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "appdb"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		RedisAddr:          getenv("REDIS_ADDR", ""),
		RedisPassword:      getenv("REDIS_PASSWORD", ""),
		RedisDB:            getint("REDIS_DB", 0),
		RateLimitPerMinute: getint("RATE_LIMIT_PER_MINUTE", 120),

		RabbitMQURL:             getenv("RABBITMQ_URL", ""),
		RabbitMQUserEventsQueue: getenv("RABBITMQ_USER_EVENTS_QUEUE", "user-events"),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESUsersIndex:       getenv("ES_USERS_INDEX", "users"),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "*"),

		// Debug metrics toggle (default true to preserve existing behavior)
		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", true),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
	// Development data lives in memory; other environments persist to a file.
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "users.db"
		if cfg.IsDevelopment() {
			cfg.SQLitePath = ":memory:"
		}
	}
	return cfg
}

// The HTTP server idle timeout is capped at 255 seconds; non-positive values
// fall back to 30.
func idleTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		seconds = 30
	}
	if seconds > maxIdleTimeoutSeconds {
		seconds = maxIdleTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

// IsDevelopment reports whether the app runs with APP_ENV=development.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// PostgresDSN returns a URL DSN compatible with pgx; credentials are escaped.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitList(c.ElasticsearchAddrs)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
