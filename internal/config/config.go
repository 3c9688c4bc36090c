package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the job portal API.
// Values are loaded from environment variables, optionally seeded from a .env file.
type Config struct {
	Port string

	DBDriver    string
	MongoURI    string
	DBUser      string
	DBPass      string
	DBHost      string
	DBName      string
	DatabaseURL string

	DBOpTimeout         time.Duration
	HTTPShutdownTimeout time.Duration

	// AuthEnabled mounts the token middleware on the applicant listing.
	AuthEnabled       bool
	AccessTokenSecret string
	TokenTTL          time.Duration
	CookieSecure      bool
	CORSOrigins       []string

	LogLevel       string
	LogFormat      string
	MetricsEnabled bool
	MetricsPath    string
}

// Load reads configuration from the environment with defaults. A missing
// .env file is not an error.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("config: no .env file loaded")
	}

	cfg := Config{
		Port:              getEnv("PORT", "5000"),
		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", DriverMongo)),
		MongoURI:          os.Getenv("MONGODB_URI"),
		DBUser:            os.Getenv("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"),
		DBHost:            getEnv("DB_HOST", "cluster0.sou5t.mongodb.net"),
		DBName:            getEnv("DB_NAME", "jobPortal"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AuthEnabled:       getBool("AUTH_ENABLED", true),
		AccessTokenSecret: os.Getenv("ACCESS_TOKEN_SECRET"),
		TokenTTL:          getDuration("TOKEN_TTL", 5*time.Hour),
		CookieSecure:      getBool("COOKIE_SECURE", false),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		MetricsEnabled:    getBool("METRICS_ENABLED", false),
		MetricsPath:       getEnv("METRICS_PATH", "/metrics"),
	}
	cfg.DBOpTimeout = getDuration("DB_OP_TIMEOUT", 10*time.Second)
	cfg.HTTPShutdownTimeout = getDuration("HTTP_SHUTDOWN_TIMEOUT", 15*time.Second)

	return cfg
}

// MongoConnectionURI returns MONGODB_URI when set, otherwise an SRV URI
// built from DB_USER, DB_PASS and DB_HOST.
func (c Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(c.DBUser), url.QueryEscape(c.DBPass), c.DBHost)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logrus.Warnf("config: invalid %s %q, using default %t", key, v, def)
		return def
	}
	return b
}

// getDuration returns a zero duration for unparsable values so Validate can
// report them.
func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.Warnf("config: invalid %s %q", key, v)
		return 0
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
