package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validate checks the configuration and returns every problem found, joined.
func (c Config) Validate() error {
	var errs []error

	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a valid port number, got %q", c.Port))
	}

	switch c.DBDriver {
	case DriverMongo:
		if c.MongoURI == "" && (c.DBUser == "" || c.DBPass == "") {
			errs = append(errs, errors.New("MONGODB_URI or DB_USER and DB_PASS are required for the mongo driver"))
		}
		if c.DBName == "" {
			errs = append(errs, errors.New("DB_NAME is required for the mongo driver"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMongo, DriverPostgres, c.DBDriver))
	}

	if c.AuthEnabled && strings.TrimSpace(c.AccessTokenSecret) == "" {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET is required when AUTH_ENABLED is true"))
	}
	if c.AuthEnabled && len(c.CORSOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ORIGINS must list at least one origin when AUTH_ENABLED is true"))
	}
	for _, origin := range c.CORSOrigins {
		if !strings.Contains(origin, "*") && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Errorf("CORS_ORIGINS entry %q must start with http:// or https://", origin))
		}
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be a positive duration"))
	}
	if c.DBOpTimeout <= 0 {
		errs = append(errs, errors.New("DB_OP_TIMEOUT must be a positive duration"))
	}
	if c.HTTPShutdownTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_SHUTDOWN_TIMEOUT must be a positive duration"))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", c.LogFormat))
	}
	if c.MetricsEnabled && !strings.HasPrefix(c.MetricsPath, "/") {
		errs = append(errs, fmt.Errorf("METRICS_PATH must start with /, got %q", c.MetricsPath))
	}

	return errors.Join(errs...)
}
