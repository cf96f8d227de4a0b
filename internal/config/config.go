package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName          = "PlutoTerminal"
	defaultAppEnv           = "development"
	defaultPort             = "8080"
	defaultLogLevel         = "info"
	defaultShutdownDelay    = 10 * time.Second
	defaultAccessTokenTTL   = 12 * time.Hour
	defaultIdempotencyTTL   = 24 * time.Hour
	defaultVerificationCode = "196405"
	defaultAuditModel       = "gemini-3-pro-preview"
	defaultSupportModel     = "gemini-3-flash-preview"
	shutdownSecondsEnvVar   = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar  = "SHUTDOWN_TIMEOUT"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName  string
	AppEnv   string
	Port     string
	LogLevel string

	// RedisURL points the terminal at an external key-value store. When empty
	// an embedded store is started in-process; the terminal persists only a
	// local cache either way.
	RedisURL string

	JWTSecret      string
	AccessTokenTTL time.Duration
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration

	// VerificationCode gates both the attestation step of the auth flow and
	// the self-destruct confirmation. It is a demo gate, not a security
	// mechanism: the value is fixed per deployment, not per session.
	VerificationCode string

	AIEndpoint     string
	AIAPIKey       string
	AIAuditModel   string
	AISupportModel string

	// SimulatedLatency enables the timer-based delays that stand in for
	// network round-trips (code dispatch, trade routing, settlement).
	SimulatedLatency bool
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:          getEnv("APP_NAME", defaultAppName),
		AppEnv:           getEnv("APP_ENV", defaultAppEnv),
		Port:             getEnv("PORT", defaultPort),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		RedisURL:         os.Getenv("REDIS_URL"),
		JWTSecret:        getEnv("JWT_SECRET", "pluto-terminal-dev-secret"),
		AccessTokenTTL:   defaultAccessTokenTTL,
		ShutdownPeriod:   defaultShutdownDelay,
		IdempotencyTTL:   defaultIdempotencyTTL,
		VerificationCode: getEnv("VERIFICATION_CODE", defaultVerificationCode),
		AIEndpoint:       os.Getenv("AI_ENDPOINT"),
		AIAPIKey:         os.Getenv("AI_API_KEY"),
		AIAuditModel:     getEnv("AI_AUDIT_MODEL", defaultAuditModel),
		AISupportModel:   getEnv("AI_SUPPORT_MODEL", defaultSupportModel),
		SimulatedLatency: true,
	}

	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
		}
		cfg.AccessTokenTTL = d
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv("SIMULATED_LATENCY"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SIMULATED_LATENCY: %w", err)
		}
		cfg.SimulatedLatency = enabled
	}

	if len(cfg.VerificationCode) != 6 {
		return Config{}, fmt.Errorf("VERIFICATION_CODE must be 6 digits")
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
