package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Passcodes are the shared secrets that unlock each membership tier.
type Passcodes struct {
	Member string
	Admin  string
	Basic  string
}

// Config is the full runtime configuration of the server
type Config struct {
	DB                   *DBConfig
	ServerPort           string
	SessionSecret        string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	Passcodes            Passcodes
	RedisAddr            string
	RedisSentinelAddrs   []string
	RestrictDelete       bool
	LogLevel             string

	// EnvFileLoaded is false when the .env file was missing or unreadable.
	EnvFileLoaded bool
}

// Load reads configuration from an optional .env file, the environment and
// command-line flags, in increasing order of precedence.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("clubhouse", pflag.ContinueOnError)
	port := fs.String("port", "", "HTTP listen port (overrides SERVER_PORT)")
	envFile := fs.String("env-file", ".env", "path to a .env file")
	logLevel := fs.String("log-level", "", "log level (overrides LOG_LEVEL)")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg := &Config{}
	if err := godotenv.Load(*envFile); err == nil {
		cfg.EnvFileLoaded = true
	}

	dbCfg, err := LoadDBConfig()
	if err != nil {
		return nil, err
	}
	cfg.DB = dbCfg

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET not set in environment")
	}

	ttlHours, err := envInt("SESSION_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	if ttlHours <= 0 {
		return nil, fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", ttlHours)
	}
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour

	sweepMinutes, err := envInt("SESSION_SWEEP_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	if sweepMinutes <= 0 {
		return nil, fmt.Errorf("SESSION_SWEEP_MINUTES must be positive, got %d", sweepMinutes)
	}
	cfg.SessionSweepInterval = time.Duration(sweepMinutes) * time.Minute

	cfg.ServerPort = envOr("SERVER_PORT", "3000")
	if *port != "" {
		cfg.ServerPort = *port
	}

	cfg.LogLevel = envOr("LOG_LEVEL", "info")
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	cfg.Passcodes = Passcodes{
		Member: os.Getenv("MEMBER_PASSCODE"),
		Admin:  os.Getenv("ADMIN_PASSCODE"),
		Basic:  os.Getenv("BASIC_PASSCODE"),
	}
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if v := os.Getenv("REDIS_SENTINEL_ADDRS"); v != "" {
		cfg.RedisSentinelAddrs = strings.Split(v, ",")
	}

	if v := os.Getenv("RESTRICT_DELETE"); v != "" {
		cfg.RestrictDelete, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RESTRICT_DELETE %q: %w", v, err)
		}
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
