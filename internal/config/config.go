package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	Reports  ReportsConfig  `yaml:"reports"`
	Digest   DigestConfig   `yaml:"digest"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	ExpireHour int    `yaml:"expire_hour"`
}

// RedisConfig for the optional async import queue
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ReportsConfig holds the default tuning parameters applied when a
// report request leaves them unset. Per-request values are still
// clamped inside the analytics layer.
type ReportsConfig struct {
	StaleDaysThreshold   int `yaml:"stale_days_threshold"`
	MinExecutionsForRate int `yaml:"min_executions_for_rate"`
	LookbackDays         int `yaml:"lookback_days"` // 0 = all-time
	ConsecutiveRuns      int `yaml:"consecutive_runs"`
	FlakyDisplayCap      int `yaml:"flaky_display_cap"`
}

// DigestConfig controls the scheduled stale-test digest.
type DigestConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"` // cron expression
	Country  string `yaml:"country"`  // business calendar country code
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	cfg.applyDefaults()
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "caseflow.db",
		},
		JWT: JWTConfig{
			Secret:     "caseflow-secret-key-change-in-production",
			ExpireHour: 24,
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			DB:      0,
		},
		Reports: ReportsConfig{
			StaleDaysThreshold:   30,
			MinExecutionsForRate: 5,
			LookbackDays:         90,
			ConsecutiveRuns:      10,
			FlakyDisplayCap:      20,
		},
		Digest: DigestConfig{
			Enabled:  false,
			Schedule: "0 8 * * *",
			Country:  "US",
		},
	}
}

// applyDefaults fills zero-valued report/digest settings after a
// partial config file or env override.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Reports.StaleDaysThreshold == 0 {
		c.Reports.StaleDaysThreshold = def.Reports.StaleDaysThreshold
	}
	if c.Reports.MinExecutionsForRate == 0 {
		c.Reports.MinExecutionsForRate = def.Reports.MinExecutionsForRate
	}
	if c.Reports.ConsecutiveRuns == 0 {
		c.Reports.ConsecutiveRuns = def.Reports.ConsecutiveRuns
	}
	if c.Reports.FlakyDisplayCap == 0 {
		c.Reports.FlakyDisplayCap = def.Reports.FlakyDisplayCap
	}
	if c.Digest.Schedule == "" {
		c.Digest.Schedule = def.Digest.Schedule
	}
	if c.Digest.Country == "" {
		c.Digest.Country = def.Digest.Country
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if lookback := os.Getenv("REPORT_LOOKBACK_DAYS"); lookback != "" {
		if days, err := strconv.Atoi(lookback); err == nil {
			c.Reports.LookbackDays = days
		}
	}
	// Redis URL override (format: redis://:password@host:port/db)
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.Enabled = true
		c.parseRedisURL(redisURL)
	}
}

// parseRedisURL parses a Redis URL and sets config values
// Format: redis://:password@host:port/db
func (c *Config) parseRedisURL(redisURL string) {
	url := strings.TrimPrefix(redisURL, "redis://")

	if atIdx := strings.Index(url, "@"); atIdx != -1 {
		authPart := url[:atIdx]
		url = url[atIdx+1:]
		// Password format: :password or user:password
		if colonIdx := strings.Index(authPart, ":"); colonIdx != -1 {
			c.Redis.Password = authPart[colonIdx+1:]
		}
	}

	if slashIdx := strings.LastIndex(url, "/"); slashIdx != -1 {
		dbStr := url[slashIdx+1:]
		url = url[:slashIdx]
		if db, err := strconv.Atoi(dbStr); err == nil {
			c.Redis.DB = db
		}
	}

	c.Redis.Addr = url
}

func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = "config.yaml"
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
