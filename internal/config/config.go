package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const maxCacheTTL = 24 * time.Hour

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Rules   RulesConfig   `yaml:"rules"`
	Cache   CacheConfig   `yaml:"cache"`
	Data    DataConfig    `yaml:"data"`
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// RulesConfig points at rule files on disk. Empty paths select the copies embedded in the binary.
type RulesConfig struct {
	CategoryTable string `yaml:"category_table"`
	GuardsDir     string `yaml:"guards_dir"`
	GuardsVersion string `yaml:"guards_version"`
}

type CacheConfig struct {
	Driver          string        `yaml:"driver"` // memory | redis | none
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	RedisAddr       string        `yaml:"redis_addr"`
	RedisPassword   string        `yaml:"redis_password"`
	RedisDB         int           `yaml:"redis_db"`
	RedisPrefix     string        `yaml:"redis_prefix"`
}

type DataConfig struct {
	Dir string `yaml:"dir"`
}

type EngineConfig struct {
	LowStockThreshold int    `yaml:"low_stock_threshold"`
	TaxRate           string `yaml:"tax_rate"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		HTTP:  HTTPConfig{Addr: ":8080"},
		Rules: RulesConfig{GuardsVersion: "v1"},
		Cache: CacheConfig{
			Driver:          "memory",
			TTL:             6 * time.Hour,
			CleanupInterval: 5 * time.Minute,
			RedisAddr:       "localhost:6379",
			RedisPrefix:     "storefront:",
		},
		Data:    DataConfig{Dir: "data/db"},
		Engine:  EngineConfig{LowStockThreshold: 10, TaxRate: "0.05"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML file at path (if any) over the defaults, then applies environment
// overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
		}
	}

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", cfg.HTTP.Addr)
	cfg.Rules.CategoryTable = getEnv("CATEGORY_RULES_FILE", cfg.Rules.CategoryTable)
	cfg.Rules.GuardsDir = getEnv("GUARD_RULES_DIR", cfg.Rules.GuardsDir)
	cfg.Rules.GuardsVersion = getEnv("GUARD_RULES_VERSION", cfg.Rules.GuardsVersion)
	cfg.Cache.Driver = getEnv("CACHE_DRIVER", cfg.Cache.Driver)
	cfg.Cache.RedisAddr = getEnv("REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = getEnv("REDIS_PASSWORD", cfg.Cache.RedisPassword)
	cfg.Data.Dir = getEnv("DATA_DIR", cfg.Data.Dir)
	cfg.Engine.TaxRate = getEnv("TAX_RATE", cfg.Engine.TaxRate)
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)

	var err error
	if cfg.Cache.TTL, err = getEnvDuration("CACHE_TTL", cfg.Cache.TTL); err != nil {
		return nil, err
	}
	if cfg.Cache.RedisDB, err = getEnvInt("REDIS_DB", cfg.Cache.RedisDB); err != nil {
		return nil, err
	}
	if cfg.Engine.LowStockThreshold, err = getEnvInt("LOW_STOCK_THRESHOLD", cfg.Engine.LowStockThreshold); err != nil {
		return nil, err
	}

	if cfg.Cache.TTL <= 0 || cfg.Cache.TTL > maxCacheTTL {
		cfg.Cache.TTL = maxCacheTTL
	}
	switch cfg.Cache.Driver {
	case "memory", "redis", "none":
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
