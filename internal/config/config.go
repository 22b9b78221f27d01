package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	Version     string
	APIKey      string // API key for authentication
	DevMode     bool   // skips guest cooldown checks

	// TrustedProxies are remote addresses whose X-Forwarded-For is believed
	TrustedProxies []string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	AssetsDir       string
	SpriteStore     string // "fs" or "s3"
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKeyID   string
	S3SecretKey     string
	RenderWorkers   int
	RenderQueueSize int

	RedisURL          string
	PremiumAPIURL     string
	VoteAPIURL        string
	VoteAPIToken      string
	CapabilityTimeout time.Duration

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	PrivilegedUserIDs []int64
	MigrateOnStart    bool
	GameConfigPath    string
	Game              GameConfig
}

// Load loads the configuration from environment variables and the game settings file
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvAsInt("PORT", DefaultPort),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogDir:      getEnv("LOG_DIR", "logs"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),
		APIKey:      getEnv("API_KEY", ""),
		DevMode:     getEnvAsBool("DEV_MODE", false),

		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "gardenbot"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		AssetsDir:       getEnv("ASSETS_DIR", DefaultAssetsDir),
		SpriteStore:     strings.ToLower(getEnv("SPRITE_STORE", SpriteStoreFS)),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Region:        getEnv("S3_REGION", "auto"),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:   getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:     getEnv("S3_SECRET_ACCESS_KEY", ""),
		RenderWorkers:   getEnvAsInt("RENDER_WORKERS", DefaultRenderWorkers),
		RenderQueueSize: getEnvAsInt("RENDER_QUEUE_SIZE", DefaultRenderQueueSize),

		RedisURL:          getEnv("REDIS_URL", ""),
		PremiumAPIURL:     getEnv("PREMIUM_API_URL", ""),
		VoteAPIURL:        getEnv("VOTE_API_URL", ""),
		VoteAPIToken:      getEnv("VOTE_API_TOKEN", ""),
		CapabilityTimeout: getEnvAsDuration("CAPABILITY_TIMEOUT", DefaultCapabilityTimeout),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", 0),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", 0),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", ""),

		MigrateOnStart: getEnvAsBool("MIGRATE_ON_START", true),
		GameConfigPath: getEnv("GARDEN_CONFIG", ConfigPathGame),
	}

	if raw, ok := os.LookupEnv("PORT"); ok && raw != "" {
		if _, err := strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("invalid PORT value: %w", err)
		}
	}

	ids, err := parseUserIDs(getEnv("PRIVILEGED_USER_IDS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid PRIVILEGED_USER_IDS value: %w", err)
	}
	cfg.PrivilegedUserIDs = ids

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.SpriteStore != SpriteStoreFS && cfg.SpriteStore != SpriteStoreS3 {
		return nil, fmt.Errorf("invalid SPRITE_STORE value %q: expected %q or %q", cfg.SpriteStore, SpriteStoreFS, SpriteStoreS3)
	}
	if cfg.SpriteStore == SpriteStoreS3 && cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET must be set when SPRITE_STORE=s3")
	}

	game, err := LoadGameConfig(cfg.GameConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Game = game

	return cfg, nil
}

// LoadDatabaseConfig reads only the database settings, for tools that do not
// serve the API
func LoadDatabaseConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "gardenbot"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
	}
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsPrivileged reports whether the user bypasses the plant purchase cooldown
func (c *Config) IsPrivileged(userID int64) bool {
	for _, id := range c.PrivilegedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable or returns the default
// when it is unset or not a valid integer
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration retrieves a duration environment variable or returns the default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool retrieves a boolean environment variable or returns the default
func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func parseUserIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
