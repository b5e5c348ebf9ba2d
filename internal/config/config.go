package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	minSessionSecretLength = 16
)

type Config struct {
	Development bool `yaml:"development"`
	// API configuration
	APIPort            int      `yaml:"api_port"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	// Database configuration
	DBDriver         string `yaml:"db_driver"`
	PostgresUser     string `yaml:"postgres_user"`
	PostgresPassword string `yaml:"postgres_password"`
	PostgresHost     string `yaml:"postgres_host"`
	PostgresPort     int    `yaml:"postgres_port"`
	PostgresDB       string `yaml:"postgres_db"`
	SQLitePath       string `yaml:"sqlite_path"`
	DBMaxOpenConns   int    `yaml:"db_max_open_conns"`
	DBMaxIdleConns   int    `yaml:"db_max_idle_conns"`

	// Admin configuration
	AdminUsername     string        `yaml:"admin_username"`
	AdminPasswordHash string        `yaml:"admin_password_hash"`
	SessionSecret     string        `yaml:"session_secret"`
	SessionTTL        time.Duration `yaml:"session_ttl"`

	// Organization shown on pages and receipts
	OrganizationName string `yaml:"organization_name"`
	TelebirrOwner    string `yaml:"telebirr_owner"`

	// SMS gateway configuration
	SMSAPIURL string `yaml:"sms_api_url"`
	SMSAPIKey string `yaml:"sms_api_key"`
	SMSSender string `yaml:"sms_sender"`

	// Telegram admin mirror configuration
	TelegramBotToken    string `yaml:"telegram_bot_token"`
	TelegramAdminChatID int64  `yaml:"telegram_admin_chat_id"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		APIPort:          5000,
		DBDriver:         DriverPostgres,
		PostgresUser:     "postgres",
		PostgresPassword: "password",
		PostgresHost:     "localhost",
		PostgresPort:     5432,
		PostgresDB:       "lottery",
		SQLitePath:       "lottery.db",
		DBMaxOpenConns:   20,
		DBMaxIdleConns:   5,
		AdminUsername:    "admin",
		SessionTTL:       12 * time.Hour,
		OrganizationName: "ማህበረ አርጋብ",
		TelebirrOwner:    "+251936114505",
		SMSSender:        "LottoWin",
	}
}

// LoadConfig loads the configuration. Values from the optional YAML file at
// path are applied over the defaults, then environment variables (and a .env
// file if present) take precedence.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Development = getEnvAsBool("DEVELOPMENT", c.Development)
	c.APIPort = getEnvAsInt("API_PORT", c.APIPort)
	c.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.PostgresUser = getEnv("POSTGRES_USER", c.PostgresUser)
	c.PostgresPassword = getEnv("POSTGRES_PASSWORD", c.PostgresPassword)
	c.PostgresHost = getEnv("POSTGRES_HOST", c.PostgresHost)
	c.PostgresPort = getEnvAsInt("POSTGRES_PORT", c.PostgresPort)
	c.PostgresDB = getEnv("POSTGRES_DB", c.PostgresDB)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.DBMaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", c.DBMaxOpenConns)
	c.DBMaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", c.DBMaxIdleConns)
	c.AdminUsername = getEnv("ADMIN_USERNAME", c.AdminUsername)
	c.AdminPasswordHash = getEnv("ADMIN_PASSWORD_HASH", c.AdminPasswordHash)
	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.SessionTTL = getEnvAsDuration("SESSION_TTL", c.SessionTTL)
	c.OrganizationName = getEnv("ORGANIZATION_NAME", c.OrganizationName)
	c.TelebirrOwner = getEnv("TELEBIRR_OWNER", c.TelebirrOwner)
	c.SMSAPIURL = getEnv("SMS_API_URL", c.SMSAPIURL)
	c.SMSAPIKey = getEnv("SMS_API_KEY", c.SMSAPIKey)
	c.SMSSender = getEnv("SMS_SENDER", c.SMSSender)
	c.TelegramBotToken = getEnv("TELEGRAM_BOT_TOKEN", c.TelegramBotToken)
	c.TelegramAdminChatID = getEnvAsInt64("TELEGRAM_ADMIN_CHAT_ID", c.TelegramAdminChatID)
}

// Validate checks that all required configuration fields are properly set
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.PostgresDB == "" {
			return fmt.Errorf("POSTGRES_DB is required")
		}
		if c.PostgresHost == "" {
			return fmt.Errorf("POSTGRES_HOST is required")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q: expected %s or %s", c.DBDriver, DriverPostgres, DriverSQLite)
	}

	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("invalid API_PORT %d", c.APIPort)
	}

	if c.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME is required")
	}

	if c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required (generate one with `lottery hash-password`)")
	}

	if len(c.SessionSecret) < minSessionSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLength)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	return nil
}

// Helper functions to read environment variables
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsInt64(name string, defaultValue int64) int64 {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsDuration(name string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsList(name string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(name)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
