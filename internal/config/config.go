package config

import (
	"fmt"     // For error wrapping
	"strings" // For DSN assembly
	"time"    // For session and cache durations

	"github.com/caarlos0/env/v11" // For parsing environment variables into the struct
	"github.com/joho/godotenv"    // For loading .env files
)

// Supported values of DB_DRIVER
const (
	DriverMySQL    = "mysql"    // MySQL through gorm.io/driver/mysql
	DriverPostgres = "postgres" // PostgreSQL through gorm.io/driver/postgres
	DriverMemory   = "memory"   // In-process repository, nothing persisted
)

// Config holds the application configuration
type Config struct {
	AppPort     string        `env:"APP_PORT" envDefault:"8080"`      // Application port
	DBDriver    string        `env:"DB_DRIVER" envDefault:"mysql"`    // Database driver
	DBUser      string        `env:"DB_USER"`                         // Database user
	DBPassword  string        `env:"DB_PASSWORD"`                     // Database password
	DBHost      string        `env:"DB_HOST" envDefault:"127.0.0.1"`  // Database host
	DBPort      string        `env:"DB_PORT"`                         // Database port
	DBName      string        `env:"DB_NAME" envDefault:"blog"`       // Database name
	DBSSLMode   string        `env:"DB_SSLMODE" envDefault:"disable"` // PostgreSQL sslmode
	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`    // JWT secret key
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"24h"`    // Session lifetime
	RedisAddr   string        `env:"REDIS_ADDR"`                      // Redis server address, empty keeps sessions in memory
	RedisPass   string        `env:"REDIS_PASS"`                      // Redis password
	RedisDB     int           `env:"REDIS_DB" envDefault:"0"`         // Redis database number
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"60s"`      // Read cache lifetime
	AdminEmails []string      `env:"ADMIN_EMAILS" envSeparator:","`   // Emails that register with the admin role
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`     // Logrus level
	IsProd      bool          `env:"IS_PROD" envDefault:"false"`      // Is production environment
}

// LoadConfig loads configuration from the environment, reading .env first if present
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	switch cfg.DBDriver {
	case DriverMySQL, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		port := c.DBPort
		if port == "" {
			port = "5432" // PostgreSQL default port
		}
		parts := []string{
			"host=" + pgValue(c.DBHost),
			"user=" + pgValue(c.DBUser),
			"password=" + pgValue(c.DBPassword),
			"dbname=" + pgValue(c.DBName),
			"port=" + pgValue(port),
			"sslmode=" + pgValue(c.DBSSLMode),
		}
		return strings.Join(parts, " ")
	case DriverMySQL:
		port := c.DBPort
		if port == "" {
			port = "3306" // MySQL default port
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4"
	default:
		return ""
	}
}

// pgValue quotes a key/value DSN value when it is empty or holds a space, quote or backslash
func pgValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " '\\") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
