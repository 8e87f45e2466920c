package config // package config loads application configuration from environment variables

import (
	"fmt"     // fmt reports configuration errors
	"os"      // os provides access to environment variables
	"strings" // strings normalises driver and level names

	"github.com/joho/godotenv" // godotenv loads an optional .env file into the environment
)

// Supported values for DB_DRIVER.
const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Everything has a default so the service starts
// against a local SQLite file with no environment at all.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBDriver       string // database driver: sqlite3 or mysql
	DBPath         string // SQLite database file
	DBUser         string // MySQL username
	DBPass         string // MySQL password (optional)
	DBHost         string // MySQL host address
	DBPort         string // MySQL port number
	DBName         string // MySQL database name
	FrontendDir    string // directory holding the built frontend
	LogLevel       string // zap level name (debug, info, warn, error)
	AMQPURL        string // broker URL for domain events; empty disables publishing
	EventsExchange string // topic exchange events are published to
	SeedDir        string // directory searched for episodes.csv and guests.csv
}

// Load reads an optional .env file and then builds a Config from the
// environment.  A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load() // values already present in the environment win

	cfg := Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "5005"),
		DBDriver:       strings.ToLower(envStr("DB_DRIVER", DriverSQLite)),
		DBPath:         envStr("DB_PATH", "lateshow.db"),
		DBUser:         envStr("DB_USER", "root"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         envStr("DB_HOST", "127.0.0.1"),
		DBPort:         envStr("DB_PORT", "3306"),
		DBName:         envStr("DB_NAME", "lateshow"),
		FrontendDir:    envStr("FRONTEND_DIR", "frontend/build"),
		LogLevel:       strings.ToLower(envStr("LOG_LEVEL", "info")),
		AMQPURL:        os.Getenv("AMQP_URL"),
		EventsExchange: envStr("EVENTS_EXCHANGE", "lateshow.events"),
		SeedDir:        envStr("SEED_DIR", "."),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the application cannot work with.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverSQLite, DriverMySQL)
	}
	if c.Port == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	return nil
}

// envStr returns the value of key or def when it is unset or empty.
func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
