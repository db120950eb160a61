package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in the
// application: strings for identifiers and secrets, ints for durations,
// costs and length limits.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	PasswordMinLen int    // minimum accepted password length

	// Connection pool tuning. The defaults suit a single instance in
	// front of a small MySQL; raise them together with the server's
	// max_connections.
	DBMaxOpenConns   int // pool ceiling
	DBMaxIdleConns   int // idle connections kept warm
	DBConnMaxLifeMin int // minutes a pooled connection may live

	// Redis settings. Redis backs the per-user profile cache and the
	// auth rate limiter; both degrade to no-ops when it is unreachable.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTLS      bool

	// SMTP settings for inquiry notifications. Host may be empty in
	// environments without outbound mail; the mailer then refuses to send
	// and the contact endpoint reports the failure instead of hiding it.
	SMTPHost string
	SMTPPort string
	SMTPFrom string
	SMTPUser string
	SMTPPass string
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		PasswordMinLen: intOr("PASSWORD_MIN_LEN", 8),

		DBMaxOpenConns:   intOr("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:   intOr("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifeMin: intOr("DB_CONN_MAX_LIFETIME_MIN", 30),

		RedisAddr:     redisAddr(),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       intOr("REDIS_DB", 0),
		RedisTLS:      boolEnv("REDIS_TLS"),

		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getenv("SMTP_PORT", "587"),
		SMTPFrom:       getenv("SMTP_FROM", "noreply@rentnest.local"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// getenv returns the value of an optional variable or a default.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intOr parses an optional integer variable, falling back to a default on
// absence or malformed input.
func intOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
