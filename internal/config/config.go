package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Attendance AttendanceConfig
	Identity   IdentityConfig
	Reconciler ReconcilerConfig
	Storage    StorageConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds the verification key for access tokens issued by the
// auth gateway. This service never issues tokens itself.
type JWTConfig struct {
	Secret string
}

// AttendanceConfig is the work-window and status-classification policy.
// Hours are local to App.Timezone.
type AttendanceConfig struct {
	WorkWindowStartHour int    // inclusive, clock-in allowed from this hour
	WorkWindowEndHour   int    // exclusive, clock-in rejected from this hour
	GraceCutoff         string // "HH:MM", strictly after => late
	NormalWorkMinutes   int    // worked less => early leave
	FullWorkMinutes     int    // worked more => overtime
}

// IdentityConfig points at the external face-recognition service.
type IdentityConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ReconcilerConfig struct {
	Enabled       bool
	CheckInterval time.Duration
	RunHour       int    // local hour during which the daily sweep fires
	AbsentAnchor  string // "HH:MM" timestamp given to injected absent rows
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
}

func Load() (*Config, error) {
	// .env is optional outside development
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "Asia/Jakarta"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "sistem_absensi"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	windowStart, err := strconv.Atoi(getEnv("WORK_WINDOW_START_HOUR", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_WINDOW_START_HOUR: %w", err)
	}
	windowEnd, err := strconv.Atoi(getEnv("WORK_WINDOW_END_HOUR", "16"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_WINDOW_END_HOUR: %w", err)
	}
	normalMinutes, err := strconv.Atoi(getEnv("NORMAL_WORK_MINUTES", "480"))
	if err != nil {
		return nil, fmt.Errorf("invalid NORMAL_WORK_MINUTES: %w", err)
	}
	fullMinutes, err := strconv.Atoi(getEnv("FULL_WORK_MINUTES", "540"))
	if err != nil {
		return nil, fmt.Errorf("invalid FULL_WORK_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		WorkWindowStartHour: windowStart,
		WorkWindowEndHour:   windowEnd,
		GraceCutoff:         getEnv("GRACE_CUTOFF", "08:05"),
		NormalWorkMinutes:   normalMinutes,
		FullWorkMinutes:     fullMinutes,
	}

	identityTimeout, err := time.ParseDuration(getEnv("IDENTITY_TIMEOUT", "20s"))
	if err != nil {
		return nil, fmt.Errorf("invalid IDENTITY_TIMEOUT: %w", err)
	}

	config.Identity = IdentityConfig{
		BaseURL: getEnv("IDENTITY_BASE_URL", "http://localhost:5001"),
		Timeout: identityTimeout,
	}

	checkInterval, err := time.ParseDuration(getEnv("RECONCILER_CHECK_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILER_CHECK_INTERVAL: %w", err)
	}
	runHour, err := strconv.Atoi(getEnv("RECONCILER_RUN_HOUR", "23"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILER_RUN_HOUR: %w", err)
	}

	config.Reconciler = ReconcilerConfig{
		Enabled:       getEnv("RECONCILER_ENABLED", "true") == "true",
		CheckInterval: checkInterval,
		RunHour:       runHour,
		AbsentAnchor:  getEnv("ABSENT_ANCHOR", "23:00"),
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "/uploads"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.WorkWindowStartHour >= c.Attendance.WorkWindowEndHour {
		return fmt.Errorf("WORK_WINDOW_START_HOUR must be before WORK_WINDOW_END_HOUR")
	}
	if c.Attendance.NormalWorkMinutes > c.Attendance.FullWorkMinutes {
		return fmt.Errorf("NORMAL_WORK_MINUTES must not exceed FULL_WORK_MINUTES")
	}
	if c.Reconciler.RunHour < 0 || c.Reconciler.RunHour > 23 {
		return fmt.Errorf("RECONCILER_RUN_HOUR must be within 0-23")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
