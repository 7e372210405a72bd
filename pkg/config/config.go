package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	PublicDir string

	Database DatabaseConfig
	Weather  WeatherConfig
	CORS     CORSConfig
	Log      LogConfig
}

// DatabaseConfig locates the embedded SQLite file.
type DatabaseConfig struct {
	Dir          string
	File         string
	MaxOpenConns int
	BusyTimeout  time.Duration
}

// WeatherConfig configures the upstream weather provider.
type WeatherConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.PublicDir = v.GetString("PUBLIC_DIR")

	cfg.Database = DatabaseConfig{
		Dir:          v.GetString("DATA_DIR"),
		File:         v.GetString("DB_FILE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		BusyTimeout:  parseDuration(v.GetString("DB_BUSY_TIMEOUT"), 5*time.Second),
	}

	cfg.Weather = WeatherConfig{
		APIKey:  strings.TrimSpace(v.GetString("OPENWEATHER_KEY")),
		BaseURL: v.GetString("OPENWEATHER_BASE_URL"),
		Timeout: parseDuration(v.GetString("OPENWEATHER_TIMEOUT"), 10*time.Second),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3000)
	v.SetDefault("PUBLIC_DIR", "public")

	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("DB_FILE", "students.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("DB_BUSY_TIMEOUT", "5s")

	v.SetDefault("OPENWEATHER_KEY", "")
	v.SetDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("OPENWEATHER_TIMEOUT", "10s")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
