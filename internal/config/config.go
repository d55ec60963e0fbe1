package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                 string
	AppEnv                  string
	AppPort                 string
	DatabaseURL             string
	RedisURL                string
	NATSURL                 string
	EventChannel            string
	JWTSecret               string
	MockCategory            string
	PresentThresholdMinutes int
	HeartbeatCapMinutes     int
	HeartbeatMinInterval    time.Duration
	SubmitRateLimit         int
	CORSAllowOrigins        string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GEMA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GEMA Proficiency API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("events.channel", "gema.exams")
	v.SetDefault("exam.mock_category", "MOCK")
	v.SetDefault("attendance.present_threshold_minutes", 40)
	v.SetDefault("attendance.heartbeat_cap_minutes", 5)
	v.SetDefault("attendance.heartbeat_min_interval", "30s")
	v.SetDefault("submit.rate_limit", 5)

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	intervalString := v.GetString("attendance.heartbeat_min_interval")
	if intervalString == "" {
		intervalString = "30s"
	}

	interval, err := time.ParseDuration(intervalString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid heartbeat interval: %w", err)
	}

	cfg := Config{
		AppName:                 v.GetString("app.name"),
		AppEnv:                  v.GetString("app.env"),
		AppPort:                 v.GetString("app.port"),
		DatabaseURL:             v.GetString("database.url"),
		RedisURL:                v.GetString("redis.url"),
		NATSURL:                 v.GetString("nats.url"),
		EventChannel:            v.GetString("events.channel"),
		JWTSecret:               v.GetString("jwt.secret"),
		MockCategory:            strings.ToUpper(strings.TrimSpace(v.GetString("exam.mock_category"))),
		PresentThresholdMinutes: v.GetInt("attendance.present_threshold_minutes"),
		HeartbeatCapMinutes:     v.GetInt("attendance.heartbeat_cap_minutes"),
		HeartbeatMinInterval:    interval,
		SubmitRateLimit:         v.GetInt("submit.rate_limit"),
		CORSAllowOrigins:        v.GetString("cors.allow_origins"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.MockCategory == "" {
		cfg.MockCategory = "MOCK"
	}

	if cfg.PresentThresholdMinutes <= 0 {
		cfg.PresentThresholdMinutes = 40
	}

	if cfg.HeartbeatCapMinutes <= 0 {
		cfg.HeartbeatCapMinutes = 5
	}

	if cfg.SubmitRateLimit <= 0 {
		cfg.SubmitRateLimit = 5
	}

	return cfg, nil
}
