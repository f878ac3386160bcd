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
	CORSAllowOrigins        string
	DatabaseURL             string
	DatabaseMaxOpenConns    int
	DatabaseMaxIdleConns    int
	DatabaseConnMaxLifetime time.Duration
	RedisURL                string
	NATSURL                 string
	JWTSecret               string
	CloudinaryCloudName     string
	CloudinaryAPIKey        string
	CloudinaryAPISecret     string
	CloudinaryUploadFolder  string
	LeaderboardCacheTTL     time.Duration
	NotificationChannel     string
	AIProvider              string
	OpenAIAPIKey            string
	OpenAIModel             string
	SeedEnabled             bool
	SeedToken               string
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
	v.SetEnvPrefix("TEACHBACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "TeachBack API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cors.allow_origins", "*")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("cloudinary.folder", "teachback/media")
	v.SetDefault("leaderboard.cache_ttl", "1m")
	v.SetDefault("notification.channel", "teachback")
	v.SetDefault("ai.provider", "openai")

	ttlString := v.GetString("leaderboard.cache_ttl")
	if ttlString == "" {
		ttlString = "1m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid leaderboard cache ttl: %w", err)
	}

	connLifetime, err := time.ParseDuration(v.GetString("database.conn_max_lifetime"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid database conn max lifetime: %w", err)
	}

	cfg := Config{
		AppName:                 v.GetString("app.name"),
		AppEnv:                  v.GetString("app.env"),
		AppPort:                 v.GetString("app.port"),
		CORSAllowOrigins:        v.GetString("cors.allow_origins"),
		DatabaseURL:             v.GetString("database.url"),
		DatabaseMaxOpenConns:    v.GetInt("database.max_open_conns"),
		DatabaseMaxIdleConns:    v.GetInt("database.max_idle_conns"),
		DatabaseConnMaxLifetime: connLifetime,
		RedisURL:                v.GetString("redis.url"),
		NATSURL:                 v.GetString("nats.url"),
		JWTSecret:               v.GetString("jwt.secret"),
		CloudinaryCloudName:     v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:        v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:     v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder:  v.GetString("cloudinary.folder"),
		LeaderboardCacheTTL:     ttl,
		NotificationChannel:     v.GetString("notification.channel"),
		AIProvider:              strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey:            v.GetString("openai_api_key"),
		OpenAIModel:             v.GetString("openai_model"),
		SeedEnabled:             v.GetBool("seed.enabled"),
		SeedToken:               v.GetString("seed.token"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
