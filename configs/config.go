package config

import (
	"os"
	"time"
)

type PlatformEndpoints struct {
	TwitterAPIURL    string
	FacebookGraphURL string
	LinkedInAPIURL   string
}

type Config struct {
	Port               string
	PostgresURI        string
	RedisURI           string
	FrontendURL        string
	SecretKey          string
	JWTSecret          string
	CookieName         string
	LogLevel           string
	Endpoints          PlatformEndpoints
	PublishTimeout     time.Duration
	StalePublishAfter  time.Duration
	StaleCheckInterval time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		PostgresURI: getEnv("POSTGRES_URI", ""),
		RedisURI:    getEnv("REDIS_URI", "localhost:6379"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:   getEnv("SECRET_KEY", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CookieName:  getEnv("COOKIE_NAME", "postbridge_session"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Endpoints: PlatformEndpoints{
			TwitterAPIURL:    getEnv("TWITTER_API_URL", "https://api.x.com"),
			FacebookGraphURL: getEnv("FACEBOOK_GRAPH_URL", "https://graph.facebook.com"),
			LinkedInAPIURL:   getEnv("LINKEDIN_API_URL", "https://api.linkedin.com"),
		},
		PublishTimeout:     getEnvDuration("PUBLISH_TIMEOUT", 30*time.Second),
		StalePublishAfter:  getEnvDuration("STALE_PUBLISH_AFTER", 15*time.Minute),
		StaleCheckInterval: getEnvDuration("STALE_CHECK_INTERVAL", 10*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
