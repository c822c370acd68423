package config

import "os"

// Config collects everything read from the environment. Defaults suit a local
// development setup.
type Config struct {
	Addr          string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	FCMServerKey  string
	MediaDir      string
	MediaBaseURL  string
}

func Load() Config {
	return Config{
		Addr:          getenv("ADDR", ":8080"),
		PostgresDSN:   getenv("DATABASE_DSN", "host=localhost user=user password=password dbname=duetchat port=5432 sslmode=disable"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getenv("JWT_SECRET", "dev-secret-change-me"),
		FCMServerKey:  os.Getenv("FCM_SERVER_KEY"),
		MediaDir:      getenv("MEDIA_DIR", "./media"),
		MediaBaseURL:  getenv("MEDIA_BASE_URL", "/media"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
