package config

import "os"

// Config is the process configuration, read from the environment after a
// best-effort .env load.
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	LogLevel      string
	LogFormat     string // "json" or "console"
	AllowOrigin   string
	AdminEmail    string
	AdminPassword string
	TextbeltKey   string // optional, SMS reminders are skipped without it
}

func Load() *Config {
	return &Config{
		Port:          getEnv("API_PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "backsistdent"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		AllowOrigin:   getEnv("CORS_ORIGIN", "http://localhost:5173"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@backsistdent.local"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		TextbeltKey:   os.Getenv("TEXTBELT_API_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
