package config

import "os"

// Config holds all server configuration, loaded from the environment with
// local-dev defaults.
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	Port      string
	JWTSecret string
	Engine    *EngineConfig
}

// Load reads configuration from the environment
func Load() *Config {
	return &Config{
		MongoURI:  getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnvOrDefault("MONGO_DB", "agentops"),
		RedisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		Port:      getEnvOrDefault("PORT", "8080"),
		JWTSecret: getEnvOrDefault("JWT_SECRET", "super-secret-key-change-in-production"),
		Engine:    DefaultEngineConfig(),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
