package config

import (
	"os"
)

type Config struct {
	Port           string
	GinMode        string
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	ClientBuildDir string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3001"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		DBDriver:       getEnv("DB_DRIVER", "mysql"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "thoughts"),
		DBPassword:     getEnv("DB_PASSWORD", "thoughts"),
		DBName:         getEnv("DB_NAME", "deep_thoughts"),
		JWTSecret:      getEnv("JWT_SECRET", "mysecretsshhhhh"),
		ClientBuildDir: getEnv("CLIENT_BUILD_DIR", "client/build"),
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
