package config

import (
	"os"
	"strings"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	OpenAIAPIKey  string

	Authz AuthzConfig
}

// AuthzConfig holds the role sets required per operation group. The
// reference deployment drifted between Member-only and Member-or-Admin
// gates for the same resources; making the sets configuration keeps a
// single source of truth for who can do what.
type AuthzConfig struct {
	// Mutate gates every create/update/delete within a family.
	Mutate []string
	// CrossFamilyRead gates listings that span all families.
	CrossFamilyRead []string
}

func Load() *Config {
	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "taskhome"),
		DBPassword:    getEnv("DB_PASSWORD", "taskhome"),
		DBName:        getEnv("DB_NAME", "home_task_management"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		Authz: AuthzConfig{
			Mutate:          getEnvList("AUTHZ_MUTATE_ROLES", "Member"),
			CrossFamilyRead: getEnvList("AUTHZ_CROSS_FAMILY_ROLES", "Member,Admin"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
