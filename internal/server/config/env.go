package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded (without overriding the real environment) before the
// variables are read. A missing file is not an error.
var envFile = ".env"

// parseEnv overlays values from environment variables.
//
//	PORT               listen port, becomes ":<PORT>"
//	STORAGE_BACKEND    postgres | mongo | memory
//	DATABASE_DSN       PostgreSQL DSN
//	MONGODB_URI        MongoDB connection string
//	MONGODB_DATABASE   MongoDB database name
//	SECRET_KEY         JWT HMAC secret
//	SALT_ROUNDS        bcrypt cost
//	TOKEN_TTL          token lifetime, Go duration syntax
//	CORS_ORIGINS       comma separated origins
//	LOG_LEVEL, LOG_FORMAT
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//
// Malformed numeric or duration values are ignored and the previous value kept.
func parseEnv(config *Config) {
	_ = godotenv.Load(envFile)

	if v := os.Getenv("PORT"); v != "" {
		config.EndpointAddrHTTP = ":" + v
	}
	stringFromEnv("STORAGE_BACKEND", &config.StorageBackend)
	stringFromEnv("DATABASE_DSN", &config.DatabaseDSN)
	stringFromEnv("MONGODB_URI", &config.MongoURI)
	stringFromEnv("MONGODB_DATABASE", &config.MongoDatabase)
	stringFromEnv("SECRET_KEY", &config.SecretKey)
	stringFromEnv("LOG_LEVEL", &config.LogLevel)
	stringFromEnv("LOG_FORMAT", &config.LogFormat)
	stringFromEnv("S3_ROOT_USER", &config.S3RootUser)
	stringFromEnv("S3_ROOT_PASSWORD", &config.S3RootPassword)
	stringFromEnv("S3_BUCKET", &config.S3Bucket)
	stringFromEnv("S3_REGION", &config.S3Region)
	stringFromEnv("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)

	if v := os.Getenv("SALT_ROUNDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.PasswordHashCost = n
		}
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		config.AllowedOrigins = splitList(v)
	}
}

func stringFromEnv(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
