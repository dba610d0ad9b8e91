package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables, loading a
// .env file first when one is present. Unset variables leave the current
// value untouched.
//
// Recognized variables:
//
//	HTTP_ADDR, DATABASE_DSN, SECRET_KEY,
//	ACCESS_TOKEN_VALIDITY, REFRESH_TOKEN_VALIDITY (Go duration strings),
//	STORAGE_TYPE, UPLOAD_DIR,
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT,
//	REDIS_ADDR, REDIS_PASSWORD, CACHE_TTL (Go duration string)
func parseEnv(config *Config) {
	// missing .env is the normal case
	_ = godotenv.Load()

	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString("HTTP_ADDR", &config.EndpointAddrHTTP)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("SECRET_KEY", &config.SecretKey)
	setDuration("ACCESS_TOKEN_VALIDITY", &config.AccessTokenValidityDuration)
	setDuration("REFRESH_TOKEN_VALIDITY", &config.RefreshTokenValidityDuration)
	setString("STORAGE_TYPE", &config.StorageType)
	setString("UPLOAD_DIR", &config.UploadDir)
	setString("S3_ROOT_USER", &config.S3RootUser)
	setString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	setString("S3_BUCKET", &config.S3Bucket)
	setString("S3_REGION", &config.S3Region)
	setString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	setString("REDIS_ADDR", &config.RedisAddr)
	setString("REDIS_PASSWORD", &config.RedisPassword)
	setDuration("CACHE_TTL", &config.CacheTTL)
}
