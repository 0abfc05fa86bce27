package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// parseEnv overlays configuration from the process environment. A .env file
// in the working directory is loaded first, without clobbering variables
// already exported. Unset variables keep the current values.
//
// Recognized variables:
//
//	ADDRESS               HTTP bind address
//	DATABASE_DSN          PostgreSQL DSN
//	JWT_SECRET_KEY        HMAC signing secret
//	JWT_ISSUER            token issuer claim
//	JWT_AUDIENCE          token audience claim
//	ACCESS_TOKEN_MINUTES  access token lifetime, minutes
//	REFRESH_TOKEN_DAYS    refresh token lifetime, days
//	CORS_ALLOWED_ORIGIN   SPA origin
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.EndpointAddr = envOr("ADDRESS", config.EndpointAddr)
	config.DatabaseDSN = envOr("DATABASE_DSN", config.DatabaseDSN)
	config.JWTSecretKey = envOr("JWT_SECRET_KEY", config.JWTSecretKey)
	config.JWTIssuer = envOr("JWT_ISSUER", config.JWTIssuer)
	config.JWTAudience = envOr("JWT_AUDIENCE", config.JWTAudience)
	config.CORSAllowedOrigin = envOr("CORS_ALLOWED_ORIGIN", config.CORSAllowedOrigin)

	if v := os.Getenv("ACCESS_TOKEN_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.AccessTokenValidity = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("REFRESH_TOKEN_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			config.RefreshTokenValidity = time.Duration(days) * 24 * time.Hour
		}
	}
}
