package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/smartware/smartware-api/internal/flagx"
	"github.com/smartware/smartware-api/internal/timex"
)

// JsonConfig is the JSON-file shape of Config. Duration fields use
// timex.Duration so both "15m" strings and integer nanoseconds parse.
type JsonConfig struct {
	EndpointAddr         string         `json:"endpoint_addr"`
	DatabaseDSN          string         `json:"database_dsn"`
	JWTSecretKey         string         `json:"jwt_secret_key"`
	JWTIssuer            string         `json:"jwt_issuer"`
	JWTAudience          string         `json:"jwt_audience"`
	AccessTokenValidity  timex.Duration `json:"access_token_validity"`
	RefreshTokenValidity timex.Duration `json:"refresh_token_validity"`
	CORSAllowedOrigin    string         `json:"cors_allowed_origin"`
}

// parseJson overlays configuration from the JSON file named by the -c or
// -config flags onto config. Absent flags mean no file is loaded; an
// unreadable or malformed file panics, because starting with a half-read
// config is worse than not starting. Fields missing from the file keep
// their current values.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.JWTSecretKey != "" {
		config.JWTSecretKey = c.JWTSecretKey
	}
	if c.JWTIssuer != "" {
		config.JWTIssuer = c.JWTIssuer
	}
	if c.JWTAudience != "" {
		config.JWTAudience = c.JWTAudience
	}
	if c.AccessTokenValidity.Duration != 0 {
		config.AccessTokenValidity = time.Duration(c.AccessTokenValidity.Duration)
	}
	if c.RefreshTokenValidity.Duration != 0 {
		config.RefreshTokenValidity = time.Duration(c.RefreshTokenValidity.Duration)
	}
	if c.CORSAllowedOrigin != "" {
		config.CORSAllowedOrigin = c.CORSAllowedOrigin
	}
}
