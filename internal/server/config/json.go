package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avolkovx/userdesk/internal/flagx"
	"github.com/avolkovx/userdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It uses
// timex.Duration for the token lifetime, which allows parsing both string
// values such as "30m" and integer nanoseconds. Values are copied into the
// runtime Config afterwards.
type JsonConfig struct {
	Addr          string         `json:"addr"`
	DatabaseDSN   string         `json:"database_dsn"`
	SecretKey     string         `json:"secret_key"`
	TokenTTL      timex.Duration `json:"token_ttl"`
	AdminEmail    string         `json:"admin_email"`
	AdminPassword string         `json:"admin_password"`
}

// parseJson overlays Config with values loaded from the JSON file given via
// -c or -config. With no such flag the function is a no-op. Read or unmarshal
// errors panic; callers may recover if desired. Empty fields keep defaults,
// except DatabaseDSN which is applied as-is so that a JSON file can select
// the in-memory store explicitly.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	config.DatabaseDSN = c.DatabaseDSN
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenTTL.Duration > 0 {
		config.TokenTTL = time.Duration(c.TokenTTL.Duration)
	}
	if c.AdminEmail != "" {
		config.AdminEmail = c.AdminEmail
	}
	if c.AdminPassword != "" {
		config.AdminPassword = c.AdminPassword
	}
}
