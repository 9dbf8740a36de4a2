package config

import (
	"encoding/json"
	"os"

	"github.com/avolkovx/userdesk/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling; values are
// copied into the runtime Config afterwards.
type JsonConfig struct {
	BaseURL    string `json:"base_url"`
	Backend    string `json:"backend"`
	PageSize   int    `json:"page_size"`
	BoltPath   string `json:"bolt_path"`
	SessionDSN string `json:"session_dsn"`
}

// parseJson overlays Config with values loaded from the JSON file given via
// -c or -config. With no such flag the function is a no-op. Read or unmarshal
// errors panic; callers may recover if desired. Empty fields keep defaults.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.Backend != "" {
		cfg.Backend = Backend(jc.Backend)
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.BoltPath != "" {
		cfg.BoltPath = jc.BoltPath
	}
	if jc.SessionDSN != "" {
		cfg.SessionDSN = jc.SessionDSN
	}
}
