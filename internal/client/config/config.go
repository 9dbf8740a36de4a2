package config

// Backend selects the backing store of the dashboard.
type Backend string

const (
	BackendREST Backend = "rest"
	BackendBolt Backend = "bolt"
)

// Config holds runtime settings for the admin client.
//
// Fields:
//   - BaseURL: base URL of the REST API (rest backend only).
//   - Backend: "rest" or "bolt".
//   - PageSize: users per dashboard page.
//   - BoltPath: file path of the local document store (bolt backend only).
//   - SessionDSN: sqlite DSN of the persisted-session database.
type Config struct {
	BaseURL    string
	Backend    Backend
	PageSize   int
	BoltPath   string
	SessionDSN string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.Backend = BackendREST
	c.PageSize = 10
	c.BoltPath = "users.db"
	c.SessionDSN = "session.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
