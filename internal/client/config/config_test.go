package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://127.0.0.1:8080", cfg.BaseURL)
	require.Equal(t, BackendREST, cfg.Backend)
	require.Equal(t, 10, cfg.PageSize)
}

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"client", "-a", "http://api.example.com", "-b", "bolt", "-p", "25"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "http://api.example.com", cfg.BaseURL)
	require.Equal(t, BackendBolt, cfg.Backend)
	require.Equal(t, 25, cfg.PageSize)
}

func TestParseJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
		"base_url": "http://json.example.com",
		"page_size": 5
	}`), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"client", "-c", file}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "http://json.example.com", cfg.BaseURL)
	require.Equal(t, 5, cfg.PageSize)
	// untouched fields keep defaults
	require.Equal(t, BackendREST, cfg.Backend)
}

func TestFlagsOverrideJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"base_url": "http://json.example.com"}`), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"client", "-c", file, "-a", "http://flag.example.com"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)

	require.Equal(t, "http://flag.example.com", cfg.BaseURL)
}
