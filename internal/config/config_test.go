package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TIMESHEET_CONFIG", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, time.Hour, cfg.TokenTTL.Duration)
	assert.Equal(t, ":3001", cfg.Addr())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesheet.toml")
	content := `
db_driver = "sqlite"
db_path = "/tmp/ts.sqlite"
jwt_secret = "from-file"
token_ttl = "30m"
cors_origins = ["https://a.example", "https://b.example"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/ts.sqlite", cfg.DBPath)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL.Duration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")

	_, err := Load("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }},
		{"empty secret", func(c *Config) { c.JWTSecret = " " }},
		{"default secret in release", func(c *Config) { c.GinMode = "release" }},
		{"unknown gin mode", func(c *Config) { c.GinMode = "prod" }},
		{"zero ttl", func(c *Config) { c.TokenTTL = Duration{} }},
		{"sqlite without path", func(c *Config) { c.DBDriver = DriverSQLite; c.DBPath = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
}
