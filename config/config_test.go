package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJSONAndDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"app": {"JWTSecret": "from-file", "AllowedOrigins": ["https://a.example"]},
		"database": {"Driver": "sqlite", "SQLitePath": "/tmp/y.db"},
		"cache": {"IndexTTLSeconds": 5},
		"admin": {"Usernames": ["Root"]}
	}`)

	c, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", c.JWTSecret)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "/tmp/y.db", c.SQLitePath)
	assert.Equal(t, 5*time.Second, c.IndexCacheTTL())
	assert.Equal(t, []string{"https://a.example"}, c.AllowedOrigins)
	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, 72*time.Hour, c.TokenTTL())
	assert.Equal(t, 60, c.RateLimitPerMinute)
	assert.True(t, c.IsAdmin("root"))
	assert.False(t, c.IsAdmin("guest"))
	assert.False(t, c.IsAdmin(""))
}

func TestParseEnvOverrides(t *testing.T) {
	path := writeConfig(t, `{"app": {"JWTSecret": "from-file"}}`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("INDEX_CACHE_TTL_SECONDS", "30")
	t.Setenv("ADMIN_USERNAMES", "a, b ,")

	c, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.JWTSecret)
	assert.Equal(t, "postgres", c.DBDriver)
	assert.Equal(t, 30, c.IndexCacheTTLSeconds)
	assert.Equal(t, []string{"a", "b"}, c.AdminUsernames)
}

func TestParseMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	c, err := Parse(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, "mysql", c.DBDriver)
	assert.Equal(t, 20, c.IndexCacheTTLSeconds)
}

func TestParseRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Parse(writeConfig(t, `{}`))
	assert.Error(t, err)
}

func TestParseRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("DB_DRIVER", "oracle")
	_, err := Parse(writeConfig(t, `{}`))
	assert.Error(t, err)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	_, err := Parse(writeConfig(t, `{`))
	assert.Error(t, err)
}

func TestDialectorFor(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := dialectorFor(AppConfig{DBDriver: driver, SQLitePath: "x.db"})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}
	_, err := dialectorFor(AppConfig{DBDriver: "mssql"})
	assert.Error(t, err)
}
