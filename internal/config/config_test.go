package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model.Name)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
}

func TestLoad_FileThenEnv(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := `
http:
  addr: ":9090"
  max_upload_mb: 5
database:
  driver: sqlite
  sqlite_path: /tmp/posters.db
model:
  name: gemini-1.5-pro
  timeout: 30s
redis:
  addr: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0o600))

	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, int64(5), cfg.HTTP.MaxUploadMB)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/posters.db", cfg.Database.SQLitePath)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model.Name, "env overrides file")
	assert.Equal(t, 30*time.Second, cfg.Model.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseEnv_IgnoresMalformedNumbers(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("MODEL_TIMEOUT", "soon")

	cfg.ParseEnv()

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, time.Duration(0), cfg.Model.Timeout)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(true), "api key required for serving")
	assert.NoError(t, cfg.Validate(false))

	cfg.Model.APIKey = "key"
	assert.NoError(t, cfg.Validate(true))

	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate(false))
}

func TestDSN(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=poster_db sslmode=disable",
		cfg.Database.DSN())
}

func TestParseEnv_DatabaseURL(t *testing.T) {
	cases := []struct {
		url        string
		driver     string
		dsn        string
		sqlitePath string
	}{
		{"postgresql://poster:secret@db:5432/events", "postgres", "postgresql://poster:secret@db:5432/events", "posters.db"},
		{"postgresql+psycopg2://poster:secret@db/events", "postgres", "postgresql://poster:secret@db/events", "posters.db"},
		{"postgres://u@localhost/events?sslmode=disable", "postgres", "postgresql://u@localhost/events?sslmode=disable", "posters.db"},
		{"sqlite:///./posters_dev.db", "sqlite", "", "./posters_dev.db"},
		{"sqlite:////var/lib/posters.db", "sqlite", "", "/var/lib/posters.db"},
	}

	for _, tc := range cases {
		t.Run(tc.url, func(t *testing.T) {
			t.Setenv("DB_DRIVER", "sqlite")
			t.Setenv("DATABASE_URL", tc.url)

			cfg := DefaultConfig()
			cfg.ParseEnv()
			require.NoError(t, cfg.Validate(false))

			assert.Equal(t, tc.driver, cfg.Database.Driver, "DATABASE_URL overrides DB_DRIVER")
			assert.Equal(t, tc.sqlitePath, cfg.Database.SQLitePath)
			if tc.dsn != "" {
				assert.Equal(t, tc.dsn, cfg.Database.DSN())
			}
		})
	}
}

func TestParseEnv_WithoutDatabaseURLBuildsDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cfg := DefaultConfig()
	cfg.ParseEnv()
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=poster_db sslmode=disable", cfg.Database.DSN())
}

func TestValidate_UnsupportedDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "mysql://root@localhost/events")
	cfg := DefaultConfig()
	cfg.ParseEnv()
	assert.Error(t, cfg.Validate(false))
}
