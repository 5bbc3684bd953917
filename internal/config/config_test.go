package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "env"), 0o755); err != nil {
		t.Fatalf("failed creating env dir with error: %s", err)
	}
	yaml := `application:
  env: development
  host: 127.0.0.1
  port: 9090
  log_path: /tmp/storefront-test.log

token:
  secret_key: test-secret
  access_ttl: 15m
  refresh_ttl: 24h

db:
  host: localhost
  port: 5432
  name: storefront
  username: storefront
  password: storefront
  migration_path: file://migrations
  max_connections: 4
  min_connections: 1

cache:
  host: localhost
  port: 6379
  database: 0

otel:
  host: localhost
  port: 4317
`
	path := filepath.Join(dir, "env", "storefront-test.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("failed writing config file with error: %s", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed getting working directory with error: %s", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed changing directory with error: %s", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg := InitConfig(context.Background(), "storefront-test")

	assert.Equal(t, "/tmp/storefront-test.log", cfg.Application.LogPath)
	assert.Equal(t, "development", cfg.Application.Env)
	assert.Equal(t, "127.0.0.1", cfg.Application.Host)
	assert.Equal(t, 9090, cfg.Application.Port)
	assert.Equal(t, 15*time.Minute, cfg.Token.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.Token.RefreshTTL)
	assert.Equal(t, "storefront", cfg.Database.Name)
	assert.Equal(t, uint16(6379), cfg.Cache.Port)
}
