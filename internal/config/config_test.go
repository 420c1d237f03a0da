package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "127.0.0.1", cfg.Server.Bind)
	assert.Equal(t, 5002, cfg.Server.Port)
	assert.Equal(t, "db.json", cfg.Store.Path)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BIND", "0.0.0.0")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_PATH", "/var/lib/daybook/db.json")
	t.Setenv("UPLOAD_DIR", "/var/lib/daybook/uploads")

	cfg := Load()
	assert.Equal(t, "0.0.0.0", cfg.Server.Bind)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/var/lib/daybook/db.json", cfg.Store.Path)
	assert.Equal(t, "/var/lib/daybook/uploads", cfg.Uploads.Dir)
}

func TestLoadIgnoresBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	cfg := Load()
	assert.Equal(t, 5002, cfg.Server.Port)
}

func TestListenAddr(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "127.0.0.1:5002", cfg.ListenAddr())
}
