package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigResolvesEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apiserver.yaml")
	content := `
port: ${CRM_PORT:8000}
database:
  type: sqlite
  dbname: ${CRM_DB_PATH:./data/crm.db}
jwt:
  secret_key: ${CRM_JWT_SECRET:0123456789abcdef0123456789abcdef}
  duration: 24h
logger:
  level: debug
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, cfgPath, err := LoadConfig[APIServerConfig](path)
	assert.NoError(t, err)
	assert.Equal(t, path, cfgPath)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Len(t, cfg.JWT.SecretKey, 32)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Duration.Std())
}

func TestDurationParsing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "console.yaml")
	content := "timeout: 30s\ntoast_ttl: 4.5s\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, _, err := LoadConfig[ConsoleConfig](path)
	assert.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Timeout.Std())
	assert.Equal(t, 4500*time.Millisecond, cfg.ToastTTL.Std())

	bad := "timeout: not-a-duration\n"
	assert.NoError(t, os.WriteFile(path, []byte(bad), 0644))
	_, _, err = LoadConfig[ConsoleConfig](path)
	assert.Error(t, err)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "console.yaml")
	content := "base_url: ${CRM_BASE_URL:http://localhost:8000}\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("CRM_BASE_URL", "http://crm.internal:9000")
	cfg, _, err := LoadConfig[ConsoleConfig](path)
	assert.NoError(t, err)
	assert.Equal(t, "http://crm.internal:9000", cfg.BaseURL)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := LoadConfig[ConsoleConfig](filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	pg := DatabaseConfig{Type: "postgres", Host: "db", Port: 5432, User: "crm", Password: "pw", DBName: "crm", SSLMode: "disable"}
	assert.Equal(t, "postgres://crm:pw@db:5432/crm?sslmode=disable", pg.GetDSN())

	my := DatabaseConfig{Type: "mysql", Host: "db", Port: 3306, User: "crm", Password: "pw", DBName: "crm"}
	assert.Contains(t, my.GetDSN(), "crm:pw@tcp(db:3306)/crm")

	unknown := DatabaseConfig{Type: "oracle"}
	assert.Equal(t, "", unknown.GetDSN())
}
