package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crmdeck/crmdeck/internal/common/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestGetLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"dpanic":  zapcore.DPanicLevel,
		"panic":   zapcore.PanicLevel,
		"fatal":   zapcore.FatalLevel,
		"unknown": zapcore.InfoLevel, // default
	}
	for in, exp := range cases {
		assert.Equal(t, exp, getLogLevel(in))
	}
}

func TestSetLoggerDefaults(t *testing.T) {
	cfg := &config.LoggerConfig{}
	setLoggerDefaults(cfg)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.Equal(t, 100, cfg.MaxSize)
	assert.Equal(t, 3, cfg.MaxBackups)
	assert.Equal(t, 7, cfg.MaxAge)
}

func TestNewLoggerStdout(t *testing.T) {
	lg, err := NewLogger(&config.LoggerConfig{Level: "debug", Format: "console"})
	assert.NoError(t, err)
	assert.NotNil(t, lg)
	lg.Debug("hello")
}

func TestNewLoggerFileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "crm.log")
	lg, err := NewLogger(&config.LoggerConfig{Output: "file", FilePath: path})
	assert.NoError(t, err)
	lg.Info("written to file")
	_ = lg.Sync()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}
