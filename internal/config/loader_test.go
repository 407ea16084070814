package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/mspsec/riskboard/internal/config"
	"github.com/mspsec/riskboard/internal/infrastructure/monitoring"
)

func TestWatchLogLevel_AppliesConfigFileChanges(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("config.yaml", []byte("log:\n  level: info\n"), 0o644))

	log, err := monitoring.NewZapLogger(&config.LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	require.NoError(t, config.WatchLogLevel(log.SetLevel))

	require.NoError(t, os.WriteFile("config.yaml", []byte("log:\n  level: debug\n"), 0o644))

	require.Eventually(t, func() bool {
		return log.Level() == zapcore.DebugLevel
	}, 5*time.Second, 50*time.Millisecond, "log level should follow the config file")
}

func TestWatchLogLevel_NoConfigFileIsNotAnError(t *testing.T) {
	t.Chdir(t.TempDir())

	log, err := monitoring.NewZapLogger(&config.LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	require.NoError(t, config.WatchLogLevel(log.SetLevel))
}
