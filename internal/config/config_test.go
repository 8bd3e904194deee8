package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mskarstad/benchboss/internal/platform/logging"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, logging.LevelInfo, cfg.LogLevel)
	require.Equal(t, "benchboss_save.json", cfg.SaveFilePath)
	require.False(t, cfg.NarratorEnabled)
	require.Equal(t, 4, cfg.AutoSimWorkers)
	require.Equal(t, 5*time.Second, cfg.NarratorTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BENCHBOSS_LOG_LEVEL", "debug")
	t.Setenv("BENCHBOSS_NARRATOR_ENABLED", "true")
	t.Setenv("BENCHBOSS_NARRATOR_URL", "http://localhost:9090/")
	t.Setenv("BENCHBOSS_AUTOSIM_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, logging.LevelDebug, cfg.LogLevel)
	require.True(t, cfg.NarratorEnabled)
	require.Equal(t, "http://localhost:9090", cfg.NarratorBaseURL, "trailing slash should be trimmed")
	require.Equal(t, 8, cfg.AutoSimWorkers)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("BENCHBOSS_LOG_LEVEL", "shouty")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("BENCHBOSS_LOG_LEVEL", "info")
	t.Setenv("BENCHBOSS_NARRATOR_TIMEOUT", "not-a-duration")
	_, err = Load()
	require.Error(t, err)
}

func TestWorkerFloor(t *testing.T) {
	t.Setenv("BENCHBOSS_AUTOSIM_WORKERS", "0")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1, cfg.AutoSimWorkers)
}
