package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// chdir changes the working directory for the rest of the test and
// restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(env(nil))

	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "protId", cfg.XrefTag)
	assert.False(t, cfg.StrictScores)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
	assert.Len(t, cfg.Notes, 2, "log level and xref tag fall back")
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "all set",
			env: map[string]string{
				EnvLogLevel:     "debug",
				EnvXrefTag:      "geneId",
				EnvStrictScores: "true",
				EnvWorkers:      "3",
			},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
				assert.Equal(t, "geneId", cfg.XrefTag)
				assert.True(t, cfg.StrictScores)
				assert.Equal(t, 3, cfg.Workers)
				assert.Empty(t, cfg.Notes)
			},
		},
		{
			name: "invalid values fall back",
			env: map[string]string{
				EnvLogLevel:     "shouty",
				EnvXrefTag:      "protId",
				EnvStrictScores: "maybe",
				EnvWorkers:      "0",
			},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
				assert.False(t, cfg.StrictScores)
				assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
				assert.Len(t, cfg.Notes, 3)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, FromEnv(env(tt.env)))
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	require.NoError(t, os.Unsetenv(EnvXrefTag))
	t.Cleanup(func() { os.Unsetenv(EnvXrefTag) })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvXrefTag+"=geneId\n"), 0o644))
	chdir(t, dir)

	cfg := Load()
	assert.Equal(t, "geneId", cfg.XrefTag)
	assert.NotContains(t, cfg.Notes, "No .env found, using local environment")
}

func TestLoadWithoutDotEnv(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := Load()
	assert.Contains(t, cfg.Notes, "No .env found, using local environment")
}
