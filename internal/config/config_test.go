package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Data.TopN)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, ":8080", cfg.ListenAddr())
}

func TestLoadFromFile_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
data:
  dataset_file: /tmp/shelter.csv
security:
  session_ttl: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/shelter.csv", cfg.Data.DatasetFile)
	assert.Equal(t, time.Hour, cfg.Security.SessionTTL)
	// Untouched fields keep their defaults.
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))

	t.Setenv("SHELTER_SERVER_PORT", "7070")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "bad port",
			env:  map[string]string{"SHELTER_SERVER_PORT": "99999"},
			want: "invalid server port",
		},
		{
			name: "bad logging output",
			env:  map[string]string{"SHELTER_LOGGING_OUTPUT": "syslog"},
			want: "invalid logging output",
		},
		{
			name: "bad bcrypt cost",
			env:  map[string]string{"SHELTER_SECURITY_BCRYPT_COST": "99"},
			want: "bcrypt cost out of range",
		},
		{
			name: "bad top_n",
			env:  map[string]string{"SHELTER_DATA_TOP_N": "0"},
			want: "top_n must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromFile("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewPaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "data"
	cfg.Paths.DatabaseFile = "/absolute/shelter.db"

	paths, err := NewPaths(&cfg)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(paths.DataDir), "relative paths are resolved")
	assert.Equal(t, "/absolute/shelter.db", paths.DatabaseFile)
	assert.Equal(t, filepath.Join(paths.OutputDir, "cleaned.csv"), paths.OutputPath("cleaned.csv"))
}
