package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGetConfig_Defaults(t *testing.T) {
	config, err := GetConfig("")
	require.NoError(t, err)

	assert.Equal(t, 0, config.Subdivisions)
	assert.Equal(t, "faithful", config.Mode)
	assert.Equal(t, "rgb", config.Space)
	assert.Equal(t, "linear", config.Easing)
	require.NotNil(t, config.RequireUniformSize)
	assert.False(t, *config.RequireUniformSize)
	assert.Equal(t, 4, config.Workers)
	assert.Equal(t, 24, config.FPS)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "frames/stream", config.Mqtt.Topic)
	assert.Equal(t, "frame-interpolator", config.Mqtt.ClientID)
}

func TestGetConfig_FromFile(t *testing.T) {
	path := writeConfig(t, `
subdivisions: 3
mode: compact
space: hcl
requireUniformSize: true
workers: 2
export:
  width: 320
  height: 200
  sigma: 0.5
  greyscale: true
server:
  port: 9000
  reloadInterval: 5m
mqtt:
  url: tcp://localhost:1883
`)

	config, err := GetConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, config.Subdivisions)
	assert.Equal(t, "compact", config.Mode)
	assert.Equal(t, "hcl", config.Space)
	assert.True(t, *config.RequireUniformSize)
	assert.Equal(t, 2, config.Workers)
	assert.Equal(t, Export{Width: 320, Height: 200, Sigma: 0.5, Greyscale: true}, config.Export)
	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, 5*time.Minute, config.Server.ReloadInterval)
	assert.Equal(t, "tcp://localhost:1883", config.Mqtt.URL)
}

func TestGetConfig_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "subdivisions: 3\nserver:\n  port: 9000\n")

	t.Setenv("FRAMES_SUBDIVISIONS", "7")
	t.Setenv("FRAMES_SERVER_PORT", "9100")
	t.Setenv("FRAMES_EXPORT_GREYSCALE", "true")
	t.Setenv("FRAMES_MQTT_PASSWORD", "hunter2")

	config, err := GetConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7, config.Subdivisions)
	assert.Equal(t, 9100, config.Server.Port)
	assert.True(t, config.Export.Greyscale)
	assert.Equal(t, "hunter2", config.Mqtt.Password)
}

func TestGetConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative subdivisions", "subdivisions: -1"},
		{"negative workers", "workers: -2"},
		{"negative fps", "fps: -5"},
		{"negative sigma", "export:\n  sigma: -1"},
		{"malformed yaml", "subdivisions: [1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestGetConfig_MissingFile(t *testing.T) {
	_, err := GetConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetConfig_BadEnvironmentValue(t *testing.T) {
	t.Setenv("FRAMES_FPS", "fast")
	_, err := GetConfig("")
	assert.Error(t, err)
}

func TestVerifyConfig_Nil(t *testing.T) {
	assert.Error(t, Verify(nil))
}
