package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/sensorcheck/internal/check"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]string{"--host", "10.0.0.5", "--user", "pi", "--password", "raspberry"})
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, "pi", cfg.User)
	assert.Equal(t, 22, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.ExpectedSensors)
	assert.Equal(t, check.Range{Min: -20, Max: 80}, cfg.TempRange)
	assert.Equal(t, check.Range{Min: 30, Max: 50}, cfg.HumRange)
	assert.False(t, cfg.JSONOutput)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadFullFlags(t *testing.T) {
	cfg, err := Load([]string{
		"--host", "minipc.local",
		"--user", "ops",
		"--key", "/home/ops/.ssh/id_ed25519",
		"--port", "2222",
		"--timeout", "5s",
		"--expected-sensors", "4",
		"--temp-range", "-21,27",
		"--hum-range", "30,50",
		"--json",
		"--log-level", "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "/home/ops/.ssh/id_ed25519", cfg.KeyFile)
	assert.Empty(t, cfg.Password)
	assert.Equal(t, 2222, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.ExpectedSensors)
	assert.Equal(t, check.Range{Min: -21, Max: 27}, cfg.TempRange)
	assert.True(t, cfg.JSONOutput)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SENSORCHECK_HOST", "10.1.1.1")
	t.Setenv("SENSORCHECK_PASSWORD", "hunter2")

	cfg, err := Load([]string{"--user", "pi"})
	require.NoError(t, err)

	assert.Equal(t, "10.1.1.1", cfg.Host)
	assert.Equal(t, "hunter2", cfg.Password)
}

func TestLoadRejectsInvalid(t *testing.T) {
	base := []string{"--host", "h", "--user", "u", "--password", "p"}

	tests := []struct {
		name string
		args []string
	}{
		{"no host", []string{"--user", "u", "--password", "p"}},
		{"no user", []string{"--host", "h", "--password", "p"}},
		{"no credential", []string{"--host", "h", "--user", "u"}},
		{"both credentials", append(base, "--key", "/k")},
		{"inverted temp range", append(base, "--temp-range", "80,-20")},
		{"inverted hum range", append(base, "--hum-range", "50,30")},
		{"short range", append(base, "--temp-range", "5")},
		{"negative expected count", append(base, "--expected-sensors", "-1")},
		{"bad port", append(base, "--port", "70000")},
		{"zero timeout", append(base, "--timeout", "0s")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}
