package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
[server]
http_port = 8083
read_timeout = 15
write_timeout = 15
idle_timeout = 60
shutdown_timeout = 10

[logs]
file = "logs/app.log"
level = "info"

[metrics]
enabled = true
path = "/metrics"
service_name = "sln-scheduling-service"

[redis]
addr = "localhost:6379"
password = ""
db = 0

[salon_service]
url = "http://localhost:8081"
timeout = 5

[schedule]
grid_start = "05:00"
grid_end = "19:30"
granularity_minutes = 30
session_ttl_minutes = 30
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8083, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "http://localhost:8081", cfg.SalonService.URL)
	assert.Equal(t, "05:00", cfg.Schedule.GridStart)
	assert.Equal(t, 30, cfg.Schedule.GranularityMinutes)
	assert.Equal(t, 30, cfg.Schedule.SessionTTLMinutes)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "missing redis addr",
			mutate:  func(c string) string { return strings.Replace(c, `addr = "localhost:6379"`, `addr = ""`, 1) },
			wantErr: "redis.addr",
		},
		{
			name:    "missing salon service url",
			mutate:  func(c string) string { return strings.Replace(c, `url = "http://localhost:8081"`, `url = ""`, 1) },
			wantErr: "salon_service.url",
		},
		{
			name: "zero granularity",
			mutate: func(c string) string {
				return strings.Replace(c, "granularity_minutes = 30", "granularity_minutes = 0", 1)
			},
			wantErr: "granularity_minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.mutate(validConfig)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
