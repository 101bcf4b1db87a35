package config

import (
	"testing"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	log := logger.New("test")

	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name:   "valid minimal config",
			config: Config{ServerPort: 8280, TimeZone: "UTC", AdviceTimeoutSeconds: 10},
		},
		{
			name:      "missing port",
			config:    Config{TimeZone: "UTC", AdviceTimeoutSeconds: 10},
			wantError: true,
		},
		{
			name:      "unknown time zone",
			config:    Config{ServerPort: 8280, TimeZone: "Mars/Olympus", AdviceTimeoutSeconds: 10},
			wantError: true,
		},
		{
			name: "cache address without port",
			config: Config{
				ServerPort: 8280, TimeZone: "UTC", AdviceTimeoutSeconds: 10,
				EventsCacheAddress: "localhost",
			},
			wantError: true,
		},
		{
			name:      "zero advice timeout",
			config:    Config{ServerPort: 8280, TimeZone: "UTC"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.config, log)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, Config{}.Location())
	assert.Equal(t, time.UTC, Config{TimeZone: "not/a/zone"}.Location())
}

func TestConfig_AdviceTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, Config{}.AdviceTimeout())
	assert.Equal(t, 3*time.Second, Config{AdviceTimeoutSeconds: 3}.AdviceTimeout())
}
