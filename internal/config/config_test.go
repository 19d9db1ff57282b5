package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "valid development config",
			config: Config{Port: "8390", JWTSecret: "dev-secret", Env: "development"},
		},
		{
			name:    "missing port",
			config:  Config{JWTSecret: "dev-secret"},
			wantErr: "PORT is required",
		},
		{
			name:    "missing jwt secret",
			config:  Config{Port: "8390"},
			wantErr: "JWT_SECRET is required",
		},
		{
			name: "production rejects default secret",
			config: Config{
				Port:      "8390",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "production",
			},
			wantErr: "must be changed from the default",
		},
		{
			name: "production rejects short secret",
			config: Config{
				Port:       "8390",
				JWTSecret:  "short",
				DBPassword: "str0ng-db-password",
				Env:        "production",
			},
			wantErr: "at least 32 characters",
		},
		{
			name: "production rejects weak db password",
			config: Config{
				Port:       "8390",
				JWTSecret:  strings.Repeat("s", 32),
				DBPassword: "password",
				Env:        "production",
			},
			wantErr: "strong DB_PASSWORD",
		},
		{
			name: "valid production config",
			config: Config{
				Port:       "8390",
				JWTSecret:  strings.Repeat("s", 32),
				DBPassword: "str0ng-db-password",
				DBSSLMode:  "require",
				Env:        "production",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8390", cfg.Port)
	assert.Equal(t, "forkful", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "media", cfg.MediaDir)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "9999")
	t.Setenv("DB_NAME", "forkful_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "forkful_test", cfg.DBName)
}
