package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setFullEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SEMI_AUTO_API_KEY", "sk-test")
	t.Setenv("SEMI_AUTO_API_URL", "http://localhost:8080/v1")
	t.Setenv("SEMI_AUTO_API_MODEL", "llama-3-8b-instruct")
	t.Setenv("SEMI_AUTO_API_MODE", "")
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "SEMI_AUTO_API_KEY", EnvName(KeyAPIKey))
	assert.Equal(t, "SEMI_AUTO_API_URL", EnvName(KeyAPIURL))
	assert.Equal(t, "SEMI_AUTO_API_MODEL", EnvName(KeyModel))
	assert.Equal(t, "SEMI_AUTO_API_MODE", EnvName(KeyAPIMode))
}

func TestLoad(t *testing.T) {
	setFullEnv(t)

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "http://localhost:8080/v1", cfg.APIBaseURL)
	assert.Equal(t, "llama-3-8b-instruct", cfg.Model)
	assert.Equal(t, ModeCompletion, cfg.APIMode)
}

func TestLoad_MissingVariable(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		wantVar string
	}{
		{name: "missing api key", unset: "SEMI_AUTO_API_KEY", wantVar: "SEMI_AUTO_API_KEY"},
		{name: "missing api url", unset: "SEMI_AUTO_API_URL", wantVar: "SEMI_AUTO_API_URL"},
		{name: "missing model", unset: "SEMI_AUTO_API_MODEL", wantVar: "SEMI_AUTO_API_MODEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setFullEnv(t)
			t.Setenv(tt.unset, "")

			cfg, err := Load(New())
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.Is(err, ErrConfigurationMissing))

			var missing *MissingError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.wantVar, missing.Name)
			assert.Contains(t, err.Error(), tt.wantVar)
		})
	}
}

func TestLoad_ShortCircuitsOnFirstMissing(t *testing.T) {
	t.Setenv("SEMI_AUTO_API_KEY", "")
	t.Setenv("SEMI_AUTO_API_URL", "")
	t.Setenv("SEMI_AUTO_API_MODEL", "")

	_, err := Load(New())
	var missing *MissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "SEMI_AUTO_API_KEY", missing.Name)
}

func TestLoad_APIMode(t *testing.T) {
	t.Run("chat from env", func(t *testing.T) {
		setFullEnv(t)
		t.Setenv("SEMI_AUTO_API_MODE", "CHAT")

		cfg, err := Load(New())
		require.NoError(t, err)
		assert.Equal(t, ModeChat, cfg.APIMode)
	})

	t.Run("override wins over env", func(t *testing.T) {
		setFullEnv(t)
		t.Setenv("SEMI_AUTO_API_MODE", "chat")

		v := New()
		v.Set(KeyAPIMode, ModeCompletion)
		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, ModeCompletion, cfg.APIMode)
	})

	t.Run("unsupported mode", func(t *testing.T) {
		setFullEnv(t)
		t.Setenv("SEMI_AUTO_API_MODE", "embeddings")

		_, err := Load(New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported api mode")
		assert.False(t, errors.Is(err, ErrConfigurationMissing))
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid completion config",
			config: Config{APIKey: "sk", APIBaseURL: "http://x", Model: "m", APIMode: ModeCompletion},
		},
		{
			name:   "valid chat config",
			config: Config{APIKey: "sk", APIBaseURL: "http://x", Model: "m", APIMode: ModeChat},
		},
		{
			name:    "missing key",
			config:  Config{APIBaseURL: "http://x", Model: "m", APIMode: ModeCompletion},
			wantErr: true,
			errMsg:  "SEMI_AUTO_API_KEY",
		},
		{
			name:    "missing url",
			config:  Config{APIKey: "sk", Model: "m", APIMode: ModeCompletion},
			wantErr: true,
			errMsg:  "SEMI_AUTO_API_URL",
		},
		{
			name:    "missing model",
			config:  Config{APIKey: "sk", APIBaseURL: "http://x", APIMode: ModeCompletion},
			wantErr: true,
			errMsg:  "SEMI_AUTO_API_MODEL",
		},
		{
			name:    "bad mode",
			config:  Config{APIKey: "sk", APIBaseURL: "http://x", Model: "m", APIMode: "stream"},
			wantErr: true,
			errMsg:  "unsupported api mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Redacted(t *testing.T) {
	cfg := Config{APIKey: "sk-secret", APIBaseURL: "http://x", Model: "m"}
	redacted := cfg.Redacted()
	assert.Equal(t, "***", redacted.APIKey)
	assert.Equal(t, "sk-secret", cfg.APIKey)
	assert.Equal(t, "http://x", redacted.APIBaseURL)
}
