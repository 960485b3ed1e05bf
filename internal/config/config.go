package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when reading the environment
const EnvPrefix = "SEMI_AUTO"

// Configuration keys
const (
	KeyAPIKey  = "api_key"
	KeyAPIURL  = "api_url"
	KeyModel   = "api_model"
	KeyAPIMode = "api_mode"
)

// Supported API modes
const (
	ModeCompletion = "completion"
	ModeChat       = "chat"
)

var supportedModes = map[string]bool{
	ModeCompletion: true,
	ModeChat:       true,
}

// ErrConfigurationMissing is matched by every MissingError
var ErrConfigurationMissing = errors.New("configuration missing")

// MissingError reports a required environment variable that is unset or empty
type MissingError struct {
	Name string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("required environment variable '%s' is not set", e.Name)
}

// Is makes errors.Is(err, ErrConfigurationMissing) succeed
func (e *MissingError) Is(target error) bool {
	return target == ErrConfigurationMissing
}

// Config holds the resolved settings for one run. It is built once by Load
// and never mutated afterwards.
type Config struct {
	APIKey     string `json:"api_key"`
	APIBaseURL string `json:"api_url"`
	Model      string `json:"api_model"`
	APIMode    string `json:"api_mode"`
}

// Redacted returns a copy safe for debug output
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = "***"
	}
	return c
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return &MissingError{Name: EnvName(KeyAPIKey)}
	}
	if c.APIBaseURL == "" {
		return &MissingError{Name: EnvName(KeyAPIURL)}
	}
	if c.Model == "" {
		return &MissingError{Name: EnvName(KeyModel)}
	}
	if !supportedModes[c.APIMode] {
		return fmt.Errorf("unsupported api mode: %s", c.APIMode)
	}
	return nil
}

// EnvName returns the environment variable backing a configuration key
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

// New returns a viper instance bound to the SEMI_AUTO_* environment variables
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{KeyAPIKey, KeyAPIURL, KeyModel, KeyAPIMode} {
		// BindEnv only fails when called without a key
		_ = v.BindEnv(key)
	}
	v.SetDefault(KeyAPIMode, ModeCompletion)
	return v
}

// Require returns the value of a required key, or a MissingError when it is
// unset or empty
func Require(v *viper.Viper, key string) (string, error) {
	value := v.GetString(key)
	if value == "" {
		return "", &MissingError{Name: EnvName(key)}
	}
	return value, nil
}

// Load resolves the API key, base URL and model in that order and stops at the
// first one that is missing
func Load(v *viper.Viper) (*Config, error) {
	apiKey, err := Require(v, KeyAPIKey)
	if err != nil {
		return nil, err
	}
	baseURL, err := Require(v, KeyAPIURL)
	if err != nil {
		return nil, err
	}
	model, err := Require(v, KeyModel)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIKey:     apiKey,
		APIBaseURL: baseURL,
		Model:      model,
		APIMode:    strings.ToLower(v.GetString(KeyAPIMode)),
	}
	if cfg.APIMode == "" {
		cfg.APIMode = ModeCompletion
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SupportedModes returns the accepted values for api_mode
func SupportedModes() []string {
	return []string{ModeCompletion, ModeChat}
}
