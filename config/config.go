package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyClockifyBaseURL   = "clockify.base_url"
	KeyClockifyAPIKey    = "clockify.api_key"
	KeyClockifyWorkspace = "clockify.workspace_id"
	KeyFetchPageSize     = "fetch.page_size"
	KeyFetchDelay        = "fetch.delay"
	KeyFetchTimeout      = "fetch.timeout"
	KeyLogLevel          = "log.level"
	KeyLogPretty         = "log.pretty"

	// EnvAPIKey is the environment variable holding the Clockify API key.
	EnvAPIKey = "CLOCKIFY_API_KEY"

	DefaultBaseURL  = "https://api.clockify.me/api/v1"
	DefaultPageSize = 50
	DefaultDelay    = 200 * time.Millisecond
	DefaultTimeout  = 30 * time.Second
)

var ErrMissingAPIKey = errors.New("missing Clockify API key (set --api-key, " + EnvAPIKey + " or " + KeyClockifyAPIKey + ")")

type Config struct {
	Clockify ClockifyConfig `mapstructure:"clockify" validate:"required"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Log      LogConfig      `mapstructure:"log"`
}

type ClockifyConfig struct {
	BaseURL     string `mapstructure:"base_url" validate:"required,url"`
	APIKey      string `mapstructure:"api_key"`
	WorkspaceID string `mapstructure:"workspace_id"`
}

type FetchConfig struct {
	PageSize int           `mapstructure:"page_size" validate:"min=1,max=5000"`
	Delay    time.Duration `mapstructure:"delay" validate:"gte=0"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Pretty bool   `mapstructure:"pretty"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# clockdump configuration
clockify:
  base_url: "https://api.clockify.me/api/v1"
  # Prefer the CLOCKIFY_API_KEY environment variable over storing the key here.
  api_key: ""
  # Empty uses the active workspace of the API key owner.
  workspace_id: ""

fetch:
  page_size: 50
  delay: 200ms
  timeout: 30s

log:
  level: warn
  pretty: false
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Clockify.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Clockify.BaseURL), "/")
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyClockifyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyClockifyAPIKey, "")
	v.SetDefault(KeyClockifyWorkspace, "")
	v.SetDefault(KeyFetchPageSize, DefaultPageSize)
	v.SetDefault(KeyFetchDelay, DefaultDelay)
	v.SetDefault(KeyFetchTimeout, DefaultTimeout)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogPretty, false)
}

// Source is one link of the credential resolution chain.
type Source struct {
	Name   string
	Lookup func() (string, bool)
}

func ValueSource(name, value string) Source {
	return Source{Name: name, Lookup: func() (string, bool) {
		return value, strings.TrimSpace(value) != ""
	}}
}

func EnvSource(key string, lookupEnv func(string) (string, bool)) Source {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return Source{Name: "env " + key, Lookup: func() (string, bool) {
		value, ok := lookupEnv(key)
		return value, ok && strings.TrimSpace(value) != ""
	}}
}

// ResolveAPIKey returns the first non-empty value in source order together
// with the name of the source that provided it.
func ResolveAPIKey(sources ...Source) (string, string, error) {
	for _, source := range sources {
		if source.Lookup == nil {
			continue
		}
		if value, ok := source.Lookup(); ok {
			return strings.TrimSpace(value), source.Name, nil
		}
	}
	return "", "", ErrMissingAPIKey
}
