package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// ConfigFormatVersion is the current version of the configuration file format
const ConfigFormatVersion = "0.1.0"

// Environment variables that override file values
const (
	EnvDefaultError = "WALLETERRORS_DEFAULT_ERROR"
	EnvLogLevel     = "WALLETERRORS_LOG_LEVEL"
	EnvServerPort   = "WALLETERRORS_SERVER_PORT"
)

const (
	DefaultServerPort         = "8680"
	DefaultRequestTimeout     = "10s"
	DefaultMaxRequestBodySize = 1 << 20
)

// formatVersionConstraint accepts config files of the same minor format version.
var formatVersionConstraint *semver.Constraints

func init() {
	var err error
	formatVersionConstraint, err = semver.NewConstraint("~" + ConfigFormatVersion)
	if err != nil {
		panic(err)
	}
}

// ServerConfig holds classification service configuration
type ServerConfig struct {
	HostName           string `toml:"hostname"`                               // Interface to listen on
	Port               string `toml:"port" validate:"required,numeric"`       // Port to listen on
	HandleCORS         bool   `toml:"handle_cors"`                            // Whether to handle CORS
	RequestTimeout     string `toml:"request_timeout"`                        // Per-request timeout, Go duration syntax
	MaxRequestBodySize int64  `toml:"max_request_body_size" validate:"gte=0"` // Maximum size of request body in bytes
}

// GetRequestTimeout returns the request timeout as time.Duration
func (s *ServerConfig) GetRequestTimeout() (time.Duration, error) {
	return time.ParseDuration(s.RequestTimeout)
}

// GetRequestTimeoutOrDefault returns the request timeout as time.Duration
// or panics if the value is invalid
func (s *ServerConfig) GetRequestTimeoutOrDefault() time.Duration {
	d, err := s.GetRequestTimeout()
	if err != nil {
		panic("invalid request timeout: " + err.Error())
	}
	return d
}

// Address returns the listen address in host:port form.
func (s *ServerConfig) Address() string {
	return s.HostName + ":" + s.Port
}

// ConfigParam holds all configuration parameters
type ConfigParam struct {
	// Configuration version
	FormatVersion string `toml:"format_version" validate:"required"` // Version of this configuration file format

	DefaultError string `toml:"default_error"`                                                                         // Fallback message when nothing is recognized
	LogLevel     string `toml:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"` // zerolog level name
	MessagesFile string `toml:"messages_file"`                                                                         // Optional YAML message catalog

	// Server configuration
	Server ServerConfig `toml:"server"`
}

var cfg *ConfigParam

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config returns the current configuration. It is nil until LoadConfig or
// LoadDefaultConfig succeeds.
func Config() *ConfigParam {
	return cfg
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *ConfigParam {
	return &ConfigParam{
		FormatVersion: ConfigFormatVersion,
		LogLevel:      "info",
		Server: ServerConfig{
			HostName:           "127.0.0.1",
			Port:               DefaultServerPort,
			RequestTimeout:     DefaultRequestTimeout,
			MaxRequestBodySize: DefaultMaxRequestBodySize,
		},
	}
}

// ValidateConfig checks if all required configuration values are present and
// valid, filling in defaults for optional ones.
func ValidateConfig(cfg *ConfigParam) error {
	if err := validateConfigFormatVersion(cfg); err != nil {
		return err
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.RequestTimeout == "" {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.MaxRequestBodySize == 0 {
		cfg.Server.MaxRequestBodySize = DefaultMaxRequestBodySize
	}
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid configuration values")
	}
	if d, err := cfg.Server.GetRequestTimeout(); err != nil || d <= 0 {
		return errors.Errorf("invalid server.request_timeout: %q", cfg.Server.RequestTimeout)
	}
	return nil
}

func validateConfigFormatVersion(cfg *ConfigParam) error {
	v, err := semver.NewVersion(cfg.FormatVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid config file format version %q", cfg.FormatVersion)
	}
	if !formatVersionConstraint.Check(v) {
		return errors.Errorf("unsupported config file format version: %s", cfg.FormatVersion)
	}
	return nil
}

// applyEnvOverrides loads a .env file from the working directory, if present,
// and applies the WALLETERRORS_* variables.
func applyEnvOverrides(cfg *ConfigParam) {
	_ = godotenv.Load() // no error if .env doesn't exist
	if v := strings.TrimSpace(os.Getenv(EnvDefaultError)); v != "" {
		cfg.DefaultError = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvServerPort)); v != "" {
		cfg.Server.Port = v
	}
}

// LoadConfig loads configuration from a file
func LoadConfig(filename string) error {
	if filename == "" {
		return errors.New("config filename is required")
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "error reading config file")
	}

	c := &ConfigParam{}
	if _, err := toml.Decode(string(content), c); err != nil {
		return errors.Wrap(err, "error parsing config file")
	}
	applyEnvOverrides(c)

	if err := ValidateConfig(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	cfg = c
	return nil
}

// LoadDefaultConfig installs DefaultConfig with environment overrides applied.
func LoadDefaultConfig() error {
	c := DefaultConfig()
	applyEnvOverrides(c)
	if err := ValidateConfig(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	cfg = c
	return nil
}
