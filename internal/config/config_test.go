package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/tansive/walleterrors/internal/common/apperrors"
	"github.com/tansive/walleterrors/internal/parseerror"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func resetConfig(t *testing.T) {
	t.Helper()
	prev := cfg
	t.Cleanup(func() { cfg = prev })
}

func TestLoadConfig(t *testing.T) {
	resetConfig(t)
	path := writeFile(t, "walleterrors.toml", `
format_version = "0.1.0"
default_error = "Something went wrong"
log_level = "debug"

[server]
hostname = "0.0.0.0"
port = "9000"
handle_cors = true
request_timeout = "5s"
`)
	require.NoError(t, LoadConfig(path))
	c := Config()
	require.NotNil(t, c)
	assert.Equal(t, "Something went wrong", c.DefaultError)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "0.0.0.0:9000", c.Server.Address())
	assert.True(t, c.Server.HandleCORS)
	assert.Equal(t, 5*time.Second, c.Server.GetRequestTimeoutOrDefault())
	assert.EqualValues(t, DefaultMaxRequestBodySize, c.Server.MaxRequestBodySize)
}

func TestLoadConfigDefaults(t *testing.T) {
	resetConfig(t)
	path := writeFile(t, "walleterrors.toml", `format_version = "0.1.3"`)
	require.NoError(t, LoadConfig(path))
	assert.Equal(t, DefaultServerPort, Config().Server.Port)
	assert.Equal(t, DefaultRequestTimeout, Config().Server.RequestTimeout)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	resetConfig(t)
	t.Setenv(EnvDefaultError, "From env")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvServerPort, "7777")
	path := writeFile(t, "walleterrors.toml", `
format_version = "0.1.0"
default_error = "From file"
[server]
port = "9000"
`)
	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "From env", Config().DefaultError)
	assert.Equal(t, "warn", Config().LogLevel)
	assert.Equal(t, "7777", Config().Server.Port)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unsupported version", `format_version = "1.0.0"`},
		{"invalid version", `format_version = "latest"`},
		{"missing version", `default_error = "x"`},
		{"bad log level", "format_version = \"0.1.0\"\nlog_level = \"loud\""},
		{"bad port", "format_version = \"0.1.0\"\n[server]\nport = \"http\""},
		{"bad timeout", "format_version = \"0.1.0\"\n[server]\nrequest_timeout = \"soon\""},
		{"not toml", `format_version = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetConfig(t)
			cfg = nil
			path := writeFile(t, "walleterrors.toml", tt.content)
			assert.Error(t, LoadConfig(path))
			assert.Nil(t, Config())
		})
	}

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, LoadConfig(filepath.Join(t.TempDir(), "nope.toml")))
		assert.Error(t, LoadConfig(""))
	})
}

func TestLoadDefaultConfig(t *testing.T) {
	resetConfig(t)
	require.NoError(t, LoadDefaultConfig())
	assert.Equal(t, ConfigFormatVersion, Config().FormatVersion)
	assert.Equal(t, "127.0.0.1:"+DefaultServerPort, Config().Server.Address())
}

func TestParseMessageCatalog(t *testing.T) {
	c, err := ParseMessageCatalog([]byte(`
locale: en-GB
validation_errors:
  - domain: account
    name: emailAlreadyRegistered
    message: That email is taken.
  - domain: wallet
    name: chainUnsupported
    message: Unsupported network.
`))
	require.NoError(t, err)
	assert.Equal(t, language.BritishEnglish, c.Tag())
	require.Len(t, c.ValidationErrors, 2)

	r := parseerror.NewRegistryWithBuiltins()
	builtins := r.Len()
	c.Register(r)
	assert.Equal(t, builtins+1, r.Len())

	ve := apperrors.ValidationError{Code: apperrors.ValidationErrorCode{Domain: "account", Name: "emailAlreadyRegistered"}}
	assert.Equal(t, "That email is taken.", r.Resolve(ve, "D"))
	ve.Code.Name = "invalidEmail"
	assert.Equal(t, "The email address you entered is not valid.", r.Resolve(ve, "D"))
}

func TestParseMessageCatalogErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad locale", "locale: not_a_locale!!\n"},
		{"missing message", "validation_errors:\n  - domain: account\n    name: x\n"},
		{"not yaml", "validation_errors: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMessageCatalog([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestRegisterMessages(t *testing.T) {
	resetConfig(t)
	catalog := writeFile(t, "messages.yaml", `
validation_errors:
  - domain: contact
    name: contactNotFound
    message: Gone.
`)
	cfg = DefaultConfig()
	cfg.MessagesFile = catalog

	r := parseerror.NewRegistryWithBuiltins()
	require.NoError(t, RegisterMessages(r))
	h, ok := r.Lookup("contact:contactNotFound")
	require.True(t, ok)
	assert.Equal(t, "Gone.", h(apperrors.ValidationError{}))

	cfg.MessagesFile = filepath.Join(t.TempDir(), "missing.yaml")
	assert.Error(t, RegisterMessages(r))

	cfg = nil
	assert.NoError(t, RegisterMessages(r))
}
