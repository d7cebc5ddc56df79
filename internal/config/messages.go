package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/tansive/walleterrors/internal/common/apperrors"
	"github.com/tansive/walleterrors/internal/parseerror"
)

// MessageEntry overrides the display message for one validation key.
type MessageEntry struct {
	Domain  string `yaml:"domain" validate:"required"`
	Name    string `yaml:"name" validate:"required"`
	Message string `yaml:"message" validate:"required"`
}

// MessageCatalog is the YAML file referenced by messages_file.
type MessageCatalog struct {
	Locale           string         `yaml:"locale"`
	ValidationErrors []MessageEntry `yaml:"validation_errors" validate:"dive"`

	tag language.Tag
}

// Tag returns the parsed locale, language.Und when none was given.
func (c *MessageCatalog) Tag() language.Tag {
	return c.tag
}

// ParseMessageCatalog decodes and validates a message catalog.
func ParseMessageCatalog(data []byte) (*MessageCatalog, error) {
	c := &MessageCatalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "error parsing message catalog")
	}
	c.tag = language.Und
	if c.Locale != "" {
		tag, err := language.Parse(c.Locale)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid locale %q", c.Locale)
		}
		c.tag = tag
	}
	if err := validate.Struct(c); err != nil {
		return nil, errors.Wrap(err, "invalid message catalog entry")
	}
	return c, nil
}

// LoadMessageCatalog reads a message catalog from a file.
func LoadMessageCatalog(filename string) (*MessageCatalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "error reading message catalog")
	}
	return ParseMessageCatalog(data)
}

// Register installs every entry as a fixed-message handler on r. Entries
// override built-in messages for their key only.
func (c *MessageCatalog) Register(r *parseerror.Registry) {
	for _, e := range c.ValidationErrors {
		r.RegisterMessage(apperrors.ValidationKey(e.Domain, e.Name), e.Message)
	}
	log.Info().
		Str("locale", c.tag.String()).
		Int("entries", len(c.ValidationErrors)).
		Msg("message catalog registered")
}

// RegisterMessages loads the configured messages_file, if any, into r.
func RegisterMessages(r *parseerror.Registry) error {
	if cfg == nil || cfg.MessagesFile == "" {
		return nil
	}
	c, err := LoadMessageCatalog(cfg.MessagesFile)
	if err != nil {
		return err
	}
	c.Register(r)
	return nil
}
