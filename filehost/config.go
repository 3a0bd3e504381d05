package filehost

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// FileEntry is one hosted file in a config file.
type FileEntry struct {
	Local   string `yaml:"local" toml:"local" validate:"required"`
	Virtual string `yaml:"virtual" toml:"virtual" validate:"required,startswith=/"`
}

// Config is the on-disk configuration, as YAML or TOML.
//
//	files:
//	  - local: ./build/app.tar.gz
//	    virtual: /app.tar.gz
//	addresses:
//	  - 0.0.0.0:8080
//	read_timeout: 100ms
type Config struct {
	Files       []FileEntry   `yaml:"files" toml:"files" validate:"dive"`
	Addresses   []string      `yaml:"addresses" toml:"addresses" validate:"dive,required"`
	ReadTimeout time.Duration `yaml:"read_timeout" toml:"read_timeout" validate:"gte=0"`
	LogLevel    string        `yaml:"log_level" toml:"log_level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseConfigFile reads a config file. Files ending in ".toml" are decoded as
// TOML, everything else as YAML.
func ParseConfigFile(path string) (*Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Token: path, Err: err}
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(f, &cfg)
	} else {
		err = yaml.UnmarshalStrict(f, &cfg)
	}
	if err != nil {
		return nil, &ConfigError{Token: path, Err: fmt.Errorf("failed to decode: %w", err)}
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, validationError(err)
	}

	return &cfg, nil
}

// Tokens flattens the files into (local path, virtual path) pairs.
func (c *Config) Tokens() []string {
	tokens := make([]string, 0, 2*len(c.Files))
	for _, f := range c.Files {
		tokens = append(tokens, f.Local, f.Virtual)
	}
	return tokens
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ConfigError{Err: err}
	}

	fe := verrs[0]
	token := fmt.Sprint(fe.Value())
	if fe.Tag() == "startswith" {
		return &ConfigError{Token: token, Err: ErrVirtualPathSlash}
	}
	return &ConfigError{Token: token, Err: fmt.Errorf("%s failed %q validation", fe.Namespace(), fe.Tag())}
}
