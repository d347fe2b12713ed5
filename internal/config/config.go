package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/sweep/internal/env"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Storage   Storage       `yaml:"storage"`
	Trash     Trash         `yaml:"trash"`
	Library   Library       `yaml:"library"`
	Selection Selection     `yaml:"selection"`
	UI        UI            `yaml:"ui"`
	Logging   LoggingConfig `yaml:"logging"`
}

// Storage selects the durable key-value backend holding the trash set
type Storage struct {
	Backend string       `yaml:"backend" validate:"validBackend"`
	Path    string       `yaml:"path"`
	Valkey  ValkeyConfig `yaml:"valkey"`
}

type ValkeyConfig struct {
	Address string `yaml:"address"`
	Prefix  string `yaml:"prefix"`
}

type Trash struct {
	Key string `yaml:"key" validate:"required"`
}

type Library struct {
	Root      string        `yaml:"root" validate:"required"`
	MediaType string        `yaml:"media_type" validate:"validMediaType"`
	Include   IncludeConfig `yaml:"include"`
	Exclude   ExcludeConfig `yaml:"exclude"`
}

type IncludeConfig struct {
	Period int `yaml:"within_days" validate:"gte=0"`
}

type ExcludeConfig struct {
	Files    []string   `yaml:"files"`
	Patterns []string   `yaml:"patterns"`
	Globs    []string   `yaml:"globs"`
	Size     SizeConfig `yaml:"size"`
}

type SizeConfig struct {
	Min string `yaml:"min" validate:"validSize"`
	Max string `yaml:"max" validate:"validSize"`
}

type Selection struct {
	MaxAttempts int `yaml:"max_attempts" validate:"gte=1"`
	Recent      int `yaml:"recent" validate:"gte=0"`
}

type UI struct {
	ConfirmEmpty bool        `yaml:"confirm_empty"`
	ExitMessage  string      `yaml:"exit_message"`
	Style        StyleConfig `yaml:"style"`
}

type StyleConfig struct {
	Keep   string `yaml:"keep" validate:"validColorCode"`
	Delete string `yaml:"delete" validate:"validColorCode"`
	Info   string `yaml:"info" validate:"validColorCode"`
}

type LoggingConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Level    string         `yaml:"level" validate:"oneof=debug info warn error"`
	Rotation RotationConfig `yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize  string `yaml:"max_size" validate:"validSize"`
	MaxFiles int    `yaml:"max_files" validate:"gte=0"`
}

type configError struct {
	configPath string
	parser     parser
	err        error
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't find the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.SWEEP_CONFIG_PATH,
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (e configError) Unwrap() error {
	return e.err
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

type parser struct {
	validate *validator.Validate
}

func newParser() parser {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validBackend", validateBackend)
	_ = validate.RegisterValidation("validMediaType", validateMediaType)
	_ = validate.RegisterValidation("validColorCode", validateColorCode)

	return parser{validate: validate}
}

func (p parser) getDefaultConfigContents() string {
	content, _ := yaml.Marshal(NewDefaultConfig())
	return string(content)
}

func (p parser) ensureDirExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dirPath)
		if err := os.MkdirAll(dirPath, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) createConfigFile(path string) error {
	if err := p.ensureDirExists(filepath.Dir(path)); err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", path)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o666)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := f.WriteString(p.getDefaultConfigContents()); err != nil {
			return err
		}
	}

	return nil
}

func (p parser) ensureConfigFile() (string, error) {
	path := env.SWEEP_CONFIG_PATH
	if err := p.createConfigFile(path); err != nil {
		return "", configError{
			configPath: path,
			parser:     p,
			err:        err,
		}
	}
	return path, nil
}

func (p parser) readConfigFile(path string) (Config, error) {
	cfg := *NewDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{
			configPath: path,
			parser:     p,
			err:        err,
		}
	}

	// unset keys keep their defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := p.validateConfig(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (p parser) validateConfig(cfg Config) error {
	err := p.validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			return fmt.Errorf("validation error: Field %s, %q is invalid", verr.Namespace(), verr.Value())
		}
	}
	return err
}

// Parse reads the config file at path. An empty path means the default
// location, which is created with default contents when missing.
func Parse(path string) (Config, error) {
	p := newParser()

	var (
		cfg Config
		err error
	)

	configPath := path
	if configPath == "" {
		configPath, err = p.ensureConfigFile()
		if err != nil {
			return cfg, parsingError{err: err}
		}
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err = p.readConfigFile(configPath)
	if err != nil {
		return cfg, parsingError{err: err}
	}

	if err := cfg.expandPaths(); err != nil {
		return cfg, parsingError{err: err}
	}

	return cfg, nil
}

func (c *Config) expandPaths() error {
	root, err := expandPath(c.Library.Root)
	if err != nil {
		return fmt.Errorf("library.root: %w", err)
	}
	c.Library.Root = root

	if c.Storage.Path != "" {
		path, err := expandPath(c.Storage.Path)
		if err != nil {
			return fmt.Errorf("storage.path: %w", err)
		}
		c.Storage.Path = path
	}
	return nil
}
