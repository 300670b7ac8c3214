// Package config loads notebook settings from defaults, a YAML file, a .env
// file, the process environment and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "notebook.yaml"
	DefaultDotEnvFile = ".env"
	DefaultDBPath     = "./notebook.db3"

	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultLogMaxSizeMB = 10
	defaultLogMaxFiles  = 5
)

// Environment variables read by Load.
const (
	EnvConfigPath = "NOTEBOOK_CONFIG"
	EnvDBPath     = "NOTEBOOK_DB"
	EnvReadOnly   = "NOTEBOOK_READ_ONLY"
	EnvLogLevel   = "NOTEBOOK_LOG_LEVEL"
	EnvLogFormat  = "NOTEBOOK_LOG_FORMAT"
	EnvLogFile    = "NOTEBOOK_LOG_FILE"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type DatabaseConfig struct {
	Path     string `yaml:"path" validate:"required"`
	ReadOnly bool   `yaml:"read_only"`
}

type LoggingConfig struct {
	Level     string `yaml:"level" validate:"oneof=debug info warn error"`
	Format    string `yaml:"format" validate:"oneof=text json"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb" validate:"gte=1,lte=1024"`
	MaxFiles  int    `yaml:"max_files" validate:"gte=0,lte=100"`
}

type LoadOptions struct {
	// ConfigPath overrides NOTEBOOK_CONFIG and the default file name.
	ConfigPath string
	// DotEnvPath defaults to ".env" in the working directory.
	DotEnvPath string
	// Env is consulted before the process environment. Used by tests.
	Env   map[string]string
	Flags FlagOverrides
}

// FlagOverrides carries only the flags the user actually set.
type FlagOverrides struct {
	DBPath   *string
	ReadOnly *bool
	LogLevel *string
	LogFile  *string
}

func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Path:     DefaultDBPath,
			ReadOnly: false,
		},
		Logging: LoggingConfig{
			Level:     defaultLogLevel,
			Format:    defaultLogFormat,
			File:      "",
			MaxSizeMB: defaultLogMaxSizeMB,
			MaxFiles:  defaultLogMaxFiles,
		},
	}
}

func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	dotenv, err := readDotEnv(opts.DotEnvPath)
	if err != nil {
		return Config{}, err
	}
	env := envLookup{explicit: opts.Env, dotenv: dotenv}

	if err := loadAndApplyFile(resolveConfigPath(opts, env), &cfg); err != nil {
		return Config{}, err
	}
	if err := applyEnvOverrides(&cfg, env); err != nil {
		return Config{}, err
	}
	applyFlagOverrides(&cfg, opts.Flags)

	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type rawConfig struct {
	Database *rawDatabase `yaml:"database"`
	Logging  *rawLogging  `yaml:"logging"`
}

type rawDatabase struct {
	Path     *string `yaml:"path"`
	ReadOnly *bool   `yaml:"read_only"`
}

type rawLogging struct {
	Level     *string `yaml:"level"`
	Format    *string `yaml:"format"`
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

func loadAndApplyFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %q: %w", path, err)
	}
	defer f.Close()

	var raw rawConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: parse YAML file %q: %v", ErrInvalidConfig, path, err)
	}

	if raw.Database != nil {
		setValue(raw.Database.Path, &cfg.Database.Path)
		setValue(raw.Database.ReadOnly, &cfg.Database.ReadOnly)
	}
	if raw.Logging != nil {
		setValue(raw.Logging.Level, &cfg.Logging.Level)
		setValue(raw.Logging.Format, &cfg.Logging.Format)
		setValue(raw.Logging.File, &cfg.Logging.File)
		setValue(raw.Logging.MaxSizeMB, &cfg.Logging.MaxSizeMB)
		setValue(raw.Logging.MaxFiles, &cfg.Logging.MaxFiles)
	}
	return nil
}

func applyEnvOverrides(cfg *Config, env envLookup) error {
	if value, ok := env.lookup(EnvDBPath); ok {
		cfg.Database.Path = value
	}
	if value, ok := env.lookup(EnvReadOnly); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, EnvReadOnly, err)
		}
		cfg.Database.ReadOnly = parsed
	}
	if value, ok := env.lookup(EnvLogLevel); ok {
		cfg.Logging.Level = value
	}
	if value, ok := env.lookup(EnvLogFormat); ok {
		cfg.Logging.Format = value
	}
	if value, ok := env.lookup(EnvLogFile); ok {
		cfg.Logging.File = value
	}
	return nil
}

func applyFlagOverrides(cfg *Config, flags FlagOverrides) {
	setValue(flags.DBPath, &cfg.Database.Path)
	setValue(flags.ReadOnly, &cfg.Database.ReadOnly)
	setValue(flags.LogLevel, &cfg.Logging.Level)
	setValue(flags.LogFile, &cfg.Logging.File)
}

func setValue[T any](raw *T, target *T) {
	if raw != nil {
		*target = *raw
	}
}

var validate = func() func(Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return func(cfg Config) error {
		err := v.Struct(cfg)
		if err == nil {
			return nil
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			field := strings.TrimPrefix(fe.Namespace(), "Config.")
			if fe.Param() != "" {
				msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
			} else {
				msgs = append(msgs, fmt.Sprintf("%s is %s", field, fe.Tag()))
			}
		}
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
	}
}()

func resolveConfigPath(opts LoadOptions, env envLookup) string {
	if opts.ConfigPath != "" {
		return opts.ConfigPath
	}
	if value, ok := env.lookup(EnvConfigPath); ok {
		return value
	}
	return DefaultConfigFile
}

func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		path = DefaultDotEnvFile
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
	}
	return values, nil
}

// envLookup resolves a key from explicit values, then the process
// environment, then the .env file.
type envLookup struct {
	explicit map[string]string
	dotenv   map[string]string
}

func (e envLookup) lookup(key string) (string, bool) {
	if value, ok := e.explicit[key]; ok {
		return value, true
	}
	if value, ok := os.LookupEnv(key); ok {
		return value, true
	}
	value, ok := e.dotenv[key]
	return value, ok
}
