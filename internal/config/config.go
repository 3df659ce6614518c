package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/logger"
)

// Config holds the tunables shared by every command.
type Config struct {
	// APIVersion is the Dataverse Web API version, e.g. "9.2".
	APIVersion string `yaml:"api_version"`
	// Timeout bounds every single remote call. Solution exports can be slow.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// EnvFile is an optional dotenv file read before the connection string.
	EnvFile string `yaml:"env_file"`
}

const (
	// DefaultConfigFilename is the settings file looked up when --config is not given.
	DefaultConfigFilename = "powerapps-cli.yaml"

	// DefaultAPIVersion is the Web API version used when none is configured.
	DefaultAPIVersion = "9.2"

	// DefaultTimeout is the default per-call timeout.
	DefaultTimeout = 2 * time.Minute

	// DefaultLogLevel is used when log_level is empty.
	DefaultLogLevel = "info"

	// DefaultEnvFile is the dotenv file loaded when env_file is empty.
	DefaultEnvFile = ".env"

	// DefaultFilePermissions is used for files written by this tool.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidAPIVersion is returned for versions not shaped like "9.2".
	errInvalidAPIVersion = errors.New("api_version must look like 9.2")
	// errUnsupportedAPIVersion is returned for versions older than the Web API itself.
	errUnsupportedAPIVersion = errors.New("api_version is not supported")
	// errInvalidLogLevel is returned for unknown log levels.
	errInvalidLogLevel = errors.New("unknown log_level")

	apiVersionPattern = regexp.MustCompile(`^\d+\.\d+$`)
	// minAPIVersion is the first release of the Web API.
	minAPIVersion = version.Must(version.NewVersion("8.0"))
)

// Default returns a Config with every field set to its default.
func Default() *Config {
	return &Config{
		APIVersion: DefaultAPIVersion,
		Timeout:    DefaultTimeout,
		LogLevel:   DefaultLogLevel,
		EnvFile:    DefaultEnvFile,
	}
}

// Load reads settings from path. An empty path means DefaultConfigFilename,
// and a missing default file yields defaults; a missing explicit file is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults for empty fields and rejects malformed values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}

	if err := validateAPIVersion(cfg.APIVersion); err != nil {
		return err
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
	}

	if cfg.EnvFile == "" {
		cfg.EnvFile = DefaultEnvFile
	}

	return nil
}

// validateAPIVersion accepts "major.minor" versions the Web API has served.
func validateAPIVersion(s string) error {
	if !apiVersionPattern.MatchString(s) {
		return fmt.Errorf("%w: %q", errInvalidAPIVersion, s)
	}

	v, err := version.NewVersion(s)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", errInvalidAPIVersion, s, err)
	}

	if v.LessThan(minAPIVersion) {
		return fmt.Errorf("%w: %s is older than %s", errUnsupportedAPIVersion, v, minAPIVersion)
	}

	return nil
}
