package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/progresio/internal/constants"
)

// Config is the process-level configuration. Domain settings such as the
// timezone live in the database, not here.
type Config struct {
	// Database is a SQLite file path or a PostgreSQL connection string without a password.
	Database string `yaml:"database" validate:"required"`
	Debug    bool   `yaml:"debug"`
	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogDir   string `yaml:"log_dir,omitempty"`
	// EncryptFields turns on encryption of parameter names and goal values.
	EncryptFields bool `yaml:"encrypt_fields"`

	// EncryptionKey is only ever read from the environment.
	EncryptionKey string `yaml:"-"`
}

// Overrides carries command-line flags; zero values leave the loaded config alone.
type Overrides struct {
	Database string
	Debug    bool
}

// Options controls where Load looks.
type Options struct {
	// File is the YAML config path; defaults to <config dir>/config.yaml.
	File string
	// EnvFile is the dotenv file; defaults to ".env" in the working directory.
	EnvFile   string
	Overrides Overrides
}

var configValidate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database: constants.DefaultConfigPath,
	}
}

// DefaultFile returns the default YAML config path.
func DefaultFile() string {
	return filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile)
}

// Load builds the configuration from defaults, the YAML file, the dotenv
// file, the environment and finally the flag overrides, in that order.
// Missing files are not an error.
func Load(opts Options) (Config, error) {
	cfg := Default()

	file := opts.File
	if file == "" {
		file = DefaultFile()
	}
	file, err := ExpandPath(file)
	if err != nil {
		return Config{}, err
	}
	if err := readFile(file, &cfg); err != nil {
		return Config{}, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if opts.Overrides.Database != "" {
		cfg.Database = opts.Overrides.Database
	}
	if opts.Overrides.Debug {
		cfg.Debug = true
	}

	if err := configValidate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(constants.EnvDBConnection); ok && v != "" {
		cfg.Database = v
	}
	if v, ok := os.LookupEnv(constants.EnvEncryptionKey); ok && v != "" {
		cfg.EncryptionKey = v
	}
	if v, ok := os.LookupEnv(constants.EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.EnvDebug, err)
		}
		cfg.Debug = debug
	}
	return nil
}

// Write saves cfg as YAML, creating the directory if needed.
func Write(path string, cfg Config) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Dir returns the directory holding the config file, logs and (for SQLite) the database.
func Dir() (string, error) {
	return ExpandPath(constants.DefaultConfigDir)
}
