package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/notes/pkg/backup"
)

// Config keys, also used as flag and environment names (NOTES_FILE, ...).
const (
	KeyFile      = "file"
	KeyStyles    = "styles"
	KeyArchive   = "archive"
	KeyLineBreak = "linebreak"
	KeyPage      = "page"
)

// ConfigPathEnv names a directory searched first for the config file.
const ConfigPathEnv = "NOTES_CONFIG_PATH"

const (
	configName = ".notes"
	configType = "yaml"
)

// Config is the resolved set of paths and settings the journal runs with.
type Config struct {
	NotesPath   string
	StylesPath  string
	ArchivePath string
	LineBreak   string
	PageSize    int
}

// LoadConfig resolves settings from flags bound to viper, NOTES_* environment
// variables and a .notes config file found in $NOTES_CONFIG_PATH, ./ or
// ~/.notes, in that order of precedence after flags and env.
func LoadConfig() (*Config, error) {
	viper.SetDefault(KeyFile, "~/.notes/mynotes.txt")
	viper.SetDefault(KeyStyles, "~/.notes/styles.ini")
	viper.SetDefault(KeyArchive, "~/.notes/redundancy.txt")
	viper.SetDefault(KeyLineBreak, ";")
	viper.SetDefault(KeyPage, 5)
	viper.SetConfigName(configName)
	viper.SetEnvPrefix("NOTES")
	viper.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME/.notes")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	cfg := &Config{
		LineBreak: viper.GetString(KeyLineBreak),
		PageSize:  viper.GetInt(KeyPage),
	}
	var err error
	if cfg.NotesPath, err = homedir.Expand(viper.GetString(KeyFile)); err != nil {
		return nil, fmt.Errorf("store: %s: %w", KeyFile, err)
	}
	if cfg.StylesPath, err = homedir.Expand(viper.GetString(KeyStyles)); err != nil {
		return nil, fmt.Errorf("store: %s: %w", KeyStyles, err)
	}
	if cfg.ArchivePath, err = homedir.Expand(viper.GetString(KeyArchive)); err != nil {
		return nil, fmt.Errorf("store: %s: %w", KeyArchive, err)
	}
	if cfg.LineBreak == "" {
		cfg.LineBreak = ";"
	}
	return cfg, nil
}

// ConfigFile returns the config file in use, or the path a new one would be
// written to.
func ConfigFile() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".notes", configName+"."+configType), nil
}

// SetDefaultFile records path as the notes file in the config file. The
// previous config file, if any, is copied aside first.
func SetDefaultFile(path string) (string, error) {
	file, err := ConfigFile()
	if err != nil {
		return "", fmt.Errorf("store: locate config: %w", err)
	}
	if _, err := backup.Copy(file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("store: backup config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", fmt.Errorf("store: write %s: %w", file, err)
	}

	// Only persist the file key; flags and env must not leak into the file.
	v := viper.New()
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return "", fmt.Errorf("store: read %s: %w", file, err)
		}
	}
	v.Set(KeyFile, path)
	if err := v.WriteConfigAs(file); err != nil {
		return "", fmt.Errorf("store: write %s: %w", file, err)
	}
	viper.Set(KeyFile, path)
	return file, nil
}
