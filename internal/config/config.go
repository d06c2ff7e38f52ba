package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// EnvServiceURL overrides the service URL from the config file
	EnvServiceURL = "SNAPGEN_URL"
)

var (
	// ConfigDir is the global configuration directory (~/.snapgen)
	ConfigDir string

	// DatabasePath is the SQLite database file for settings and history
	DatabasePath string

	// ConfigFile is the YAML options file
	ConfigFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// LogFile receives structured logs (the TUI owns stdout)
	LogFile string
)

// Initialize sets up the configuration directory and paths
// It creates ~/.snapgen/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".snapgen"))
}

// InitializeAt is Initialize rooted at an explicit directory
func InitializeAt(dir string) error {
	ConfigDir = dir
	DatabasePath = filepath.Join(ConfigDir, "snapgen.db")
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	LogFile = filepath.Join(ConfigDir, "snapgen.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Write a default config so users have something to edit
	if _, err := os.Stat(ConfigFile); os.IsNotExist(err) {
		data, err := yaml.Marshal(Defaults())
		if err != nil {
			return fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err := os.WriteFile(ConfigFile, data, FilePermissions); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	return nil
}

// Fields are JMESPath expressions locating values in service responses
type Fields struct {
	Strings    string `yaml:"strings"`
	Passphrase string `yaml:"passphrase"`
	String     string `yaml:"string"`
	Error      string `yaml:"error"`
	Status     string `yaml:"status"`
	Available  string `yaml:"available"`
	Total      string `yaml:"total"`
	Used       string `yaml:"used"`
}

// Options is the user-editable configuration
type Options struct {
	ServiceURL         string        `yaml:"service_url"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	HealthInterval     time.Duration `yaml:"health_interval"`
	DiscardStaleHealth bool          `yaml:"discard_stale_health"`
	LogLevel           string        `yaml:"log_level"`
	Fields             Fields        `yaml:"fields"`
}

// DefaultFields matches the field names the service emits
func DefaultFields() Fields {
	return Fields{
		Strings:    "strings",
		Passphrase: "passphrase",
		String:     "string",
		Error:      "error",
		Status:     "status",
		Available:  "available_snapshots",
		Total:      "total_snapshots",
		Used:       "used_snapshots",
	}
}

// Defaults returns the built-in options
func Defaults() Options {
	return Options{
		ServiceURL:     "http://localhost:5000",
		RequestTimeout: 30 * time.Second,
		HealthInterval: 500 * time.Millisecond,
		LogLevel:       "info",
		Fields:         DefaultFields(),
	}
}

// Load reads options from a YAML file. A missing file yields the defaults.
// Unset fields keep their default values.
func Load(path string) (Options, error) {
	opts := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return opts, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &opts); err != nil {
				return opts, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if env := strings.TrimSpace(os.Getenv(EnvServiceURL)); env != "" {
		opts.ServiceURL = env
	}

	opts.fillDefaults()
	return opts, opts.Validate()
}

func (o *Options) fillDefaults() {
	d := Defaults()
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = d.RequestTimeout
	}
	if o.HealthInterval <= 0 {
		o.HealthInterval = d.HealthInterval
	}
	if o.LogLevel == "" {
		o.LogLevel = d.LogLevel
	}
	f := &o.Fields
	df := d.Fields
	for _, pair := range []struct {
		dst *string
		def string
	}{
		{&f.Strings, df.Strings},
		{&f.Passphrase, df.Passphrase},
		{&f.String, df.String},
		{&f.Error, df.Error},
		{&f.Status, df.Status},
		{&f.Available, df.Available},
		{&f.Total, df.Total},
		{&f.Used, df.Used},
	} {
		if strings.TrimSpace(*pair.dst) == "" {
			*pair.dst = pair.def
		}
	}
}

// Validate checks the options that cannot be defaulted
func (o Options) Validate() error {
	u := strings.TrimSpace(o.ServiceURL)
	if u == "" {
		return fmt.Errorf("service_url is required")
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return fmt.Errorf("service_url must include scheme, got %q", u)
	}
	return nil
}
