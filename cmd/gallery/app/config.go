package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/gallery/pkg/constants"
	"github.com/agentstation/gallery/pkg/errors"
)

// EnvPrefix namespaces every environment variable the CLI reads.
const EnvPrefix = "GALLERY"

// Config holds the application configuration loaded from config files,
// GALLERY_* environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Gallery data
	DataDir            string // empty uses the embedded sample collections
	ThumbnailsDir      string
	OutputDir          string
	BasePath           string
	AutoReload         bool
	AutoReloadInterval time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// configKeys maps viper keys to the flag that overrides them.
var configKeys = map[string]string{
	"data_dir":             "data-dir",
	"thumbnails_dir":       "thumbnails-dir",
	"output_dir":           "output-dir",
	"base_path":            "base-path",
	"format":               "format",
	"auto_reload":          "",
	"auto_reload_interval": "",
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. GALLERY_* environment variables
// 3. .env files
// 4. Config file (./.gallery.yaml, then ~/.gallery.yaml, or GALLERY_CONFIG)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	v := newViper()
	if file := os.Getenv(EnvPrefix + "_CONFIG"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+file, err)
		}
	} else {
		v.SetConfigName(".gallery")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		// a missing config file is fine
		_ = v.ReadInConfig()
	}

	config := &Config{
		ConfigFile:         v.ConfigFileUsed(),
		DataDir:            v.GetString("data_dir"),
		ThumbnailsDir:      v.GetString("thumbnails_dir"),
		OutputDir:          v.GetString("output_dir"),
		BasePath:           normalizeBasePath(v.GetString("base_path")),
		Format:             v.GetString("format"),
		AutoReload:         v.GetBool("auto_reload"),
		AutoReloadInterval: v.GetDuration("auto_reload_interval"),
		LogLevel:           v.GetString("log_level"),
		LogFormat:          v.GetString("log_format"),
		LogOutput:          v.GetString("log_output"),
	}
	return config, nil
}

// ApplyFile reads an explicit config file (the --config flag). Values
// whose flag was set on the command line are left alone.
func (c *Config) ApplyFile(path string, flagChanged func(name string) bool) error {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.NewConfigError("config", "cannot read "+path, err)
	}
	c.ConfigFile = v.ConfigFileUsed()

	set := func(key string, apply func()) {
		if flag := configKeys[key]; flag != "" && flagChanged(flag) {
			return
		}
		if v.InConfig(key) {
			apply()
		}
	}
	set("data_dir", func() { c.DataDir = v.GetString("data_dir") })
	set("thumbnails_dir", func() { c.ThumbnailsDir = v.GetString("thumbnails_dir") })
	set("output_dir", func() { c.OutputDir = v.GetString("output_dir") })
	set("base_path", func() { c.BasePath = normalizeBasePath(v.GetString("base_path")) })
	set("format", func() { c.Format = v.GetString("format") })
	set("auto_reload", func() { c.AutoReload = v.GetBool("auto_reload") })
	set("auto_reload_interval", func() { c.AutoReloadInterval = v.GetDuration("auto_reload_interval") })
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	c.BasePath = normalizeBasePath(c.BasePath)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("output_dir", constants.DefaultOutputDir)
	v.SetDefault("auto_reload", false)
	v.SetDefault("auto_reload_interval", constants.DefaultReloadInterval)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
	return v
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// normalizeBasePath turns "gallery/" or "/gallery/" into "/gallery" and
// "/" into "".
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
