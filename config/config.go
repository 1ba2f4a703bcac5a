// Package config loads jcomplete settings from defaults, an optional
// jcomplete.toml and JCOMPLETE_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "JCOMPLETE"
	FileName  = "jcomplete.toml"
)

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Parse    ParseConfig    `mapstructure:"parse"`
	LSP      LSPConfig      `mapstructure:"lsp"`
	Complete CompleteConfig `mapstructure:"complete"`
}

type LogConfig struct {
	Verbosity int    `mapstructure:"verbosity"`
	File      string `mapstructure:"file"`
}

type ParseConfig struct {
	// Timeout bounds a single parse. Zero disables the bound.
	Timeout time.Duration `mapstructure:"timeout"`
	// Strict rejects files with syntax errors inside method bodies too.
	Strict bool `mapstructure:"strict"`
}

type LSPConfig struct {
	TriggerCharacters []string `mapstructure:"trigger_characters"`
}

type CompleteConfig struct {
	Snippets bool `mapstructure:"snippets"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.verbosity", 0)
	v.SetDefault("log.file", "")

	v.SetDefault("parse.timeout", 2*time.Second)
	v.SetDefault("parse.strict", false)

	v.SetDefault("lsp.trigger_characters", []string{"."})

	v.SetDefault("complete.snippets", true)
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the configuration. An explicit path must exist; otherwise
// jcomplete.toml is looked up in the working directory and then in
// $XDG_CONFIG_HOME/jcomplete, and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := New()
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		return unmarshal(v)
	}

	if found := findConfig(); found != "" {
		v.SetConfigFile(found)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", found)
		}
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return &cfg, nil
}

func findConfig() string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "jcomplete"))
	}

	for _, dir := range dirs {
		p := filepath.Join(dir, FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
