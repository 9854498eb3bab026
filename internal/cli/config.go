package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds CLI configuration
type Config struct {
	ServerURL            string `mapstructure:"server"`
	AdminUser            string `mapstructure:"admin-user"`
	AdminPassword        string `mapstructure:"admin-password"`
	RegistrationResource string `mapstructure:"registration-resource"`
	Catalog              string `mapstructure:"catalog"`
	Output               string `mapstructure:"output"`
	Verbose              bool   `mapstructure:"verbose"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: "http://localhost:8080",
		Output:    "text",
	}
}

// loadConfig merges flags, OLYMP_* environment variables and the optional
// config file, in that order of precedence
func loadConfig(flags *pflag.FlagSet, cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("OLYMP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("server", defaults.ServerURL)
	v.SetDefault("output", defaults.Output)

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "olymp"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if c.Output != "text" && c.Output != "json" {
		return nil, fmt.Errorf("unknown output format %q", c.Output)
	}
	return &c, nil
}
