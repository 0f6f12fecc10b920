package picking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the tunable settings of a Backend and its host.
type Config struct {
	PickablePolicy string `json:"pickablePolicy" mapstructure:"pickablePolicy"`
	Parallelism    int    `json:"parallelism" mapstructure:"parallelism"`
	Debug          bool   `json:"debug" mapstructure:"debug"`
	LogLevel       string `json:"logLevel" mapstructure:"logLevel"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		PickablePolicy: PickableIgnored.String(),
		Parallelism:    1,
		LogLevel:       "info",
	}
}

// LoadConfig reads configuration from path (any format viper understands,
// selected by extension) on top of the defaults. An empty path loads only
// defaults and environment variables prefixed with PICKING_.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("pickablePolicy", def.PickablePolicy)
	v.SetDefault("parallelism", def.Parallelism)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("logLevel", def.LogLevel)

	v.SetEnvPrefix("PICKING")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if _, err := cfg.Policy(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParsePickablePolicy parses a policy name ("ignored" or "required").
func ParsePickablePolicy(name string) (PickablePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ignored":
		return PickableIgnored, nil
	case "required":
		return PickableRequired, nil
	default:
		return 0, fmt.Errorf("unknown pickable policy %q", name)
	}
}

// Policy returns the parsed PickablePolicy.
func (c Config) Policy() (PickablePolicy, error) {
	return ParsePickablePolicy(c.PickablePolicy)
}

// Options converts the config into Backend options.
func (c Config) Options() ([]Option, error) {
	policy, err := c.Policy()
	if err != nil {
		return nil, err
	}
	if c.Parallelism < 0 {
		return nil, errors.New("parallelism must not be negative")
	}
	return []Option{
		WithPickablePolicy(policy),
		WithParallelism(c.Parallelism),
		WithDebug(c.Debug),
	}, nil
}
