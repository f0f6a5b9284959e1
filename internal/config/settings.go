package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are the runtime settings of a crimpfit invocation.
type Settings struct {
	Connectors    string `mapstructure:"connectors"`
	Tools         string `mapstructure:"tools"`
	CatalogConfig string `mapstructure:"catalog_config"`
	Format        string `mapstructure:"format"`
	LogLevel      string `mapstructure:"log_level"`
	LogJSON       bool   `mapstructure:"log_json"`
}

// flagKeys maps settings keys to the global flag names.
var flagKeys = map[string]string{
	"connectors":     "connectors",
	"tools":          "tools",
	"catalog_config": "catalog-config",
	"format":         "format",
	"log_level":      "log-level",
	"log_json":       "log-json",
}

// LoadSettings resolves settings from flags, CRIMPFIT_* env vars and an
// optional crimpfit.yaml. Env var overrides use prefix CRIMPFIT_; the file
// is read from CRIMPFIT_CONFIG when set, otherwise from the working
// directory. Flags set on the command line win over everything else.
func LoadSettings(flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	// default values
	v.SetDefault("connectors", "data/connectors.csv")
	v.SetDefault("tools", "data/tools.csv")
	v.SetDefault("catalog_config", "")
	v.SetDefault("format", "text")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_json", false)

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("CRIMPFIT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("crimpfit")
	}

	v.SetEnvPrefix("CRIMPFIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return s, nil
}
