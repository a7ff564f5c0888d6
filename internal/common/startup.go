package common

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	commonconfig "github.com/npsdata/bqfirestoresync/internal/common/config"
)

// EnvPrefix is prepended to the name of every environment variable that overrides a config value,
// e.g. BQFSSYNC_DESTINATION_COLLECTION overrides destination.collection.
const EnvPrefix = "BQFSSYNC"

// FlagBinding lets a command line flag override the config value under Key when the flag is set.
type FlagBinding struct {
	Key  string
	Flag *pflag.Flag
}

// LoadConfig fills config from config.yaml in defaultPath, then merges in every file in overrideConfigs
// in order. Environment variables override values from files and flags in bindings override both.
func LoadConfig(config interface{}, defaultPath string, overrideConfigs []string, bindings ...FlagBinding) error {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(defaultPath)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "error reading base config from %s", defaultPath)
	}
	log.Debugf("Read base config from %s", v.ConfigFileUsed())

	for _, overrideConfig := range overrideConfigs {
		v.SetConfigFile(overrideConfig)
		if err := v.MergeInConfig(); err != nil {
			return errors.Wrapf(err, "error reading config from %s", overrideConfig)
		}
		log.Debugf("Read config from %s", v.ConfigFileUsed())
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for _, binding := range bindings {
		if binding.Flag == nil {
			continue
		}
		if err := v.BindPFlag(binding.Key, binding.Flag); err != nil {
			return errors.WithStack(err)
		}
	}

	if err := v.Unmarshal(config, commonconfig.CustomHooks...); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// ConfigureLogging sets up logging before the configuration, and with it the configured log settings, is known.
func ConfigureLogging() {
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
	log.SetOutput(os.Stdout)
}
