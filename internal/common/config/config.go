// Package config loads jobdefctl settings from flags, a config file, and the environment.
package config

import (
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/mu2e/jobdef/internal/filestage"
)

const (
	EnvPrefix         = "JOBDEF"
	DefaultConfigName = ".jobdefctl"
)

type Config struct {
	// One of the logrus level names.
	LogLevel string `validate:"required,oneof=panic fatal error warn warning info debug trace"`
	// Directory searched for archives named by something other than an existing path.
	ArchiveDir string
	Staging    StagingConfig
}

type StagingConfig struct {
	DefaultLocation filestage.Location `validate:"required"`
	DefaultProtocol filestage.Protocol `validate:"required,oneof=file root"`
	// Overrides the standard root of a location.
	Roots        map[filestage.Location]string `validate:"dive,startswith=/"`
	XrootdPrefix string                        `validate:"required,startswith=root://"`
}

// SetDefaults registers the default value of every scalar key, which also makes those keys visible to
// environment variable lookup.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("archiveDir", "")
	v.SetDefault("staging.defaultLocation", string(filestage.LocationTape))
	v.SetDefault("staging.defaultProtocol", string(filestage.ProtocolFile))
	v.SetDefault("staging.xrootdPrefix", filestage.DefaultXrootdPrefix)
}

// LoadCommandlineArgsFromConfigFile merges cfgFile, or $HOME/.jobdefctl.yaml if cfgFile is empty, into v and
// enables JOBDEF_ environment variables. A missing default file is not an error.
func LoadCommandlineArgsFromConfigFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "error getting user home directory")
		}
		v.AddConfigPath(home)
		v.SetConfigName(DefaultConfigName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.MergeInConfig()
	if err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// Only returned when looking for the default file; users don't have to create it.
		default:
			return errors.Wrapf(err, "error reading config file %s", v.ConfigFileUsed())
		}
	}
	return nil
}

// Unmarshal decodes and validates the settings held by v.
func Unmarshal(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c, CustomHooks...); err != nil {
		return nil, errors.Wrap(err, "error decoding configuration")
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Load is SetDefaults, LoadCommandlineArgsFromConfigFile and Unmarshal in turn.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)
	if err := LoadCommandlineArgsFromConfigFile(v, cfgFile); err != nil {
		return nil, err
	}
	return Unmarshal(v)
}
