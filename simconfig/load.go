package simconfig

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// fileConfig mirrors Config with mapstructure tags for viper decoding; it
// exists separately from Config because Config's zero value is not a
// meaningful default (Validate would reject N=0, Theta=0, etc.) and viper
// needs a struct it can populate before defaults and validation run.
type fileConfig struct {
	N               int     `mapstructure:"n"`
	Dt              float64 `mapstructure:"dt"`
	Theta           float64 `mapstructure:"theta"`
	Softening       float64 `mapstructure:"softening"`
	Dim             int     `mapstructure:"dim"`
	Seed            int64   `mapstructure:"seed"`
	Scenario        string  `mapstructure:"scenario"`
	Workers         int     `mapstructure:"workers"`
	HaltOnNonFinite bool    `mapstructure:"halt_on_non_finite"`
}

func setDefaults(v *viper.Viper) {
	d := defaults()
	v.SetDefault("n", d.N)
	v.SetDefault("dt", d.Dt)
	v.SetDefault("theta", d.Theta)
	v.SetDefault("softening", d.Softening)
	v.SetDefault("dim", d.Dim)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("scenario", string(d.Scenario))
	v.SetDefault("workers", d.Workers)
	v.SetDefault("halt_on_non_finite", d.HaltOnNonFinite)
}

// Load reads a YAML/TOML/JSON configuration file at path, falling back to
// documented defaults for any key it omits, overlays environment variable
// overrides, validates the result, and returns it. An empty path searches
// "./nbody.yaml" and "/etc/nbody/nbody.yaml" before giving up and using
// defaults outright.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("nbody")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/nbody")
	}

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("simconfig: reading %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("NBODY")
	v.AutomaticEnv()

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return Config{}, fmt.Errorf("simconfig: decoding config: %w", err)
	}

	cfg := Config{
		N:               fc.N,
		Dt:              fc.Dt,
		Theta:           fc.Theta,
		Softening:       fc.Softening,
		Dim:             fc.Dim,
		Seed:            fc.Seed,
		Scenario:        Scenario(fc.Scenario),
		Workers:         fc.Workers,
		HaltOnNonFinite: fc.HaltOnNonFinite,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
