package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"
)

// Simulation holds channel simulation settings read from a YAML file.
// Zero values are left to the command's flag defaults.
type Simulation struct {
	Trials        uint      `yaml:"trials"`
	Threads       uint      `yaml:"threads"`
	Seed          *int64    `yaml:"seed"`
	Probabilities []float64 `yaml:"probabilities"`
	Fixed         *bool     `yaml:"fixed"`
	EbN0          []float64 `yaml:"ebn0"`
	Decibels      *bool     `yaml:"decibels"`
}

func Load(filepath string) (*Simulation, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config %v: %w", filepath, err)
	}

	var sim Simulation
	err = yaml.UnmarshalStrict(data, &sim)
	if err != nil {
		return nil, fmt.Errorf("unable to parse config %v: %w", filepath, err)
	}
	return &sim, nil
}

// Apply sets every flag the config provides a value for, unless the flag was
// given explicitly on the command line. Flags the command doesn't define are skipped.
func (s *Simulation) Apply(flags *pflag.FlagSet) error {
	values := make(map[string]string)
	if s.Trials > 0 {
		values["trials"] = fmt.Sprint(s.Trials)
	}
	if s.Threads > 0 {
		values["threads"] = fmt.Sprint(s.Threads)
	}
	if s.Seed != nil {
		values["seed"] = fmt.Sprint(*s.Seed)
	}
	if len(s.Probabilities) > 0 {
		values["probability"] = joinFloats(s.Probabilities)
	}
	if s.Fixed != nil {
		values["fixed"] = fmt.Sprint(*s.Fixed)
	}
	if len(s.EbN0) > 0 {
		values["ebn0"] = joinFloats(s.EbN0)
	}
	if s.Decibels != nil {
		values["db"] = fmt.Sprint(*s.Decibels)
	}

	for name, value := range values {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		err := flags.Set(name, value)
		if err != nil {
			return fmt.Errorf("config value %v for %v: %w", value, name, err)
		}
		logrus.Debugf("config set %v=%v", name, value)
	}
	return nil
}

func joinFloats(values []float64) string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = fmt.Sprint(v)
	}
	return strings.Join(strs, ",")
}
