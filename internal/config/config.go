package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAppends       = 32
	DefaultDataDir       = ".dynarray"
	DefaultMutationIndex = 0
	DefaultMutationValue = 6
)

type Config struct {
	Values     []int          `yaml:"values"`
	Mutation   MutationConfig `yaml:"mutation"`
	Appends    int            `yaml:"appends"`
	LimitBytes int64          `yaml:"limit_bytes"`
	DataDir    string         `yaml:"data_dir"`
}

// MutationConfig is the write applied to the original array after it has
// been copied.
type MutationConfig struct {
	Index int `yaml:"index"`
	Value int `yaml:"value"`
}

func DefaultConfig() *Config {
	return &Config{
		Values: []int{0, 1, 2, 3, 4},
		Mutation: MutationConfig{
			Index: DefaultMutationIndex,
			Value: DefaultMutationValue,
		},
		Appends: DefaultAppends,
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

// Validate reports settings the demo and grow commands cannot run with.
// A mutation index is only checked when there are values to mutate.
func (c *Config) Validate() error {
	if c.Appends < 0 {
		return errors.Errorf("appends must be non-negative, got %d", c.Appends)
	}
	if c.LimitBytes < 0 {
		return errors.Errorf("limit_bytes must be non-negative, got %d", c.LimitBytes)
	}
	if n := len(c.Values); n > 0 && (c.Mutation.Index < 0 || c.Mutation.Index >= n) {
		return errors.Errorf("mutation index %d outside values [0, %d)", c.Mutation.Index, n)
	}
	return nil
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Values = append([]int(nil), c.Values...)
	return &cp
}
