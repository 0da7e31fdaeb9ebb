package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the batch configuration file. Zero values fall back to the
// command line flags.
type Config struct {
	Seed        int64            `yaml:"seed"`
	Runs        int              `yaml:"runs"`
	Trials      int64            `yaml:"trials"`
	MaxAttempts int              `yaml:"max_attempts"`
	Workers     int              `yaml:"workers"`
	Scenarios   []ScenarioConfig `yaml:"scenarios"`
}

type ScenarioConfig struct {
	Name          string  `yaml:"name"`
	Variant       Variant `yaml:"variant"`
	UserData      int     `yaml:"user_data"`
	RedundantBits int     `yaml:"redundant_bits"`
	Trials        int64   `yaml:"trials"`

	ErrorProb float64 `yaml:"error_prob"`

	PG  float64 `yaml:"pg"`
	PB  float64 `yaml:"pb"`
	// nil selects DefaultPersistence
	PGG *float64 `yaml:"pgg"`
	PBB *float64 `yaml:"pbb"`
}

func (c ScenarioConfig) Scenario() (Scenario, error) {
	sc := Scenario{
		Name:   c.Name,
		Trials: c.Trials,
		Params: Params{
			UserData:      c.UserData,
			RedundantBits: c.RedundantBits,
			Variant:       c.Variant,
			ErrorProb:     c.ErrorProb,
			PG:            c.PG,
			PB:            c.PB,
			PGG:           orDefault(c.PGG, DefaultPersistence),
			PBB:           orDefault(c.PBB, DefaultPersistence),
		},
	}
	if sc.Name == "" {
		return sc, fmt.Errorf("%w: scenario without name", ErrInvalidParams)
	}
	if err := sc.Params.Validate(); err != nil {
		return sc, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	return sc, nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ScenarioList validates and converts every configured scenario; a config
// without scenarios yields DefaultScenarios.
func (c *Config) ScenarioList() ([]Scenario, error) {
	var out []Scenario
	if len(c.Scenarios) == 0 {
		out = DefaultScenarios()
	} else {
		seen := make(map[string]bool, len(c.Scenarios))
		for _, sc := range c.Scenarios {
			s, err := sc.Scenario()
			if err != nil {
				return nil, err
			}
			if seen[s.Name] {
				return nil, fmt.Errorf("%w: duplicate scenario %q", ErrInvalidParams, s.Name)
			}
			seen[s.Name] = true
			out = append(out, s)
		}
	}
	for i := range out {
		if out[i].Trials <= 0 {
			out[i].Trials = c.Trials
		}
	}
	return out, nil
}
