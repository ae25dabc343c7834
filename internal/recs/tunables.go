package recs

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tunables collects every empirical constant the engine consumes, so a
// deployment can adjust them from a YAML file without a code change.
type Tunables struct {
	Weights        Weights    `yaml:"weights"`
	Thresholds     Thresholds `yaml:"weather"`
	ConditionTTLMs int        `yaml:"condition_ttl_ms"`
}

func DefaultTunables() Tunables {
	return Tunables{
		Weights:        DefaultWeights(),
		Thresholds:     DefaultThresholds(),
		ConditionTTLMs: int(DefaultConditionTTL / time.Millisecond),
	}
}

// LoadTunables reads overrides from path; an empty path yields defaults.
// Zero-valued fields in the file fall back to their defaults, so a partial
// file only overrides what it names.
func LoadTunables(path string) (Tunables, error) {
	t := DefaultTunables()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tunables: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("parse tunables: %w", err)
	}
	if t.ConditionTTLMs <= 0 {
		t.ConditionTTLMs = int(DefaultConditionTTL / time.Millisecond)
	}
	return t, nil
}

func (t Tunables) ConditionTTL() time.Duration {
	return time.Duration(t.ConditionTTLMs) * time.Millisecond
}
