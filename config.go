package flexql

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config holds everything the compiler needs beyond the schema
// collaborator: experimental per-entity toggles, plan-cache sizing, and the
// escape hatch for forward-compatible per-entity overrides that haven't
// earned a first-class field yet.
type Config struct {
	// ProjectionIndirection enables §4.D.1 step 7's optimization per root
	// entity type name.
	ProjectionIndirection map[string]bool `yaml:"projection_indirection"`

	// CacheSize is the in-process compiled-plan LRU capacity; 0 disables
	// the plan cache entirely.
	CacheSize int `yaml:"cache_size" validate:"gte=0"`

	// CacheRedisAddr, if set, backs a second cache tier shared across
	// processes.
	CacheRedisAddr string `yaml:"cache_redis_addr"`

	// Overrides is a loose escape hatch for per-entity configuration that
	// has not yet grown into a typed field; decode a specific entity's
	// override with DecodeOverride.
	Overrides map[string]any `yaml:"overrides"`
}

// Validate runs struct-tag validation. Call Normalize first so zero-valued
// fields the tags don't accept (if any are added later) are already
// defaulted.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("flexql: invalid config: %w", err)
	}
	return nil
}

// Normalize fills in defaults for zero-valued fields.
func (c *Config) Normalize() {
	if c.ProjectionIndirection == nil {
		c.ProjectionIndirection = map[string]bool{}
	}
	if c.Overrides == nil {
		c.Overrides = map[string]any{}
	}
}

// LoadConfig decodes and validates a YAML config document.
func LoadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("flexql: decode config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DecodeOverride decodes the loose override registered under key into
// target, using mapstructure so per-entity overrides can be arbitrary
// nested maps without a dedicated Config field.
func DecodeOverride(overrides map[string]any, key string, target any) error {
	raw, ok := overrides[key]
	if !ok {
		return nil
	}
	if err := mapstructure.Decode(raw, target); err != nil {
		return fmt.Errorf("flexql: decode override %q: %w", key, err)
	}
	return nil
}
