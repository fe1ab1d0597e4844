package strprim

import (
	"encoding/json"

	"github.com/mstoykov/envconfig"
	"gopkg.in/guregu/null.v3"
)

// DefaultExternalStringMinSize is the smallest owned buffer CreateEfficient
// will adopt as external storage instead of copying inline. The threshold is
// a tunable with no derivation beyond measurement; override it through config
// or environment when profiling says otherwise.
const DefaultExternalStringMinSize = 1024

// Config holds the tunables of the string subsystem. Null fields fall back
// to defaults, so configs from different sources can be layered with Apply.
type Config struct {
	// MaxHeapBytes bounds both heap regions together.
	MaxHeapBytes null.Int `json:"maxHeapBytes" envconfig:"STARLING_MAX_HEAP_BYTES"`
	// MaxExternalBytes bounds the external-memory ledger.
	MaxExternalBytes null.Int `json:"maxExternalBytes" envconfig:"STARLING_MAX_EXTERNAL_BYTES"`
	// ExternalStringMinSize is the ownership-adoption threshold, in code units.
	ExternalStringMinSize null.Int `json:"externalStringMinSize" envconfig:"STARLING_EXTERNAL_STRING_MIN_SIZE"`
}

// NewConfig returns a config with the default values filled in.
func NewConfig() Config {
	return Config{
		ExternalStringMinSize: null.NewInt(DefaultExternalStringMinSize, false),
	}
}

// Apply overlays the set fields of cfg onto c and returns the result.
func (c Config) Apply(cfg Config) Config {
	if cfg.MaxHeapBytes.Valid {
		c.MaxHeapBytes = cfg.MaxHeapBytes
	}
	if cfg.MaxExternalBytes.Valid {
		c.MaxExternalBytes = cfg.MaxExternalBytes
	}
	if cfg.ExternalStringMinSize.Valid {
		c.ExternalStringMinSize = cfg.ExternalStringMinSize
	}
	return c
}

// ParseJSON parses a JSON config fragment.
func ParseJSON(data json.RawMessage) (Config, error) {
	conf := Config{}
	err := json.Unmarshal(data, &conf)
	return conf, err
}

// GetConsolidatedConfig combines {defaults + JSON config + environment vars},
// in that order of precedence, and returns the final result.
func GetConsolidatedConfig(jsonRawConf json.RawMessage, env map[string]string) (Config, error) {
	result := NewConfig()
	if jsonRawConf != nil {
		jsonConf, err := ParseJSON(jsonRawConf)
		if err != nil {
			return result, err
		}
		result = result.Apply(jsonConf)
	}

	envConfig := Config{}
	if err := envconfig.Process("", &envConfig, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}); err != nil {
		return result, err
	}
	result = result.Apply(envConfig)

	return result, nil
}

func (c Config) externalMinSize() int {
	if c.ExternalStringMinSize.Valid && c.ExternalStringMinSize.Int64 > 0 {
		return int(c.ExternalStringMinSize.Int64)
	}
	return DefaultExternalStringMinSize
}
