package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"nnscene/topology"
)

// Config is the network description read from a JSON asset.
type Config struct {
	NNType  string        `json:"nn_type"`
	Layers  []int         `json:"layers"`
	Kohonen KohonenConfig `json:"kohonen"`

	// Kind is resolved from NNType by ResolveKind.
	Kind topology.Kind `json:"-"`
	// TypeFallback is set when NNType was not recognized and Kind fell back to MLP.
	TypeFallback bool `json:"-"`
}

// KohonenConfig holds the Kohonen grid. Activations are indexed [column][row].
type KohonenConfig struct {
	InputDimension int     `json:"input_dimension"`
	Activations    [][]int `json:"activations"`
}

// DefaultConfig returns an MLP config with no layers and the stock 3x3
// Kohonen grid fed by ten inputs.
func DefaultConfig() *Config {
	return &Config{
		NNType: topology.MLP.String(),
		Kind:   topology.MLP,
		Kohonen: KohonenConfig{
			InputDimension: 10,
			Activations:    [][]int{{1, 2, 4}, {3, 5, 5}, {1, 6, 2}},
		},
	}
}

// ParseConfig decodes a JSON config on top of DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.ResolveKind()
	return config, nil
}

// LoadConfig reads and decodes the JSON config at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ResolveKind sets Kind from NNType. Unknown names keep the network an MLP;
// the fallback is logged and recorded in TypeFallback rather than failing.
func (c *Config) ResolveKind() {
	kind, ok := topology.ParseKind(c.NNType)
	c.Kind = kind
	c.TypeFallback = !ok
	if !ok {
		Logf("unknown nn_type %q, falling back to %s\n", c.NNType, kind)
	}
}

// ParseArchitecture parses architecture string into slice of integers
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.Fields(strings.ReplaceAll(archStr, ",", " "))
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		arch[i] = n
	}
	return arch, nil
}

// ToSpec converts the config into a validated network spec.
func (c *Config) ToSpec() (topology.NetworkSpec, error) {
	spec := topology.NetworkSpec{Kind: c.Kind, LayerSizes: c.Layers}
	if c.Kind == topology.Kohonen {
		k, err := topology.NewKohonenSpec(c.Kohonen.InputDimension, c.Kohonen.Activations)
		if err != nil {
			return topology.NetworkSpec{}, err
		}
		spec.Kohonen = k
	}
	if err := spec.Validate(); err != nil {
		return topology.NetworkSpec{}, err
	}
	return spec, nil
}

// ValidateConfig validates the network configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config must not be nil")
	}
	if _, err := config.ToSpec(); err != nil {
		return fmt.Errorf("%s network: %w", config.Kind, err)
	}
	return nil
}
