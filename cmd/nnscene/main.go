// nnscene: lays out a neural network topology as a 3D scene description
//
// Usage:
//
//	nnscene --config=network.json --output=scene.json --dot=network.dot
//	nnscene --type=AUTOENCODER --layers="4 2 1" --output=scene.json
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"nnscene/scene"
	"nnscene/topology"
	"nnscene/utils"
)

var (
	configFile         = flag.String("config", "", "Network config file (JSON)")
	netType            = flag.String("type", "", "Network type override: MLP, AUTOENCODER, KOHONEN")
	layers             = flag.String("layers", "", "Layer sizes override, e.g. \"4 2 1\"")
	outputFile         = flag.String("output", "", "Output scene file (JSON)")
	dotFile            = flag.String("dot", "", "Output Graphviz file")
	legacyColors       = flag.Bool("legacy-colors", false, "Use the historical value-independent color bucket")
	neuronMaterial     = flag.String("neuron-material", "neuron", "Material assigned to neuron spheres")
	connectionMaterial = flag.String("connection-material", "connection", "Material assigned to connection cylinders")
	selfConnection     = flag.String("self-connection", "self_connection", "Prototype used for Kohonen self connections")
	verbose            = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	stats := &utils.BuildStats{}
	totalStart := time.Now()

	start := time.Now()
	config, err := loadConfig()
	if err != nil {
		return err
	}
	spec, err := config.ToSpec()
	if err != nil {
		return err
	}
	stats.ConfigTime = time.Since(start)

	utils.Logf("Configuration:\n")
	utils.Logf("  Type:   %s\n", spec.Kind)
	if spec.Kind == topology.Kohonen {
		utils.Logf("  Inputs: %d\n", spec.Kohonen.InputDimension)
		utils.Logf("  Grid:   %dx%d\n", spec.Kohonen.Height(), spec.Kohonen.Width())
	} else {
		utils.Logf("  Layers: %v\n", spec.LayerSizes)
	}

	opts := topology.DefaultOptions()
	opts.NeuronMaterial = *neuronMaterial
	opts.ConnectionMaterial = *connectionMaterial
	opts.SelfConnection = *selfConnection
	opts.LegacyColorBucket = *legacyColors

	builder := topology.NewBuilder(opts)
	if err := builder.Configure(spec); err != nil {
		return err
	}
	start = time.Now()
	s, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to build %s: %w", spec.Kind, err)
	}
	stats.BuildTime = time.Since(start)
	utils.CollectStats(s, stats)

	start = time.Now()
	if *outputFile != "" {
		utils.Logf("\nSaving scene to %s...\n", *outputFile)
		if err := scene.SaveJSON(*outputFile, s.Root); err != nil {
			return err
		}
	}
	if *dotFile != "" {
		utils.Logf("Saving graph to %s...\n", *dotFile)
		data, err := topology.MarshalDOT(s)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*dotFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write graph: %w", err)
		}
	}
	stats.ExportTime = time.Since(start)
	stats.TotalTime = time.Since(totalStart)

	utils.PrintBuildStats(stats)
	return nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig() (*utils.Config, error) {
	config := utils.DefaultConfig()
	if *configFile != "" {
		c, err := utils.LoadConfig(*configFile)
		if err != nil {
			return nil, err
		}
		config = c
	}
	if *netType != "" {
		config.NNType = *netType
		config.ResolveKind()
	}
	if *layers != "" {
		arch, err := utils.ParseArchitecture(*layers)
		if err != nil {
			return nil, fmt.Errorf("invalid --layers: %w", err)
		}
		config.Layers = arch
	}
	if err := utils.ValidateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}
