package utils

import (
	"fmt"
	"io"
	"os"
	"time"

	"nnscene/scene"
	"nnscene/topology"
)

// Verbose controls whether progress messages and build statistics are printed.
// Set to false to suppress output.
var Verbose = true

// Output is the writer where progress and statistics are printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// Logf prints a progress message when Verbose is set.
func Logf(format string, args ...interface{}) {
	if !Verbose {
		return
	}
	fmt.Fprintf(Output, format, args...)
}

// BuildStats holds counts and timing information for one layout run
type BuildStats struct {
	Kind                string
	Layers              int
	Neurons             int
	Connections         int
	NeighborConnections int
	SelfLoops           int
	Nodes               int

	TotalTime  time.Duration
	ConfigTime time.Duration
	BuildTime  time.Duration
	ExportTime time.Duration
}

// CollectStats fills the count fields of stats from s.
func CollectStats(s *topology.Scene, stats *BuildStats) {
	stats.Kind = s.Kind.String()
	stats.Layers = len(s.Layers)
	stats.Neurons = s.NeuronCount()
	stats.Connections = len(s.Edges)
	stats.NeighborConnections = len(s.Neighbors)
	stats.SelfLoops = len(s.SelfLoops)
	stats.Nodes = s.Root.Count(func(*scene.Node) bool { return true })
}

// PrintBuildStats prints the layout summary.
// Respects the Verbose flag - does nothing if Verbose is false.
func PrintBuildStats(stats *BuildStats) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "\n=== BUILD STATISTICS ===")
	fmt.Fprintf(Output, "Network type: %s\n", stats.Kind)
	fmt.Fprintf(Output, "Layers: %d\n", stats.Layers)
	fmt.Fprintf(Output, "Neurons: %d\n", stats.Neurons)
	fmt.Fprintf(Output, "Layer connections: %d\n", stats.Connections)
	if stats.NeighborConnections > 0 || stats.SelfLoops > 0 {
		fmt.Fprintf(Output, "Grid connections: %d\n", stats.NeighborConnections)
		fmt.Fprintf(Output, "Self connections: %d\n", stats.SelfLoops)
	}
	fmt.Fprintf(Output, "Scene nodes: %d\n", stats.Nodes)
	fmt.Fprintln(Output, "\nTiming:")
	fmt.Fprintf(Output, "  Total: %v\n", stats.TotalTime)
	fmt.Fprintf(Output, "  Config: %v (%.1f%%)\n", stats.ConfigTime, percent(stats.ConfigTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Layout: %v (%.1f%%)\n", stats.BuildTime, percent(stats.BuildTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Export: %v (%.1f%%)\n", stats.ExportTime, percent(stats.ExportTime, stats.TotalTime))
}

func percent(part, total time.Duration) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// DurationUS converts any time.Duration to micro-seconds as float64
func DurationUS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000.0
}
