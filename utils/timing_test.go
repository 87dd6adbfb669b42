package utils

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"nnscene/topology"
)

func TestDurationUS(t *testing.T) {
	d := 1234*time.Microsecond + 567*time.Nanosecond
	got := DurationUS(d)
	if math.Abs(got-1234.567) > 0.001 {
		t.Fatalf("want 1234.567µs, got %.3f", got)
	}
}

func withOutput(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldVerbose := Output, Verbose
	Output, Verbose = &buf, verbose
	t.Cleanup(func() { Output, Verbose = oldOut, oldVerbose })
	return &buf
}

func TestCollectAndPrintStats(t *testing.T) {
	buf := withOutput(t, true)

	s, err := topology.NewBuilder(topology.DefaultOptions()).BuildMLP([]int{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	stats := &BuildStats{TotalTime: time.Millisecond, BuildTime: 500 * time.Microsecond}
	CollectStats(s, stats)

	if stats.Layers != 2 || stats.Neurons != 5 || stats.Connections != 6 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	// root, 2 layer groups, 5 neurons with labels, 1 connection group, 6 cylinders
	if stats.Nodes != 1+2+10+1+6 {
		t.Errorf("Nodes = %d, want 20", stats.Nodes)
	}

	PrintBuildStats(stats)
	out := buf.String()
	for _, want := range []string{"Network type: MLP", "Neurons: 5", "Layer connections: 6", "Layout: 500µs (50.0%)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Grid connections") {
		t.Errorf("MLP output should not report grid connections")
	}
}

func TestQuietSuppressesOutput(t *testing.T) {
	buf := withOutput(t, false)
	Logf("hello %d\n", 1)
	PrintBuildStats(&BuildStats{})
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
