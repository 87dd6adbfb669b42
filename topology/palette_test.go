package topology

import "testing"

// The historical formula never looks at the value: with the [1, 6] range
// it always lands on the last ramp entry.
func TestLegacyColorForIgnoresValue(t *testing.T) {
	for v := MinActivation; v <= MaxActivation; v++ {
		if got := LegacyBucket(MinActivation, MaxActivation, v); got != 5 {
			t.Errorf("value %d: bucket %d, want 5", v, got)
		}
		if got := LegacyColorFor(MinActivation, MaxActivation, v, DefaultRamp); got != DefaultRamp[5] {
			t.Errorf("value %d: color %v, want %v", v, got, DefaultRamp[5])
		}
	}
}

func TestColorForBucketsByValue(t *testing.T) {
	for v := MinActivation; v <= MaxActivation; v++ {
		want := v - MinActivation
		if got := Bucket(MinActivation, MaxActivation, v); got != want {
			t.Errorf("value %d: bucket %d, want %d", v, got, want)
		}
		if got := ColorFor(MinActivation, MaxActivation, v, DefaultRamp); got != DefaultRamp[want] {
			t.Errorf("value %d: color %v, want %v", v, got, DefaultRamp[want])
		}
	}
}

func TestBucketClamps(t *testing.T) {
	if got := Bucket(1, 6, -3); got != 0 {
		t.Errorf("below range: got %d, want 0", got)
	}
	if got := Bucket(1, 6, 40); got != 5 {
		t.Errorf("above range: got %d, want 5", got)
	}
	if got := Bucket(1, 0, 3); got != 0 {
		t.Errorf("zero max: got %d, want 0", got)
	}
	if got := LegacyBucket(1, 3, 3); got != 0 {
		t.Errorf("legacy zero step: got %d, want 0", got)
	}
}

func TestLabels(t *testing.T) {
	if got := LabelFor(2, 7); got != "(2;7)" {
		t.Errorf("LabelFor = %q", got)
	}
	if got := KohonenLabelFor(0, 3); got != "(1;0;3)" {
		t.Errorf("KohonenLabelFor = %q", got)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{MLP, Autoencoder, Kohonen} {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if k, ok := ParseKind("autoencoder"); ok || k != MLP {
		t.Errorf("lower case kind should not match, got %v, %v", k, ok)
	}
	if s := Kind(9).String(); s != "Kind(9)" {
		t.Errorf("String() = %q", s)
	}
}
