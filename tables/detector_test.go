package tables

import (
	"testing"

	"github.com/tsawler/gridscan/imaging"
)

func TestDefaultDetectorsRegistered(t *testing.T) {
	for _, name := range []string{"lines", "geometric"} {
		d := GetDetector(name)
		if d == nil {
			t.Errorf("detector %q not registered", name)
			continue
		}
		if d.Name() != name {
			t.Errorf("detector registered under %q reports name %q", name, d.Name())
		}
	}
	if GetDetector("nope") != nil {
		t.Error("unknown detector name should return nil")
	}

	names := ListDetectors()
	if len(names) < 2 {
		t.Errorf("ListDetectors() = %v, want at least lines and geometric", names)
	}
}

func TestRegistryIsolation(t *testing.T) {
	r := NewRegistry()
	if len(r.List()) != 0 {
		t.Error("fresh registry should be empty")
	}
	r.Register(NewLineDetector())
	if r.Get("lines") == nil {
		t.Error("registered detector not retrievable")
	}
	if r.Get("geometric") != nil {
		t.Error("local registry must not see global registrations")
	}
}

func TestConfigNormalized(t *testing.T) {
	c := Config{
		BinarizeMethod:     imaging.BinarizeMethod("bogus"),
		AdaptiveBlockSize:  10,
		LineScale:          0,
		MinTableAreaRatio:  1.5,
		MinLineLengthRatio: -0.2,
		LineMergeTolerance: -1,
		MinCellSize:        0,
		CellPadding:        -3,
		MinConfidence:      2,
	}
	n := c.normalized()

	if n.BinarizeMethod != imaging.BinarizeOtsu {
		t.Errorf("BinarizeMethod = %q, want otsu fallback", n.BinarizeMethod)
	}
	if n.AdaptiveBlockSize%2 == 0 {
		t.Errorf("AdaptiveBlockSize = %d, want odd", n.AdaptiveBlockSize)
	}
	if n.LineScale < 1 {
		t.Errorf("LineScale = %d, want >= 1", n.LineScale)
	}
	if n.MinTableAreaRatio != 1 {
		t.Errorf("MinTableAreaRatio = %v, want clamped to 1", n.MinTableAreaRatio)
	}
	if n.MinLineLengthRatio != 0 {
		t.Errorf("MinLineLengthRatio = %v, want clamped to 0", n.MinLineLengthRatio)
	}
	if n.LineMergeTolerance != 0 || n.MinCellSize != 1 || n.CellPadding != 0 {
		t.Errorf("pixel knobs not clamped: %+v", n)
	}
	if n.MinConfidence != 1 {
		t.Errorf("MinConfidence = %v, want clamped to 1", n.MinConfidence)
	}
}

func TestConfigNormalizedPreservesAdaptive(t *testing.T) {
	c := DefaultConfig()
	c.BinarizeMethod = imaging.BinarizeAdaptive
	if n := c.normalized(); n.BinarizeMethod != imaging.BinarizeAdaptive {
		t.Errorf("BinarizeMethod = %q, want adaptive preserved", n.BinarizeMethod)
	}
}
