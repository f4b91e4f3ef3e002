package svgredraw

import (
	"strings"
	"testing"
)

func TestReadTuning(t *testing.T) {
	tuning, err := ReadTuning(strings.NewReader(`
fullRedrawThreshold: 0.4
maxDirtyRects: 4
margin: 2
`))
	if err != nil {
		t.Fatal(err)
	}
	if tuning.FullRedrawThreshold != 0.4 || tuning.MaxDirtyRects != 4 || tuning.Margin != 2 {
		t.Errorf("got %+v", tuning)
	}
	// the field left out keeps its default
	if tuning.SingleTargetThreshold != 0.9 {
		t.Errorf("SingleTargetThreshold = %g, want the default 0.9", tuning.SingleTargetThreshold)
	}

	if _, err = ReadTuning(strings.NewReader("margin: [oops")); err == nil {
		t.Error("malformed YAML must be an error")
	}
}

func TestTuningSanitized(t *testing.T) {
	tuning, err := ReadTuning(strings.NewReader(`
fullRedrawThreshold: -1
singleTargetThreshold: 0
maxDirtyRects: 0
margin: -3
`))
	if err != nil {
		t.Fatal(err)
	}
	if tuning != DefaultTuning() {
		t.Errorf("got %+v, want every invalid field back at its default", tuning)
	}

	// a zero margin is a legitimate choice, not an error
	tuning, err = ReadTuning(strings.NewReader("margin: 0"))
	if err != nil {
		t.Fatal(err)
	}
	if tuning.Margin != 0 {
		t.Errorf("margin = %g, want 0 kept as-is", tuning.Margin)
	}
}
