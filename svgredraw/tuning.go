package svgredraw

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Tuning exposes the partial-redraw heuristics as knobs, loadable from
// a YAML document:
//
//	fullRedrawThreshold: 0.5
//	singleTargetThreshold: 0.9
//	maxDirtyRects: 8
//	margin: 1
//
// The single-target threshold exists for the common authoring pattern
// of one full-canvas background animation; its value is a heuristic,
// not a law, hence a knob rather than a constant.
type Tuning struct {
	// FullRedrawThreshold is the dirty-area / canvas-area ratio above
	// which a full redraw beats clipping. Default 0.5.
	FullRedrawThreshold float64 `yaml:"fullRedrawThreshold"`
	// SingleTargetThreshold is the coverage ratio above which a lone
	// tracked target forces a full redraw. Default 0.9.
	SingleTargetThreshold float64 `yaml:"singleTargetThreshold"`
	// MaxDirtyRects caps the rectangle list before intersecting pairs
	// are merged. Default 8.
	MaxDirtyRects int `yaml:"maxDirtyRects"`
	// Margin expands each dirty rectangle on all sides, absorbing
	// anti-aliasing spill at the edges. Default 1 unit.
	Margin float64 `yaml:"margin"`
}

// DefaultTuning returns the stock heuristics.
func DefaultTuning() Tuning {
	return Tuning{
		FullRedrawThreshold:   0.5,
		SingleTargetThreshold: 0.9,
		MaxDirtyRects:         8,
		Margin:                1,
	}
}

// ReadTuning decodes a Tuning from YAML, starting from the defaults;
// invalid fields are corrected back to their defaults.
func ReadTuning(r io.Reader) (Tuning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Tuning{}, err
	}
	tuning := DefaultTuning()
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return Tuning{}, fmt.Errorf("svgredraw: invalid tuning: %s", err)
	}
	return tuning.sanitized(), nil
}

// sanitized replaces out-of-range fields with their defaults.
// A zero margin is a legitimate choice; a negative one is not.
func (t Tuning) sanitized() Tuning {
	def := DefaultTuning()
	if t.FullRedrawThreshold <= 0 {
		t.FullRedrawThreshold = def.FullRedrawThreshold
	}
	if t.SingleTargetThreshold <= 0 {
		t.SingleTargetThreshold = def.SingleTargetThreshold
	}
	if t.MaxDirtyRects < 1 {
		t.MaxDirtyRects = def.MaxDirtyRects
	}
	if t.Margin < 0 {
		t.Margin = def.Margin
	}
	return t
}
