// Provides extraction of discrete, timed attribute animations
// from SVG documents following the frame-by-frame authoring convention
// (one <animate> per target, semicolon separated values, equal time slices).
// The resulting records drive a playback timeline; see svgplayer/svgplayback.
package svgsmil

import "math"

// TimedAnimation is one discrete timed attribute animation,
// built from a single <animate> declaration.
// Records are immutable once parsed: an animation with no values
// or no resolved target is dropped at parse time, never stored.
type TimedAnimation struct {
	TargetID      string   // id of the element whose attribute changes
	AttributeName string   // attribute to animate (e.g. "xlink:href")
	Values        []string // discrete keyframe payloads, in document order
	Duration      float64  // total duration in seconds
	Repeat        bool     // declaration-level repeat indicator (informational)
	CalcMode      string   // "discrete" unless the document says otherwise
}

// FrameCount returns the number of discrete values.
func (a *TimedAnimation) FrameCount() int { return len(a.Values) }

// FrameIndexAt returns the 0-based value index active at elapsed seconds.
// The duration is divided into equal slices, one per value; there is
// no interpolation. A zero or negative duration always maps to frame 0.
// Repeating animations wrap with fmod (negative times wrap backwards);
// non repeating ones clamp to the last frame past the end and to the
// first frame before the start.
func (a *TimedAnimation) FrameIndexAt(elapsed float64) int {
	if len(a.Values) == 0 || a.Duration <= 0 {
		return 0
	}

	t := elapsed
	if a.Repeat {
		t = math.Mod(elapsed, a.Duration)
		if t < 0 {
			t += a.Duration
		}
	} else if elapsed >= a.Duration {
		return len(a.Values) - 1
	} else if elapsed < 0 {
		return 0
	}

	slice := a.Duration / float64(len(a.Values))
	index := int(t / slice)
	if index >= len(a.Values) { // guard the upper boundary
		index = len(a.Values) - 1
	}
	return index
}

// ValueAt returns the value active at elapsed seconds,
// that is Values[FrameIndexAt(elapsed)].
func (a *TimedAnimation) ValueAt(elapsed float64) string {
	if len(a.Values) == 0 {
		return ""
	}
	return a.Values[a.FrameIndexAt(elapsed)]
}
