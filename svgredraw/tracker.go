// Decides, from per-target frame transitions, which screen regions a
// host renderer must redraw. The Tracker keeps one small record per
// animation target (bounds, frame bookkeeping, dirty flag) and derives
// a merged dirty-rectangle list, or a full-redraw verdict when partial
// redraw would not be worthwhile or cannot be computed safely.
// Memory use is bounded by the number of targets, never by the number
// of frames played.
//
// Like the playback timeline, a Tracker belongs to a single
// render/update goroutine and performs no locking of its own.
package svgredraw

import (
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgplayer/svgbounds"
)

// targetState is the per-target tracking record.
type targetState struct {
	bounds        svgbounds.Rect
	boundsValid   bool
	previousFrame int
	currentFrame  int
	dirty         bool
}

// Tracker maintains per-target dirty state and a lazily rebuilt,
// memoized list of merged dirty rectangles.
type Tracker struct {
	states map[string]*targetState
	tuning Tuning

	// derived rectangle list; rebuilt on read when stale
	cached     []svgbounds.Rect
	cacheValid bool
}

// NewTracker returns an empty tracker with DefaultTuning.
func NewTracker() *Tracker { return NewTrackerTuned(DefaultTuning()) }

// NewTrackerTuned returns an empty tracker with the given tuning;
// non-positive tuning fields fall back to their defaults.
func NewTrackerTuned(tuning Tuning) *Tracker {
	return &Tracker{
		states: make(map[string]*targetState),
		tuning: tuning.sanitized(),
	}
}

// Reset drops all targets, bounds and dirty state.
func (t *Tracker) Reset() {
	t.states = make(map[string]*targetState)
	t.cached = nil
	t.cacheValid = false
}

// SetBounds caches the static bounds for a target, upserting its
// record. Frame bookkeeping and the dirty flag are not disturbed, so
// bounds may be (re)supplied at any point. An empty rectangle records
// the target as unboundable, which forces full redraws while it is
// dirty.
func (t *Tracker) SetBounds(targetID string, bounds svgbounds.Rect) {
	state, ok := t.states[targetID]
	if !ok {
		state = &targetState{}
		t.states[targetID] = state
	}
	state.bounds = bounds
	state.boundsValid = !bounds.IsEmpty()
	t.cacheValid = false
}

// HasBounds reports whether valid bounds are cached for the target.
func (t *Tracker) HasBounds(targetID string) bool {
	state, ok := t.states[targetID]
	return ok && state.boundsValid
}

// MarkDirty records that a target moved to a new frame index. The
// target turns dirty only when the index actually changed. Unknown
// targets are admitted with invalid bounds, so every reported change
// is tracked even when bounds are missing (and will force a full
// redraw until bounds arrive).
func (t *Tracker) MarkDirty(targetID string, newFrameIndex int) {
	state, ok := t.states[targetID]
	if !ok {
		t.states[targetID] = &targetState{
			currentFrame: newFrameIndex,
			dirty:        true,
		}
	} else if state.currentFrame != newFrameIndex {
		state.previousFrame = state.currentFrame
		state.currentFrame = newFrameIndex
		state.dirty = true
	}
	t.cacheValid = false
}

// rebuild recomputes the merged rectangle list from the dirty targets:
// each contributes its bounds expanded by the anti-aliasing margin;
// when the list exceeds the rectangle cap, intersecting pairs are
// merged until the list fits the cap or no pair intersects anymore.
func (t *Tracker) rebuild() {
	t.cached = t.cached[:0]
	for _, state := range t.states {
		if state.dirty && state.boundsValid {
			t.cached = append(t.cached, state.bounds.Expand(t.tuning.Margin))
		}
	}
	for len(t.cached) > t.tuning.MaxDirtyRects && len(t.cached) > 1 {
		if !t.mergeOnePair() {
			break
		}
	}
	t.cacheValid = true
}

// mergeOnePair merges the first intersecting pair found into its
// bounding box, reporting whether a merge happened.
func (t *Tracker) mergeOnePair() bool {
	for i := 0; i < len(t.cached); i++ {
		for j := i + 1; j < len(t.cached); j++ {
			if t.cached[i].Intersects(t.cached[j]) {
				t.cached[i] = t.cached[i].Merge(t.cached[j])
				t.cached[j] = t.cached[len(t.cached)-1]
				t.cached = t.cached[:len(t.cached)-1]
				return true
			}
		}
	}
	return false
}

// DirtyRects returns the merged dirty rectangle list. The result is
// memoized: repeated calls with no intervening mutation return an
// equal list without recomputation. Order is unspecified.
func (t *Tracker) DirtyRects() []svgbounds.Rect {
	if !t.cacheValid {
		t.rebuild()
	}
	out := make([]svgbounds.Rect, len(t.cached))
	copy(out, t.cached)
	return out
}

// UnionRect returns the bounding box of all dirty rectangles, empty
// when nothing is dirty.
func (t *Tracker) UnionRect() svgbounds.Rect {
	if !t.cacheValid {
		t.rebuild()
	}
	var union svgbounds.Rect
	for _, r := range t.cached {
		union = union.Merge(r)
	}
	return union
}

// DirtyAreaRatio returns the dirty union's area, clamped to the
// canvas, divided by the canvas area. 0 when nothing is dirty or the
// canvas is degenerate.
func (t *Tracker) DirtyAreaRatio(canvasW, canvasH float64) float64 {
	if canvasW <= 0 || canvasH <= 0 {
		return 0
	}
	union := t.UnionRect()
	if union.IsEmpty() {
		return 0
	}
	return union.Clamp(canvasW, canvasH).Area() / (canvasW * canvasH)
}

// ShouldFullRedraw decides whether the host should redraw the whole
// canvas instead of the dirty rectangles. The checks run in a fixed
// priority; in particular missing bounds and rectangle-cap overflow
// are decided before the area ratio, since a tight cluster can
// overflow the cap while covering little area. Full redraw when:
//
//   - no targets are tracked, or none is dirty (callers may then skip
//     the frame entirely);
//   - any dirty target has no valid bounds;
//   - the rectangle list still exceeds the cap after merging;
//   - the dirty area covers more than Tuning.FullRedrawThreshold of
//     the canvas;
//   - exactly one target is tracked, it is dirty, and it covers more
//     than Tuning.SingleTargetThreshold of the canvas.
func (t *Tracker) ShouldFullRedraw(canvasW, canvasH float64) bool {
	if len(t.states) == 0 {
		return true
	}

	dirtyCount := 0
	missingBounds := false
	for _, state := range t.states {
		if state.dirty {
			dirtyCount++
			if !state.boundsValid {
				missingBounds = true
			}
		}
	}
	if dirtyCount == 0 {
		return true
	}
	if missingBounds {
		return true
	}

	if !t.cacheValid {
		t.rebuild()
	}
	if len(t.cached) > t.tuning.MaxDirtyRects {
		return true
	}

	ratio := t.DirtyAreaRatio(canvasW, canvasH)
	if ratio > t.tuning.FullRedrawThreshold {
		return true
	}

	// A lone full-canvas animation gains nothing from clipping.
	if len(t.states) == 1 && dirtyCount == 1 && ratio > t.tuning.SingleTargetThreshold {
		return true
	}

	return false
}

// ClearDirtyFlags resets every target's dirty flag after a render.
// Bounds and frame history are kept. Idempotent.
func (t *Tracker) ClearDirtyFlags() {
	for _, state := range t.states {
		state.dirty = false
	}
	t.cacheValid = false
}

// DirtyCount returns the number of currently dirty targets.
func (t *Tracker) DirtyCount() int {
	count := 0
	for _, state := range t.states {
		if state.dirty {
			count++
		}
	}
	return count
}

// TargetCount returns the number of tracked targets.
func (t *Tracker) TargetCount() int { return len(t.states) }

// Enabled reports whether at least one target is tracked.
func (t *Tracker) Enabled() bool { return len(t.states) > 0 }

// DirtyClipRects returns the dirty rectangles clamped to the canvas
// and converted to 26.6 fixed point, the clip format of fixed-point
// rasterizer pipelines. Rectangles entirely off canvas are omitted.
func (t *Tracker) DirtyClipRects(canvasW, canvasH float64) []fixed.Rectangle26_6 {
	rects := t.DirtyRects()
	clips := make([]fixed.Rectangle26_6, 0, len(rects))
	for _, r := range rects {
		clamped := r.Clamp(canvasW, canvasH)
		if clamped.IsEmpty() {
			continue
		}
		clips = append(clips, clamped.Fixed())
	}
	return clips
}
