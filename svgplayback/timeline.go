// Provides frame-accurate playback control for discrete timed
// attribute animations (see svgplayer/svgsmil). The Timeline advances a
// time cursor under a small state machine, applies repeat/rate/scrub
// semantics and reports which animation targets changed frame, so a
// host renderer can redraw only what moved.
//
// A Timeline is meant for exclusive use by one render/update goroutine:
// no method blocks and none is safe for concurrent use. Notification
// callbacks are queued during a mutating call and flushed just before
// it returns, so a callback always observes fully updated state; a
// callback may read from the Timeline but must not mutate it.
package svgplayback

import (
	"fmt"
	"math"
	"time"

	"github.com/benoitkugler/svgplayer/svgsmil"
)

// State is the playback position of the timeline state machine.
type State uint8

const (
	Stopped State = iota // time at 0, not advancing
	Playing              // time advancing (backwards when the rate is negative)
	Paused               // time frozen at the current position
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "unknown"
}

// RepeatMode selects the behavior at the timeline boundaries.
type RepeatMode uint8

const (
	None    RepeatMode = iota // play once and pause at the end
	Loop                      // wrap back to the start indefinitely
	Reverse                   // ping-pong: reverse direction at each boundary
	Count                     // like Loop, a fixed number of times
)

// FrameChange reports that one animation moved to a new frame index
// during the last Advance call.
type FrameChange struct {
	TargetID      string
	PreviousFrame int
	CurrentFrame  int
}

// TargetValue is the resolved attribute value for one target at the
// current time, ready for the host's attribute application step.
type TargetValue struct {
	TargetID      string
	AttributeName string
	Value         string
}

// Stats carries playback metrics for display or instrumentation.
type Stats struct {
	AnimationTimeMs  float64 // current position, milliseconds
	CurrentFrame     int
	TotalFrames      int
	UpdatesPerSecond float64 // measured from Advance call spacing
	RenderTimeMs     float64 // set by the host, see SetRenderTime
}

const (
	defaultFrameRate = 30.0
	minRate          = 0.1
	maxRate          = 10.0
)

// Timeline owns a set of parsed animations and a current-time cursor.
// The zero value is not usable; call NewTimeline.
type Timeline struct {
	animations []svgsmil.TimedAnimation
	loaded     bool

	currentTime float64
	duration    float64
	totalFrames int
	frameRate   float64

	state          State
	repeatMode     RepeatMode
	repeatCount    int
	completedLoops int
	rate           float64
	playingForward bool

	scrubbing        bool
	stateBeforeScrub State

	prevFrames  []int // previous frame index per animation, for change detection
	lastChanges []FrameChange

	pending []notification

	onStateChange func(State)
	onLoop        func(int)
	onEnd         func()

	stats       Stats
	lastAdvance time.Time
}

// NewTimeline returns an empty timeline: stopped, looping, rate 1.
func NewTimeline() *Timeline {
	return &Timeline{
		repeatMode:     Loop, // frame-by-frame documents loop by default
		repeatCount:    1,
		rate:           1,
		playingForward: true,
		frameRate:      defaultFrameRate,
	}
}

// Load replaces the animation set and resets playback to Stopped at
// time 0. The duration becomes the longest animation's duration and the
// frame count the largest value count. An empty set is a valid load:
// the document is a single static frame with zero duration.
// Repeat mode, repeat count and rate survive a load; they are host
// configuration, not document state.
func (tl *Timeline) Load(animations []svgsmil.TimedAnimation) {
	tl.Unload()

	tl.animations = append(tl.animations, animations...)
	tl.loaded = true

	maxFrames := 0
	for i := range tl.animations {
		if tl.animations[i].Duration > tl.duration {
			tl.duration = tl.animations[i].Duration
		}
		if n := tl.animations[i].FrameCount(); n > maxFrames {
			maxFrames = n
		}
	}
	tl.totalFrames = 1
	if maxFrames > 0 {
		tl.totalFrames = maxFrames
	}

	if tl.duration > 0 {
		tl.frameRate = clampFloat(float64(tl.totalFrames)/tl.duration, 1, 240)
	} else {
		tl.frameRate = defaultFrameRate
	}

	tl.prevFrames = make([]int, len(tl.animations))
	tl.stats.TotalFrames = tl.totalFrames
}

// Unload drops the animation set and resets all playback, scrub and
// stat fields. No notification is emitted.
func (tl *Timeline) Unload() {
	tl.animations = tl.animations[:0]
	tl.loaded = false

	tl.currentTime = 0
	tl.duration = 0
	tl.totalFrames = 0
	tl.frameRate = defaultFrameRate

	tl.state = Stopped
	tl.completedLoops = 0
	tl.playingForward = true

	tl.scrubbing = false
	tl.stateBeforeScrub = Stopped

	tl.prevFrames = nil
	tl.lastChanges = nil
	tl.ResetStats()
}

// IsLoaded reports whether a document has been loaded.
func (tl *Timeline) IsLoaded() bool { return tl.loaded }

// HasAnimations reports whether the loaded document had any valid
// animation declarations.
func (tl *Timeline) HasAnimations() bool { return len(tl.animations) > 0 }

// Animations returns the loaded animation records, in document order.
// The returned slice must not be mutated.
func (tl *Timeline) Animations() []svgsmil.TimedAnimation { return tl.animations }

// Advance moves the timeline by deltaTime seconds (scaled by the rate
// and the current direction), applies the repeat-mode boundary
// handling, and recomputes every animation's frame index.
// It reports whether at least one animation changed frame; the changes
// themselves are available from FrameChanges. Advance is a no-op
// unless the timeline is Playing and the duration is positive.
func (tl *Timeline) Advance(deltaTime float64) bool {
	if !tl.loaded || tl.duration <= 0 || tl.state != Playing {
		return false
	}

	effective := deltaTime * tl.rate
	if !tl.playingForward {
		effective = -effective
	}
	tl.currentTime += effective

	tl.handleLoopBoundary()

	tl.stats.AnimationTimeMs = tl.currentTime * 1000
	tl.stats.CurrentFrame = tl.CurrentFrame()
	tl.stats.TotalFrames = tl.totalFrames
	now := time.Now()
	if !tl.lastAdvance.IsZero() {
		if elapsed := now.Sub(tl.lastAdvance).Seconds(); elapsed > 0 {
			tl.stats.UpdatesPerSecond = 1 / elapsed
		}
	}
	tl.lastAdvance = now

	changed := tl.recomputeFrames()
	tl.flush()
	return changed
}

// TrackFramesAt rebuilds the frame-change list against an externally
// driven absolute clock, without touching playback state and without
// firing notifications. Hosts that own their own clock use this in
// place of Advance to keep dirty tracking accurate.
func (tl *Timeline) TrackFramesAt(absoluteTime float64) {
	saved := tl.currentTime
	tl.currentTime = absoluteTime
	tl.recomputeFrames()
	tl.currentTime = saved
}

// recomputeFrames refreshes per-animation frame indices at the current
// time and rebuilds the change list. Reports whether any frame moved.
func (tl *Timeline) recomputeFrames() bool {
	tl.lastChanges = tl.lastChanges[:0]
	if len(tl.prevFrames) != len(tl.animations) {
		tl.prevFrames = make([]int, len(tl.animations))
	}
	for i := range tl.animations {
		current := tl.animations[i].FrameIndexAt(tl.currentTime)
		if current != tl.prevFrames[i] {
			tl.lastChanges = append(tl.lastChanges, FrameChange{
				TargetID:      tl.animations[i].TargetID,
				PreviousFrame: tl.prevFrames[i],
				CurrentFrame:  current,
			})
		}
		tl.prevFrames[i] = current
	}
	return len(tl.lastChanges) > 0
}

// resyncFrames realigns the frame bookkeeping after a direct seek, so
// the next Advance does not report the jump itself as frame changes.
func (tl *Timeline) resyncFrames() {
	if len(tl.prevFrames) != len(tl.animations) {
		tl.prevFrames = make([]int, len(tl.animations))
	}
	for i := range tl.animations {
		tl.prevFrames[i] = tl.animations[i].FrameIndexAt(tl.currentTime)
	}
	tl.lastChanges = tl.lastChanges[:0]
}

// handleLoopBoundary folds the (possibly out of range) current time
// back into [0, duration] according to the repeat mode. This is the
// only place where the time cursor may transiently sit outside its
// range. Loop and end notifications are queued once per boundary
// crossing, not once per wrapped period.
func (tl *Timeline) handleLoopBoundary() {
	if tl.duration <= 0 {
		return
	}
	switch tl.repeatMode {
	case None:
		if tl.currentTime >= tl.duration {
			tl.currentTime = tl.duration
			tl.pause()
			tl.queueEnd()
		} else if tl.currentTime < 0 {
			tl.currentTime = 0
			tl.pause()
		}

	case Loop:
		if tl.currentTime >= tl.duration {
			for tl.currentTime >= tl.duration {
				tl.currentTime -= tl.duration
				tl.completedLoops++
			}
			tl.queueLoop()
		} else if tl.currentTime < 0 {
			for tl.currentTime < 0 {
				tl.currentTime += tl.duration
				tl.completedLoops++
			}
			tl.queueLoop()
		}

	case Reverse:
		if tl.currentTime >= tl.duration {
			tl.currentTime = tl.duration - (tl.currentTime - tl.duration)
			tl.playingForward = false
			tl.completedLoops++
			tl.queueLoop()
		} else if tl.currentTime < 0 {
			tl.currentTime = -tl.currentTime
			tl.playingForward = true
			tl.completedLoops++
			tl.queueLoop()
		}

	case Count:
		if tl.currentTime >= tl.duration {
			tl.completedLoops++
			if tl.completedLoops >= tl.repeatCount {
				tl.currentTime = tl.duration
				tl.pause()
				tl.queueEnd()
			} else {
				tl.currentTime = math.Mod(tl.currentTime, tl.duration)
				tl.queueLoop()
			}
		} else if tl.currentTime < 0 {
			tl.completedLoops++
			if tl.completedLoops >= tl.repeatCount {
				tl.currentTime = 0
				tl.pause()
				tl.queueEnd()
			} else {
				tl.currentTime = math.Mod(tl.currentTime, tl.duration) + tl.duration
				tl.queueLoop()
			}
		}
	}
}

// CurrentTime returns the time cursor in seconds, within [0, Duration].
func (tl *Timeline) CurrentTime() float64 { return tl.currentTime }

// Duration returns the timeline duration in seconds: the maximum over
// all loaded animations, 0 for a static document.
func (tl *Timeline) Duration() float64 { return tl.duration }

// Progress returns the position as a fraction of the duration, 0 for a
// zero-duration timeline.
func (tl *Timeline) Progress() float64 {
	if tl.duration <= 0 {
		return 0
	}
	return tl.currentTime / tl.duration
}

// TotalFrames returns the global frame count: the largest value count
// over all animations, at least 1 once loaded.
func (tl *Timeline) TotalFrames() int { return tl.totalFrames }

// FrameRate returns the nominal frames per second of the document
// (TotalFrames/Duration clamped to [1, 240]; 30 when undefined).
func (tl *Timeline) FrameRate() float64 { return tl.frameRate }

// CurrentFrame returns the global 0-based frame index at the current
// time, always 0 for zero-duration timelines.
func (tl *Timeline) CurrentFrame() int { return tl.FrameForTime(tl.currentTime) }

// FrameForTime converts a time in seconds to a clamped frame index.
func (tl *Timeline) FrameForTime(t float64) int {
	if tl.totalFrames <= 0 || tl.duration <= 0 {
		return 0
	}
	frame := int(t / (tl.duration / float64(tl.totalFrames)))
	return clampInt(frame, 0, tl.totalFrames-1)
}

// TimeForFrame converts a frame index to the start time of its slice.
func (tl *Timeline) TimeForFrame(frame int) float64 {
	if tl.totalFrames <= 0 || tl.duration <= 0 {
		return 0
	}
	frame = clampInt(frame, 0, tl.totalFrames-1)
	return float64(frame) * tl.duration / float64(tl.totalFrames)
}

// FrameChanges returns the per-animation frame transitions produced by
// the most recent Advance (or TrackFramesAt) call. Feed each entry to
// the dirty region tracker.
func (tl *Timeline) FrameChanges() []FrameChange {
	out := make([]FrameChange, len(tl.lastChanges))
	copy(out, tl.lastChanges)
	return out
}

// CurrentValues resolves every animation's value at the current time,
// for the host's own attribute application step.
func (tl *Timeline) CurrentValues() []TargetValue {
	values := make([]TargetValue, len(tl.animations))
	for i := range tl.animations {
		values[i] = TargetValue{
			TargetID:      tl.animations[i].TargetID,
			AttributeName: tl.animations[i].AttributeName,
			Value:         tl.animations[i].ValueAt(tl.currentTime),
		}
	}
	return values
}

// Stats returns the current playback metrics.
func (tl *Timeline) Stats() Stats { return tl.stats }

// ResetStats zeroes the metric counters, keeping the frame total.
func (tl *Timeline) ResetStats() {
	tl.stats = Stats{TotalFrames: tl.totalFrames}
	tl.lastAdvance = time.Time{}
}

// SetRenderTime records the host's last render duration in the stats.
func (tl *Timeline) SetRenderTime(ms float64) { tl.stats.RenderTimeMs = ms }

// FormatTime renders seconds as a "MM:SS.mmm" display string.
func FormatTime(seconds float64) string {
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	ms := int((seconds - math.Floor(seconds)) * 1000)
	return fmt.Sprintf("%02d:%02d.%03d", mins, secs, ms)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
