package svgplayback

import "math"

// notification is a queued callback invocation. Callbacks are never
// run while the timeline is mid-mutation: mutating methods queue and
// flush on the way out, so a callback observes consistent state.
type notification struct {
	kind  notificationKind
	state State
	loops int
}

type notificationKind uint8

const (
	notifyState notificationKind = iota
	notifyLoop
	notifyEnd
)

// SetStateChangeFunc installs the callback fired after every playback
// state transition. Pass nil to remove it. Callbacks run after the
// mutation completes, so reads from inside one observe the updated
// timeline; a callback must not mutate the Timeline.
func (tl *Timeline) SetStateChangeFunc(fn func(State)) { tl.onStateChange = fn }

// SetLoopFunc installs the callback fired after each completed loop,
// with the completed loop count. Pass nil to remove it.
func (tl *Timeline) SetLoopFunc(fn func(loops int)) { tl.onLoop = fn }

// SetEndFunc installs the callback fired when a non-looping timeline
// reaches its end. Pass nil to remove it.
func (tl *Timeline) SetEndFunc(fn func()) { tl.onEnd = fn }

func (tl *Timeline) queueState(s State) {
	tl.pending = append(tl.pending, notification{kind: notifyState, state: s})
}

func (tl *Timeline) queueLoop() {
	tl.pending = append(tl.pending, notification{kind: notifyLoop, loops: tl.completedLoops})
}

func (tl *Timeline) queueEnd() {
	tl.pending = append(tl.pending, notification{kind: notifyEnd})
}

// flush delivers queued notifications in order. Called at the end of
// every exported mutating method.
func (tl *Timeline) flush() {
	if len(tl.pending) == 0 {
		return
	}
	queued := tl.pending
	tl.pending = nil
	for _, n := range queued {
		switch n.kind {
		case notifyState:
			if tl.onStateChange != nil {
				tl.onStateChange(n.state)
			}
		case notifyLoop:
			if tl.onLoop != nil {
				tl.onLoop(n.loops)
			}
		case notifyEnd:
			if tl.onEnd != nil {
				tl.onEnd()
			}
		}
	}
}

// Play starts (or resumes) playback from the current position.
// No-op, with no notification, when already playing.
func (tl *Timeline) Play() {
	tl.play()
	tl.flush()
}

func (tl *Timeline) play() {
	if tl.state == Playing {
		return
	}
	tl.state = Playing
	tl.queueState(Playing)
}

// Pause freezes playback at the current position.
// No-op, with no notification, when already paused.
func (tl *Timeline) Pause() {
	tl.pause()
	tl.flush()
}

func (tl *Timeline) pause() {
	if tl.state == Paused {
		return
	}
	tl.state = Paused
	tl.queueState(Paused)
}

// Stop halts playback and rewinds: time 0, loop count 0, forward
// direction. No-op, with no notification, when already stopped.
func (tl *Timeline) Stop() {
	if tl.state == Stopped {
		return
	}
	tl.state = Stopped
	tl.currentTime = 0
	tl.completedLoops = 0
	tl.playingForward = true
	tl.resyncFrames()
	tl.queueState(Stopped)
	tl.flush()
}

// TogglePlayback pauses when playing, plays otherwise.
func (tl *Timeline) TogglePlayback() {
	if tl.state == Playing {
		tl.Pause()
	} else {
		tl.Play()
	}
}

// State returns the current playback state.
func (tl *Timeline) State() State { return tl.state }

// IsPlaying reports whether the timeline is advancing.
func (tl *Timeline) IsPlaying() bool { return tl.state == Playing }

// IsPaused reports whether the timeline is frozen.
func (tl *Timeline) IsPaused() bool { return tl.state == Paused }

// IsStopped reports whether the timeline is stopped at 0.
func (tl *Timeline) IsStopped() bool { return tl.state == Stopped }

// SetRepeatMode selects the boundary behavior. The repeat count is
// left untouched; it only applies under Count.
func (tl *Timeline) SetRepeatMode(mode RepeatMode) { tl.repeatMode = mode }

// RepeatMode returns the current repeat mode.
func (tl *Timeline) RepeatMode() RepeatMode { return tl.repeatMode }

// SetRepeatCount switches to Count mode, repeating count times.
// Counts below 1 are corrected to 1.
func (tl *Timeline) SetRepeatCount(count int) {
	if count < 1 {
		count = 1
	}
	tl.repeatCount = count
	tl.repeatMode = Count
}

// RepeatCount returns the configured repeat count (>= 1).
func (tl *Timeline) RepeatCount() int { return tl.repeatCount }

// CompletedLoops returns how many boundary wraps have happened since
// the last Stop or Load.
func (tl *Timeline) CompletedLoops() int { return tl.completedLoops }

// IsPlayingForward reports the current direction; false during the
// reverse phase of a Reverse (ping-pong) cycle.
func (tl *Timeline) IsPlayingForward() bool { return tl.playingForward }

// SetRate sets the playback rate multiplier. The sign selects the
// direction; the magnitude is clamped into [0.1, 10] so the timeline
// can never freeze on a zero rate. NaN is corrected to 1.
func (tl *Timeline) SetRate(rate float64) {
	if math.IsNaN(rate) {
		rate = 1
	}
	sign := 1.0
	if rate < 0 {
		sign = -1
	}
	tl.rate = sign * clampFloat(math.Abs(rate), minRate, maxRate)
}

// Rate returns the signed playback rate.
func (tl *Timeline) Rate() float64 { return tl.rate }

// SeekTo moves the cursor to an absolute time, clamped into
// [0, Duration]. Seeks assign directly: they trigger no loop or end
// notification and realign the frame bookkeeping immediately.
// A NaN time is ignored.
func (tl *Timeline) SeekTo(timeSeconds float64) {
	if math.IsNaN(timeSeconds) {
		return
	}
	tl.currentTime = clampFloat(timeSeconds, 0, tl.duration)
	tl.resyncFrames()
}

// SeekToFrame moves the cursor to the start of the given frame,
// clamped into [0, TotalFrames-1].
func (tl *Timeline) SeekToFrame(frame int) {
	if tl.totalFrames <= 0 {
		return
	}
	frame = clampInt(frame, 0, tl.totalFrames-1)
	tl.currentTime = tl.TimeForFrame(frame)
	tl.resyncFrames()
}

// SeekToProgress moves the cursor to a fraction of the duration,
// clamped into [0, 1].
func (tl *Timeline) SeekToProgress(progress float64) {
	if math.IsNaN(progress) {
		return
	}
	tl.currentTime = clampFloat(progress, 0, 1) * tl.duration
	tl.resyncFrames()
}

// SeekToStart rewinds the cursor to time 0.
func (tl *Timeline) SeekToStart() { tl.SeekTo(0) }

// SeekToEnd moves the cursor to the duration.
func (tl *Timeline) SeekToEnd() { tl.SeekTo(tl.duration) }

// SeekForwardByTime seeks seconds forward of the current position.
func (tl *Timeline) SeekForwardByTime(seconds float64) { tl.SeekTo(tl.currentTime + seconds) }

// SeekBackwardByTime seeks seconds backward of the current position.
func (tl *Timeline) SeekBackwardByTime(seconds float64) { tl.SeekTo(tl.currentTime - seconds) }

// SeekForwardByProgress seeks forward by a fraction of the duration.
func (tl *Timeline) SeekForwardByProgress(fraction float64) {
	tl.SeekTo(tl.currentTime + fraction*tl.duration)
}

// SeekBackwardByProgress seeks backward by a fraction of the duration.
func (tl *Timeline) SeekBackwardByProgress(fraction float64) {
	tl.SeekTo(tl.currentTime - fraction*tl.duration)
}

// StepForward pauses and advances by exactly one frame.
func (tl *Timeline) StepForward() { tl.StepByFrames(1) }

// StepBackward pauses and rewinds by exactly one frame.
func (tl *Timeline) StepBackward() { tl.StepByFrames(-1) }

// StepByFrames pauses playback, then seeks frames away from the
// current frame, clamped to the valid range.
func (tl *Timeline) StepByFrames(frames int) {
	if tl.state == Playing {
		tl.pause()
	}
	tl.SeekToFrame(tl.CurrentFrame() + frames)
	tl.flush()
}

// BeginScrubbing enters scrub mode: the pre-scrub state is saved and
// playback is forced to Paused. No-op when already scrubbing.
func (tl *Timeline) BeginScrubbing() {
	if tl.scrubbing {
		return
	}
	tl.scrubbing = true
	tl.stateBeforeScrub = tl.state
	tl.pause()
	tl.flush()
}

// ScrubToProgress seeks while scrubbing, silently: no state change is
// reported. No-op unless scrubbing is active.
func (tl *Timeline) ScrubToProgress(progress float64) {
	if !tl.scrubbing {
		return
	}
	tl.SeekToProgress(progress)
}

// EndScrubbing leaves scrub mode; with resume, playback restarts if it
// was playing when BeginScrubbing was called.
func (tl *Timeline) EndScrubbing(resume bool) {
	if !tl.scrubbing {
		return
	}
	tl.scrubbing = false
	if resume && tl.stateBeforeScrub == Playing {
		tl.play()
	}
	tl.flush()
}

// IsScrubbing reports whether scrub mode is active.
func (tl *Timeline) IsScrubbing() bool { return tl.scrubbing }
