// Package scheduler implements frame pacing: a drift-correcting deadline
// tracker the caller consults between render calls. It never sleeps
// itself — the actual wait is always the caller's responsibility, so this
// stays usable from a bare loop, a goroutine, or a test.
//
// Grounded on original_source/src/frame_scheduler.rs.
package scheduler

import "time"

// DefaultFPS is the reference design's target frame rate.
const DefaultFPS = 90

// DefaultFrameDuration is the frame period implied by DefaultFPS.
const DefaultFrameDuration = time.Second / DefaultFPS

// maxDriftFactor bounds how far behind schedule the scheduler tolerates
// before resynchronizing to now instead of trying to catch up.
const maxDriftFactor = 2

// overdueToleranceFactor sizes the slack window before a late frame is
// flagged overdue, as a fraction of one period. No concrete tolerance is
// given anywhere in the reference design, only the shape of the check — see
// DESIGN.md's open questions. A quarter period absorbs ordinary scheduling
// jitter (OS wakeup slop, GC pauses) without ever letting a frame that's a
// full period or more behind go unflagged.
const overdueToleranceFactor = 4

// FrameResult reports how long the caller should wait before the next
// frame, and whether this frame was already overdue when requested.
type FrameResult struct {
	Sleep   time.Duration
	Overdue bool
}

// FrameScheduler tracks the next frame deadline for a fixed period.
type FrameScheduler struct {
	period       time.Duration
	nextDeadline time.Duration
}

// New constructs a FrameScheduler targeting period, with the first
// deadline at startTime.
func New(period time.Duration, startTime time.Duration) *FrameScheduler {
	if period <= 0 {
		period = DefaultFrameDuration
	}
	return &FrameScheduler{period: period, nextDeadline: startTime}
}

// Next reports whether a frame is due at now. Before the deadline it
// returns the time left to wait and leaves the deadline unchanged. At or
// after the deadline it returns a zero Sleep and advances the deadline by
// one period. If now has drifted more than maxDriftFactor periods past the
// deadline — e.g. after a long stall — the schedule resynchronizes to now
// plus one period instead of bursting through the backlog.
func (f *FrameScheduler) Next(now time.Duration) FrameResult {
	if now < f.nextDeadline {
		return FrameResult{Sleep: f.nextDeadline - now}
	}

	maxDrift := maxDriftFactor * f.period
	tolerance := f.period / overdueToleranceFactor
	overdue := now > f.nextDeadline+tolerance

	if now > f.nextDeadline+maxDrift {
		f.nextDeadline = now
	}

	f.nextDeadline += f.period

	return FrameResult{Overdue: overdue}
}
