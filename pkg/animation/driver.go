package animation

import "time"

// Driver advances animation playbacks from a frame loop. It is confined to
// the thread that owns the surface tree: Play, Step, and Cancel must all be
// called from there.
//
// Completion is always reported from Step, never from Play, so a
// zero-duration animation still delivers OnStop on the next frame.
type Driver struct {
	playbacks []*Playback
}

// NewDriver creates an empty driver.
func NewDriver() *Driver {
	return &Driver{}
}

// Playback is one running animation. It holds its own references to the
// animation's surfaces, so callers may detach or re-parent surfaces while
// playback is in flight; frames simply keep being applied to the detached
// surfaces until completion or cancellation.
type Playback struct {
	animation *Animation
	start     time.Time
	done      bool
	cancelled bool
}

// Animation returns the animation being played.
func (p *Playback) Animation() *Animation { return p.animation }

// Done reports whether playback has ended, by completion or cancellation.
func (p *Playback) Done() bool { return p.done }

// Cancel stops playback where it is. Surfaces keep their current state and
// OnStop fires with finished=false. No-op if playback already ended.
func (p *Playback) Cancel() {
	if p.done {
		return
	}
	p.done = true
	p.cancelled = true
	if p.animation.OnStop != nil {
		p.animation.OnStop(false)
	}
}

// Play starts the animation at the current clock time and returns its
// playback handle. OnStart fires synchronously.
func (d *Driver) Play(a *Animation) *Playback {
	if a == nil {
		panic("animation: nil animation")
	}
	p := &Playback{animation: a, start: Now()}
	d.playbacks = append(d.playbacks, p)
	if a.OnStart != nil {
		a.OnStart()
	}
	return p
}

// Active returns the number of playbacks still in flight.
func (d *Driver) Active() int {
	n := 0
	for _, p := range d.playbacks {
		if !p.done {
			n++
		}
	}
	return n
}

// Step advances all playbacks to the current clock time. Completed
// playbacks apply their exact end state, fire OnStop(true), and are
// removed. Callbacks may start new playbacks; those begin advancing on the
// following Step.
func (d *Driver) Step() {
	if len(d.playbacks) == 0 {
		return
	}
	now := Now()
	active := d.playbacks
	d.playbacks = nil
	var survivors []*Playback
	for _, p := range active {
		if p.done {
			continue
		}
		if p.advance(now) {
			continue
		}
		survivors = append(survivors, p)
	}
	// Playbacks started during callbacks landed in d.playbacks.
	d.playbacks = append(survivors, d.playbacks...)
}

// advance applies the playback's state at the given time. Returns true when
// the playback finished.
func (p *Playback) advance(now time.Time) bool {
	elapsed := now.Sub(p.start)
	for _, step := range p.animation.steps {
		if elapsed >= step.Duration {
			applyTracks(step.Tracks, step.Curve, 1)
			elapsed -= step.Duration
			continue
		}
		t := float64(elapsed) / float64(step.Duration)
		applyTracks(step.Tracks, step.Curve, t)
		return false
	}
	p.done = true
	if p.animation.OnStop != nil {
		p.animation.OnStop(true)
	}
	return true
}
