package simulator

import (
	"math"
	"time"
)

// motion is a constant-rate move between two values. A zero motion is at
// rest at 0.
type motion struct {
	from  float64
	to    float64
	start time.Time
	rate  float64 // units per second
	wrap  float64 // modulus for angular axes, 0 for linear
}

// rest returns a motion that is already at v.
func rest(v, wrap float64) motion {
	return motion{from: v, to: v, wrap: wrap}
}

// moveTo starts a move from the current position to target.
func (m motion) moveTo(now time.Time, target, rate float64) motion {
	pos, _ := m.at(now)
	return motion{from: pos, to: target, start: now, rate: rate, wrap: m.wrap}
}

// stop freezes the motion at its current position.
func (m motion) stop(now time.Time) motion {
	pos, _ := m.at(now)
	return rest(pos, m.wrap)
}

// at returns the position at now and whether the move is still running.
func (m motion) at(now time.Time) (float64, bool) {
	delta := m.to - m.from
	if m.wrap > 0 {
		delta = math.Remainder(delta, m.wrap)
	}
	if delta == 0 || m.rate <= 0 {
		return m.norm(m.to), false
	}
	travelled := m.rate * now.Sub(m.start).Seconds()
	if travelled >= math.Abs(delta) {
		return m.norm(m.to), false
	}
	return m.norm(m.from + math.Copysign(travelled, delta)), true
}

func (m motion) norm(v float64) float64 {
	if m.wrap <= 0 {
		return v
	}
	v = math.Mod(v, m.wrap)
	if v < 0 {
		v += m.wrap
	}
	return v
}

// timer is an operation that completes at a fixed time.
type timer struct {
	done time.Time
}

func after(now time.Time, d time.Duration) timer { return timer{done: now.Add(d)} }

func (t timer) running(now time.Time) bool { return now.Before(t.done) }

// seconds converts a duration in seconds, scaled by speed, to a time.Duration.
func seconds(s, speed float64) time.Duration {
	return time.Duration(s / speed * float64(time.Second))
}
