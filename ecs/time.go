package ecs

// Time is the frame clock. Elapsed and Delta are in seconds and only change
// when the host advances the clock, once per tick.
type Time struct {
	elapsed float64
	delta   float64
	frames  uint64
}

// Advance moves the clock forward by dt seconds. Negative deltas are treated
// as zero.
func (t *Time) Advance(dt float64) {
	if t == nil {
		return
	}
	if dt < 0 || dt != dt {
		dt = 0
	}
	t.delta = dt
	t.elapsed += dt
	t.frames++
}

// Elapsed returns the seconds since the world started.
func (t *Time) Elapsed() float64 {
	if t == nil {
		return 0
	}
	return t.elapsed
}

// Delta returns the duration of the last tick in seconds.
func (t *Time) Delta() float64 {
	if t == nil {
		return 0
	}
	return t.delta
}

// Frames returns how many times the clock has been advanced.
func (t *Time) Frames() uint64 {
	if t == nil {
		return 0
	}
	return t.frames
}
