package progress

import (
	"math/rand/v2"
	"time"
)

// DateLayout is the calendar-date format used as the history key.
const DateLayout = "2006-01-02"

// Env supplies the two impure inputs reducers need. Tests pin both.
type Env struct {
	// Now returns the current time; its location defines "today".
	Now func() time.Time

	// Rand returns a uniform value in [0, 1).
	Rand func() float64
}

// DefaultEnv uses the local wall clock and the global random source.
func DefaultEnv() Env {
	return Env{Now: time.Now, Rand: rand.Float64}
}

// Today returns the calendar date of env.Now in its own location.
func (e Env) Today() string {
	return DateOf(e.now())
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e Env) rand() float64 {
	if e.Rand == nil {
		return rand.Float64()
	}
	return e.Rand()
}

// DateOf formats t as a history date in t's location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// Time returns the current instant according to env.
func (e Env) Time() time.Time {
	return e.now()
}
