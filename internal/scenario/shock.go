package scenario

import "math"

// Shock is a one-off additive input perturbation. Strate -1 hits every
// strate.
type Shock struct {
	Time      float64
	Magnitude float64
	Strate    int
}

// Schedule resolves shocks onto the step grid. Each shock fires on the
// single step whose sample time is nearest its configured time.
type Schedule struct {
	shocks []Shock
	dt     float64
}

func NewSchedule(shocks []Shock, dt float64) *Schedule {
	return &Schedule{shocks: shocks, dt: dt}
}

// Bump returns the additive input term for strate n at step index i.
func (s *Schedule) Bump(i, n int) float64 {
	total := 0.0
	for _, sh := range s.shocks {
		if sh.Strate != -1 && sh.Strate != n {
			continue
		}
		if int(math.Round(sh.Time/s.dt)) == i {
			total += sh.Magnitude
		}
	}
	return total
}

func (s *Schedule) Empty() bool {
	return len(s.shocks) == 0
}

// First returns the earliest shock time.
func (s *Schedule) First() (float64, bool) {
	if len(s.shocks) == 0 {
		return 0, false
	}
	first := s.shocks[0].Time
	for _, sh := range s.shocks[1:] {
		if sh.Time < first {
			first = sh.Time
		}
	}
	return first, true
}
