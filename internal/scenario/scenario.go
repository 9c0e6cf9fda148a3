// Package scenario shapes the external inputs of a run: the driving
// input signal, the shock schedule, and the latent streams consumed by
// the extended signal form.
package scenario

import "fmt"

const (
	Constant = "constant"
	Step     = "step"
	Ramp     = "ramp"
)

// Source produces the external input I(t) shared by all strates.
type Source interface {
	Name() string
	At(t float64) float64
}

type ConstantSource struct {
	Value float64
}

func (s *ConstantSource) Name() string { return Constant }

func (s *ConstantSource) At(t float64) float64 { return s.Value }

type StepSource struct {
	Low      float64
	High     float64
	SwitchAt float64
}

func (s *StepSource) Name() string { return Step }

func (s *StepSource) At(t float64) float64 {
	if t < s.SwitchAt {
		return s.Low
	}
	return s.High
}

// RampSource climbs linearly from 0 to 1 over the run duration.
type RampSource struct {
	Duration float64
}

func (s *RampSource) Name() string { return Ramp }

func (s *RampSource) At(t float64) float64 {
	if s.Duration <= 0 {
		return 0
	}
	v := t / s.Duration
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// New builds a source by name. A step with no switch time defaults to a
// quarter of the duration.
func New(name string, value, high, at, duration float64) (Source, error) {
	switch name {
	case Constant:
		return &ConstantSource{Value: value}, nil
	case Step:
		if at <= 0 {
			at = duration / 4
		}
		return &StepSource{Low: value, High: high, SwitchAt: at}, nil
	case Ramp:
		return &RampSource{Duration: duration}, nil
	default:
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
}

func Known(name string) bool {
	switch name {
	case Constant, Step, Ramp:
		return true
	}
	return false
}

func Names() []string {
	return []string{Constant, Ramp, Step}
}
