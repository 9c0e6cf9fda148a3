// Package trace defines the run trace artifact shared by the engine and
// the control model, its canonical CSV wire form, and the SHA-256
// fingerprint derived from those bytes.
package trace

// Sample is one trace row: time, global signal, coherence, and the
// spiral regularization signal.
type Sample struct {
	T float64 `json:"t"`
	S float64 `json:"S"`
	C float64 `json:"C"`
	R float64 `json:"r"`
}

type Trace []Sample

func (tr Trace) Times() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.T
	}
	return out
}

func (tr Trace) Signal() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.S
	}
	return out
}

func (tr Trace) Coherence() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.C
	}
	return out
}

func (tr Trace) Ratio() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.R
	}
	return out
}

// Tail returns the final fraction of the trace, at least one sample for
// a non-empty trace.
func (tr Trace) Tail(frac float64) Trace {
	if len(tr) == 0 {
		return tr
	}
	n := int(float64(len(tr)) * frac)
	if n < 1 {
		n = 1
	}
	if n > len(tr) {
		n = len(tr)
	}
	return tr[len(tr)-n:]
}
