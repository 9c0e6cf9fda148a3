package trace

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV emits the canonical wire form: a t,S,C,r header and rows
// formatted to six decimal places. These exact bytes feed the
// fingerprint, so the formatting is part of the contract.
func (tr Trace) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "S", "C", "r"}); err != nil {
		return err
	}
	for _, s := range tr {
		rec := []string{
			strconv.FormatFloat(s.T, 'f', 6, 64),
			strconv.FormatFloat(s.S, 'f', 6, 64),
			strconv.FormatFloat(s.C, 'f', 6, 64),
			strconv.FormatFloat(s.R, 'f', 6, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVBytes renders the canonical CSV into memory.
func (tr Trace) CSVBytes() []byte {
	var buf bytes.Buffer
	// Writing to a bytes.Buffer cannot fail.
	_ = tr.WriteCSV(&buf)
	return buf.Bytes()
}

// Hash returns the hex SHA-256 of the canonical CSV bytes.
func (tr Trace) Hash() string {
	sum := sha256.Sum256(tr.CSVBytes())
	return hex.EncodeToString(sum[:])
}

// ReadCSV parses a trace from its CSV form.
func ReadCSV(r io.Reader) (Trace, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != 4 || header[0] != "t" || header[1] != "S" || header[2] != "C" || header[3] != "r" {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	var tr Trace
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) != 4 {
			return nil, fmt.Errorf("row %d: expected 4 fields, got %d", len(tr)+1, len(rec))
		}
		var s Sample
		fields := []*float64{&s.T, &s.S, &s.C, &s.R}
		for i, dst := range fields {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d field %d: %w", len(tr)+1, i, err)
			}
			*dst = v
		}
		tr = append(tr, s)
	}
	return tr, nil
}

// columns is the columnar JSON layout the dashboard consumes.
type columns struct {
	T []float64 `json:"t"`
	S []float64 `json:"S"`
	C []float64 `json:"C"`
	R []float64 `json:"r"`
}

// EncodeJSON writes the trace in columnar JSON with two-space indent.
func (tr Trace) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(columns{
		T: tr.Times(),
		S: tr.Signal(),
		C: tr.Coherence(),
		R: tr.Ratio(),
	})
}
