package cli

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Report is the envelope around every command result.
type Report struct {
	RunID   string    `json:"run_id" yaml:"run_id"`
	Command string    `json:"command" yaml:"command"`
	Digest  string    `json:"input_digest" yaml:"input_digest"`
	Created time.Time `json:"created" yaml:"created"`
	Result  any       `json:"result" yaml:"result"`
}

func newReport(command string, input []float64, result any) *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Command: command,
		Digest:  digest(input),
		Created: time.Now().UTC(),
		Result:  result,
	}
}

// digest hashes the numeric input so runs over the same data can be
// matched regardless of file name or formatting.
func digest(values []float64) string {
	h := xxhash.New()
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func writeReport(w io.Writer, format string, r *Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

// number is a float64 that encodes NaN and ±Inf as JSON null.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (n number) MarshalYAML() (any, error) {
	return float64(n), nil
}

func numbers(values []float64) []number {
	if values == nil {
		return nil
	}
	out := make([]number, len(values))
	for i, v := range values {
		out[i] = number(v)
	}
	return out
}
