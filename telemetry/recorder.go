// Package telemetry writes per-frame controller traces as CSV.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/milk9111/firstperson/controller"
)

// FrameRecord is one row of a trace.
type FrameRecord struct {
	Frame     int     `csv:"frame"`
	Time      float64 `csv:"time"`
	Mode      string  `csv:"mode"`
	X         float64 `csv:"x"`
	Y         float64 `csv:"y"`
	Z         float64 `csv:"z"`
	VX        float64 `csv:"vx"`
	VY        float64 `csv:"vy"`
	VZ        float64 `csv:"vz"`
	Speed     float64 `csv:"speed"`
	Yaw       float64 `csv:"yaw"`
	Pitch     float64 `csv:"pitch"`
	Grounded  bool    `csv:"grounded"`
	Crouching bool    `csv:"crouching"`
	Height    float64 `csv:"height"`
	Grappling bool    `csv:"grappling"`
	Health    float64 `csv:"health"`
	Events    string  `csv:"events"`
}

// NewFrameRecord flattens a controller state and the events of its frame.
func NewFrameRecord(frame int, st controller.State, health float64, events []controller.Event) FrameRecord {
	kinds := make([]string, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind.String())
	}
	return FrameRecord{
		Frame:     frame,
		Time:      st.Time,
		Mode:      st.Mode.String(),
		X:         st.Position.X,
		Y:         st.Position.Y,
		Z:         st.Position.Z,
		VX:        st.Velocity.X,
		VY:        st.Velocity.Y,
		VZ:        st.Velocity.Z,
		Speed:     st.MeasuredSpeed,
		Yaw:       st.Yaw,
		Pitch:     st.Pitch,
		Grounded:  st.Grounded,
		Crouching: st.Crouching,
		Height:    st.Height,
		Grappling: st.Grappling,
		Health:    health,
		Events:    strings.Join(kinds, ";"),
	}
}

// Recorder appends FrameRecords to a CSV stream. A nil Recorder discards
// everything.
type Recorder struct {
	out           io.Writer
	closer        io.Closer
	headerWritten bool
	rows          int
}

func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

// Create opens path for writing. It returns nil when path is empty.
func Create(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("telemetry: creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating %s: %w", path, err)
	}
	return &Recorder{out: f, closer: f}, nil
}

// Write appends one row.
func (r *Recorder) Write(rec FrameRecord) error {
	if r == nil {
		return nil
	}
	records := []FrameRecord{rec}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.out); err != nil {
			return fmt.Errorf("telemetry: writing frame %d: %w", rec.Frame, err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
			return fmt.Errorf("telemetry: writing frame %d: %w", rec.Frame, err)
		}
	}
	r.rows++
	return nil
}

// Rows is the number of rows written.
func (r *Recorder) Rows() int {
	if r == nil {
		return 0
	}
	return r.rows
}

func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// ReadFrames parses a trace written by a Recorder.
func ReadFrames(in io.Reader) ([]FrameRecord, error) {
	var out []FrameRecord
	if err := gocsv.Unmarshal(in, &out); err != nil {
		return nil, fmt.Errorf("telemetry: reading frames: %w", err)
	}
	return out, nil
}
