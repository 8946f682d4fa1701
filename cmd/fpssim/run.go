package main

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/milk9111/firstperson/controller"
	"github.com/milk9111/firstperson/input"
	"github.com/milk9111/firstperson/prefabs"
	"github.com/milk9111/firstperson/sim"
	"github.com/milk9111/firstperson/telemetry"
	"github.com/rs/zerolog"
)

type runOptions struct {
	Level   string
	Script  string
	Frames  int
	DT      float64
	Fixed   float64
	Trace   string
	Respawn bool
	Log     zerolog.Logger
}

// summary is what a run reports when it finishes.
type summary struct {
	Level     string
	Script    string
	Frames    int
	Time      float64
	Distance  float64
	MaxHeight float64
	Health    float64
	Deaths    int
	Final     controller.State
	Events    map[string]int
	TraceRows int
}

func simulate(opts runOptions) (*summary, error) {
	if opts.Frames <= 0 {
		return nil, fmt.Errorf("fpssim: frames must be positive, got %d", opts.Frames)
	}
	if opts.DT <= 0 || math.IsNaN(opts.DT) {
		return nil, fmt.Errorf("fpssim: dt must be positive, got %v", opts.DT)
	}
	src, err := prefabs.LoadScript(opts.Script)
	if err != nil {
		return nil, fmt.Errorf("fpssim: script %s: %w", opts.Script, err)
	}
	script, err := input.NewScript(opts.Script, src)
	if err != nil {
		return nil, err
	}
	s, err := sim.New(sim.Options{
		Level:     opts.Level,
		Input:     script,
		FixedStep: opts.Fixed,
		Log:       opts.Log,
	})
	if err != nil {
		return nil, err
	}
	trace, err := telemetry.Create(opts.Trace)
	if err != nil {
		return nil, err
	}
	defer trace.Close()

	out := &summary{
		Level:  s.Level.Name,
		Script: script.Name(),
		Events: make(map[string]int),
	}
	start := s.Controller.State().Position
	out.MaxHeight = start.Y
	prev := start

	for frame := 1; frame <= opts.Frames; frame++ {
		if err := script.Step(frame, s.Controller.State().Time, s.Observation()); err != nil {
			return nil, err
		}
		events := s.Step(opts.DT)
		st := s.Controller.State()
		for _, e := range events {
			out.Events[e.Kind.String()]++
		}
		if err := trace.Write(telemetry.NewFrameRecord(frame, st, s.Health.Current, events)); err != nil {
			return nil, err
		}
		out.Frames = frame
		out.Distance += math.Hypot(st.Position.X-prev.X, st.Position.Z-prev.Z)
		out.MaxHeight = math.Max(out.MaxHeight, st.Position.Y)
		prev = st.Position

		if st.Dead {
			if !opts.Respawn {
				break
			}
			s.Respawn()
			prev = s.Controller.State().Position
		}
	}

	out.Final = s.Controller.State()
	out.Time = out.Final.Time
	out.Health = s.Health.Current
	out.Deaths = s.Deaths()
	out.TraceRows = trace.Rows()
	opts.Log.Info().
		Str("level", out.Level).
		Str("script", out.Script).
		Int("frames", out.Frames).
		Int("deaths", out.Deaths).
		Msg("run finished")
	return out, nil
}

func (s *summary) Write(w io.Writer) {
	fmt.Fprintf(w, "level     %s\n", s.Level)
	fmt.Fprintf(w, "script    %s\n", s.Script)
	fmt.Fprintf(w, "frames    %d (%.2fs)\n", s.Frames, s.Time)
	fmt.Fprintf(w, "mode      %s\n", s.Final.Mode)
	fmt.Fprintf(w, "position  %.2f %.2f %.2f\n", s.Final.Position.X, s.Final.Position.Y, s.Final.Position.Z)
	fmt.Fprintf(w, "distance  %.2f\n", s.Distance)
	fmt.Fprintf(w, "apex      %.2f\n", s.MaxHeight)
	fmt.Fprintf(w, "health    %.1f\n", s.Health)
	fmt.Fprintf(w, "deaths    %d\n", s.Deaths)
	kinds := make([]string, 0, len(s.Events))
	for k := range s.Events {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "event     %-14s %d\n", k, s.Events[k])
	}
	if s.TraceRows > 0 {
		fmt.Fprintf(w, "trace     %d rows\n", s.TraceRows)
	}
}
