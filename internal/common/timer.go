// Package common provides shared timing utilities.
package common

import (
	"fmt"
	"time"
)

// Timer measures a single named span.
type Timer struct {
	start    time.Time
	name     string
	duration time.Duration
}

// NewNamedTimer starts a timer with the given name.
func NewNamedTimer(name string) *Timer {
	return &Timer{
		name:  name,
		start: time.Now(),
	}
}

// Stop records and returns the elapsed duration.
func (t *Timer) Stop() time.Duration {
	t.duration = time.Since(t.start)
	return t.duration
}

// Duration is only valid after Stop.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Name returns the timer name.
func (t *Timer) Name() string {
	return t.name
}

func (t *Timer) String() string {
	return fmt.Sprintf("%s: %v", t.name, t.duration)
}

// Stage is one completed span of a Stopwatch.
type Stage struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// Stopwatch collects sequential stage timings. It is not safe for concurrent use.
type Stopwatch struct {
	stages []Stage
}

// NewStopwatch returns an empty stopwatch.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{}
}

// Time runs fn as the named stage and records its duration even if fn fails.
func (s *Stopwatch) Time(name string, fn func() error) error {
	t := NewNamedTimer(name)
	err := fn()
	s.stages = append(s.stages, Stage{Name: name, Duration: t.Stop()})
	return err
}

// Stages returns a copy of the recorded stages in order.
func (s *Stopwatch) Stages() []Stage {
	return append([]Stage(nil), s.stages...)
}

// Total sums all stage durations.
func (s *Stopwatch) Total() time.Duration {
	var total time.Duration
	for _, st := range s.stages {
		total += st.Duration
	}
	return total
}
