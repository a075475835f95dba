// Package scenario replays scripted turn sequences through the turn engine
// and checks the resulting escalation levels, crossings and ROE breaches.
package scenario

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/oodakit/internal/audit"
	"github.com/ppiankov/oodakit/internal/game"
)

// epoch anchors generated DTGs so replays are reproducible.
var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Option adjusts a replay.
type Option func(*game.Options)

// WithJournal records every replayed turn to j.
func WithJournal(j *audit.Log) Option {
	return func(o *game.Options) { o.Journal = j }
}

// Run replays every turn of s in a fresh game. A turn the engine rejects
// leaves the game unchanged and later turns still run.
func Run(s *Scenario, opts ...Option) (*RunResult, error) {
	gopts := game.Options{
		Scenario:  s.Title,
		Posture:   s.Posture,
		Monotonic: s.Monotonic,
		Start:     epoch,
	}
	if gopts.Scenario == "" {
		gopts.Scenario = s.Name
	}
	for _, opt := range opts {
		opt(&gopts)
	}

	g, err := game.New(gopts)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Turns),
		Cases: []CaseResult{},
	}

	for i, t := range s.Turns {
		cr := CaseResult{Index: i + 1, Red: t.Red, Blue: t.Blue}

		if t.Posture != nil {
			if err := g.SetPosture(*t.Posture); err != nil {
				cr.Reason = err.Error()
			}
		}

		rec, err := g.Advance(game.TurnInput{
			DTG:             t.DTG,
			RedLabel:        t.Red,
			BlueLabel:       t.Blue,
			Blue:            t.BlueDelta,
			Red:             t.RedDelta,
			EscalationDelta: t.Escalation,
		})
		cr.Expected, cr.Actual, cr.Passed = check(t, rec, err)
		if err != nil {
			cr.Reason = err.Error()
		}

		if cr.Passed {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Cases = append(result.Cases, cr)
	}

	result.Log = g.Log()
	return result, nil
}

// check compares a turn outcome against the expectations the turn declares.
func check(t Turn, rec game.TurnRecord, err error) (expected, actual string, passed bool) {
	if err != nil || t.ExpectError {
		if t.ExpectError {
			expected = "error"
		} else {
			expected = "ok"
		}
		actual = "ok"
		if err != nil {
			actual = "error"
		}
		return expected, actual, expected == actual
	}

	var want, got []string
	passed = true
	if t.ExpectLevel != nil {
		want = append(want, "level="+t.ExpectLevel.String())
		got = append(got, "level="+rec.EscalationLevel.String())
		passed = passed && *t.ExpectLevel == rec.EscalationLevel
	}
	if t.ExpectCrossing != nil {
		want = append(want, fmt.Sprintf("crossing=%t", *t.ExpectCrossing))
		got = append(got, fmt.Sprintf("crossing=%t", rec.ThresholdCrossing))
		passed = passed && *t.ExpectCrossing == rec.ThresholdCrossing
	}
	if t.ExpectROEExceeded != nil {
		want = append(want, fmt.Sprintf("roe_exceeded=%t", *t.ExpectROEExceeded))
		got = append(got, fmt.Sprintf("roe_exceeded=%t", rec.ROEExceeded))
		passed = passed && *t.ExpectROEExceeded == rec.ROEExceeded
	}
	if len(want) == 0 {
		return "ok", "ok", true
	}
	return strings.Join(want, " "), strings.Join(got, " "), passed
}

// Load parses a scenario YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &s, nil
}

// LoadAndRun loads a scenario YAML file and replays it.
func LoadAndRun(path string, opts ...Option) (*RunResult, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	result, err := Run(s, opts...)
	if err != nil {
		return nil, err
	}
	result.File = path
	return result, nil
}

// RunAll replays every file concurrently. Results keep the order of paths;
// the first load error cancels the remaining work.
func RunAll(ctx context.Context, paths []string, opts ...Option) ([]*RunResult, error) {
	results := make([]*RunResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := LoadAndRun(path, opts...)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
