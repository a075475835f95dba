// Package game runs the turn loop of an escalation exercise: both sides'
// score deltas, the shared escalation index, and the ROE posture bounding it.
// A Game is owned by one turn loop and is not safe for concurrent use.
package game

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/oodakit/internal/audit"
	"github.com/ppiankov/oodakit/internal/escalation"
	"github.com/ppiankov/oodakit/internal/model"
	"github.com/ppiankov/oodakit/internal/rai"
	"github.com/ppiankov/oodakit/internal/scoring"
)

// ErrDeescalation is returned for a negative escalation delta in a
// monotonic game.
var ErrDeescalation = errors.New("negative escalation delta in monotonic game")

// ErrIndexOverflow is returned when an escalation delta would push the
// index past the largest int.
var ErrIndexOverflow = errors.New("escalation index overflow")

// DefaultTurnInterval separates consecutive generated DTGs.
const DefaultTurnInterval = 4 * time.Hour

// dtgLayout renders day, time and zone in the military date-time group form.
const dtgLayout = "021504Z Jan 06"

// Options configures a new game.
type Options struct {
	ID           string
	Scenario     string
	Posture      model.ROEPostureName
	Ladder       *escalation.Ladder
	Journal      *audit.Log
	Monotonic    bool
	Start        time.Time
	TurnInterval time.Duration
}

// TurnInput is one turn's moves as adjudicated by the white cell.
type TurnInput struct {
	DTG             string
	RedLabel        string
	BlueLabel       string
	Blue            scoring.Delta
	Red             scoring.Delta
	EscalationDelta int
}

// TurnRecord is the outcome of one turn as written to the game log.
type TurnRecord struct {
	Turn              int                   `json:"turn"`
	DTG               string                `json:"dtg"`
	RedLabel          string                `json:"red_label"`
	BlueLabel         string                `json:"blue_label"`
	EscalationDelta   int                   `json:"escalation_delta"`
	EscalationIndex   int                   `json:"escalation_index"`
	EscalationLevel   model.EscalationLevel `json:"escalation_level"`
	ThresholdCrossing bool                  `json:"threshold_crossing"`
	PreviousLevel     model.EscalationLevel `json:"previous_level"`
	ROEPosture        model.ROEPostureName  `json:"roe_posture"`
	ROEExceeded       bool                  `json:"roe_exceeded"`
	Blue              scoring.Sheet         `json:"blue_scores"`
	Red               scoring.Sheet         `json:"red_scores"`
}

// GameLog is the persisted record of a game.
type GameLog struct {
	ID         string       `json:"id"`
	Scenario   string       `json:"scenario"`
	Synthetic  bool         `json:"synthetic"`
	Disclaimer string       `json:"disclaimer"`
	CreatedUTC string       `json:"created_utc"`
	Turns      []TurnRecord `json:"turns"`
}

// Game holds the mutable state of one exercise.
type Game struct {
	opts    Options
	ladder  *escalation.Ladder
	posture escalation.ROEPosture
	board   *scoring.Board
	index   int
	log     GameLog
}

// New starts a game at escalation index 0 with both sheets zeroed.
func New(opts Options) (*Game, error) {
	posture, err := escalation.Posture(opts.Posture)
	if err != nil {
		return nil, err
	}
	if opts.Ladder == nil {
		opts.Ladder = escalation.Default()
	}
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}
	if opts.TurnInterval <= 0 {
		opts.TurnInterval = DefaultTurnInterval
	}
	if opts.Scenario == "" {
		opts.Scenario = rai.DefaultScenarioName
	}

	return &Game{
		opts:    opts,
		ladder:  opts.Ladder,
		posture: posture,
		board:   scoring.NewBoard(),
		log: GameLog{
			ID:         opts.ID,
			Scenario:   opts.Scenario,
			Synthetic:  rai.SyntheticDataMarker,
			Disclaimer: rai.SyntheticDataDisclaimer,
			CreatedUTC: opts.Start.UTC().Format(time.RFC3339),
			Turns:      []TurnRecord{},
		},
	}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.opts.ID }

// Index returns the current escalation index.
func (g *Game) Index() int { return g.index }

// Level returns the ladder step for the current index.
func (g *Game) Level() escalation.Step { return g.ladder.Lookup(g.index) }

// Posture returns the ROE posture in force.
func (g *Game) Posture() escalation.ROEPosture { return g.posture }

// SetPosture changes the ROE posture for subsequent turns.
func (g *Game) SetPosture(name model.ROEPostureName) error {
	p, err := escalation.Posture(name)
	if err != nil {
		return err
	}
	g.posture = p
	return nil
}

// Board returns a snapshot of both score sheets.
func (g *Game) Board() scoring.Board { return g.board.Snapshot() }

// Advance plays one turn. Both deltas are validated and the journal is
// written before anything is committed, so a rejected turn leaves the game
// unchanged. The escalation index never drops below zero.
func (g *Game) Advance(in TurnInput) (TurnRecord, error) {
	turn := len(g.log.Turns) + 1
	if err := scoring.ValidateDelta(in.Blue); err != nil {
		return TurnRecord{}, fmt.Errorf("turn %d: %s delta: %w", turn, model.Blue, err)
	}
	if err := scoring.ValidateDelta(in.Red); err != nil {
		return TurnRecord{}, fmt.Errorf("turn %d: %s delta: %w", turn, model.Red, err)
	}
	if g.opts.Monotonic && in.EscalationDelta < 0 {
		return TurnRecord{}, fmt.Errorf("turn %d: %w (%d)", turn, ErrDeescalation, in.EscalationDelta)
	}
	if in.EscalationDelta > 0 && g.index > math.MaxInt-in.EscalationDelta {
		return TurnRecord{}, fmt.Errorf("turn %d: %w (%d + %d)", turn, ErrIndexOverflow, g.index, in.EscalationDelta)
	}

	blue := g.board.Blue.Snapshot()
	blue.Apply(in.Blue)
	red := g.board.Red.Snapshot()
	red.Apply(in.Red)

	prev := g.index
	next := max(prev+in.EscalationDelta, 0)
	from, to, crossed := g.ladder.Crossing(prev, next)

	dtg := in.DTG
	if dtg == "" {
		dtg = FormatDTG(g.opts.Start.Add(time.Duration(turn-1) * g.opts.TurnInterval))
	}

	rec := TurnRecord{
		Turn:              turn,
		DTG:               dtg,
		RedLabel:          in.RedLabel,
		BlueLabel:         in.BlueLabel,
		EscalationDelta:   in.EscalationDelta,
		EscalationIndex:   next,
		EscalationLevel:   to.Name,
		ThresholdCrossing: crossed,
		PreviousLevel:     from.Name,
		ROEPosture:        g.posture.Name,
		ROEExceeded:       g.posture.Exceeded(next),
		Blue:              blue.Snapshot(),
		Red:               red.Snapshot(),
	}

	if g.opts.Journal != nil {
		if err := g.opts.Journal.Record(journalEntry(g.opts.ID, rec)); err != nil {
			return TurnRecord{}, fmt.Errorf("turn %d: journal: %w", turn, err)
		}
	}

	g.board.Blue, g.board.Red = blue, red
	g.index = next
	g.log.Turns = append(g.log.Turns, rec)
	return rec, nil
}

func journalEntry(gameID string, rec TurnRecord) audit.Entry {
	var detail []string
	if rec.ThresholdCrossing {
		detail = append(detail, fmt.Sprintf("threshold crossed %s -> %s", rec.PreviousLevel, rec.EscalationLevel))
	}
	if rec.ROEExceeded {
		detail = append(detail, fmt.Sprintf("exceeds %s ROE", rec.ROEPosture))
	}
	return audit.Entry{
		GameID:          gameID,
		Kind:            audit.KindTurn,
		Turn:            rec.Turn,
		Subject:         fmt.Sprintf("RED: %s / BLUE: %s", rec.RedLabel, rec.BlueLabel),
		Decision:        "advance",
		Detail:          strings.Join(detail, "; "),
		EscalationIndex: rec.EscalationIndex,
		EscalationLevel: rec.EscalationLevel.String(),
		Blue:            rec.Blue,
		Red:             rec.Red,
	}
}

// Log returns a copy of the game log so far.
func (g *Game) Log() GameLog {
	out := g.log
	out.Turns = make([]TurnRecord, len(g.log.Turns))
	for i, t := range g.log.Turns {
		t.Blue = t.Blue.Snapshot()
		t.Red = t.Red.Snapshot()
		out.Turns[i] = t
	}
	return out
}

// FormatDTG renders t in UTC as a date-time group, e.g. "021430Z JAN 25".
func FormatDTG(t time.Time) string {
	return strings.ToUpper(t.UTC().Format(dtgLayout))
}
