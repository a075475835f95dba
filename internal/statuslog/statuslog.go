// Package statuslog is the leveled status journal shown alongside a running
// exercise. Entries are kept in memory for later filtering and rendered as
// they arrive by an optional Emitter.
package statuslog

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Level labels a journal entry.
type Level string

const (
	Info    Level = "INFO"
	Warn    Level = "WARN"
	Error   Level = "ERROR"
	Success Level = "SUCCESS"
	Debug   Level = "DEBUG"
	Step    Level = "STEP"
	Section Level = "SECTION"
	Metric  Level = "METRIC"
)

// Colors maps each level to its display colour.
var Colors = map[Level]string{
	Info:    "#1f6feb",
	Warn:    "#bf8700",
	Error:   "#d73a49",
	Success: "#2ea043",
	Debug:   "#6e7781",
	Step:    "#8b949e",
	Section: "#58a6ff",
	Metric:  "#d2a8ff",
}

// SectionPalette supplies section colours when none is given, indexed by
// phase modulo its length.
var SectionPalette = []string{"#58a6ff", "#d2a8ff", "#f0883e", "#2ea043", "#f778ba", "#db6d28"}

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02 15:04:05"

// Entry is one journal record. Extra carries the structured arguments of
// Section, Step and Metric.
type Entry struct {
	Level     Level          `json:"level"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// Emitter renders entries as they are logged.
type Emitter interface {
	Emit(e Entry, color string)
}

// Logger is an explicitly owned status journal. Safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
	emitter Emitter
	zap     *zap.Logger
	now     func() time.Time
}

// Option configures a Logger.
type Option func(*Logger)

// WithEmitter renders each entry through e.
func WithEmitter(e Emitter) Option {
	return func(l *Logger) { l.emitter = e }
}

// WithZap mirrors each entry to a structured logger.
func WithZap(z *zap.Logger) Option {
	return func(l *Logger) { l.zap = z }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// New returns an empty journal.
func New(opts ...Option) *Logger {
	l := &Logger{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Logger) Info(msg string) Entry    { return l.log(Info, msg, "", nil) }
func (l *Logger) Warn(msg string) Entry    { return l.log(Warn, msg, "", nil) }
func (l *Logger) Error(msg string) Entry   { return l.log(Error, msg, "", nil) }
func (l *Logger) Success(msg string) Entry { return l.log(Success, msg, "", nil) }
func (l *Logger) Debug(msg string) Entry   { return l.log(Debug, msg, "", nil) }

// NoPhase marks a section header that belongs to no numbered phase.
const NoPhase = -1

// Section logs a phase header. Unless phase is negative (see NoPhase) the
// title gets a "Phase N: " prefix. An empty color is taken from
// SectionPalette by phase, or the SECTION colour without one.
func (l *Logger) Section(title, description string, phase int, color string) Entry {
	extra := map[string]any{"description": description}
	if phase >= 0 {
		title = fmt.Sprintf("Phase %d: %s", phase, title)
		extra["phase"] = phase
	}
	if color == "" {
		color = Colors[Section]
		if phase >= 0 {
			color = SectionPalette[phase%len(SectionPalette)]
		}
	}
	return l.log(Section, title, color, extra)
}

// Step logs an agent or pipeline stage doing something.
func (l *Logger) Step(agent, action string) Entry {
	return l.log(Step, agent+" → "+action, "", map[string]any{"agent": agent, "action": action})
}

// Metric logs a labelled value with an optional unit.
func (l *Logger) Metric(label string, value any, unit string) Entry {
	msg := fmt.Sprintf("%s: %v", label, value)
	if unit != "" {
		msg += " " + unit
	}
	return l.log(Metric, msg, "", map[string]any{"label": label, "value": value, "unit": unit})
}

// Entries returns the journal, optionally filtered by level
// (case-insensitive). An empty level returns everything.
func (l *Logger) Entries(level string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []Entry{}
	want := Level(strings.ToUpper(level))
	for _, e := range l.entries {
		if level == "" || e.Level == want {
			out = append(out, e)
		}
	}
	return out
}

// Clear discards every entry.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

func (l *Logger) log(level Level, msg, color string, extra map[string]any) Entry {
	if color == "" {
		color = Colors[level]
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry{Level: level, Message: msg, Timestamp: l.now().Format(TimestampFormat), Extra: extra}
	l.entries = append(l.entries, e)

	if l.emitter != nil {
		l.emitter.Emit(e, color)
	}
	if l.zap != nil {
		mirror(l.zap, e)
	}
	return e
}

func mirror(z *zap.Logger, e Entry) {
	fields := []zap.Field{zap.String("status", string(e.Level))}
	for k, v := range e.Extra {
		fields = append(fields, zap.Any(k, v))
	}
	switch e.Level {
	case Debug:
		z.Debug(e.Message, fields...)
	case Warn:
		z.Warn(e.Message, fields...)
	case Error:
		z.Error(e.Message, fields...)
	default:
		z.Info(e.Message, fields...)
	}
}
