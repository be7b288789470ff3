package wizard

import (
	"time"

	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/angelmondragon/xpertech-quotes/internal/quote"
	pkgerrors "github.com/angelmondragon/xpertech-quotes/pkg/errors"
)

// Session is the serializable state of one visitor's walk.
type Session struct {
	ID         string              `json:"id"`
	Current    int                 `json:"current_step"`
	MaxVisited int                 `json:"max_visited_step"`
	Finished   bool                `json:"finished"`
	Config     quote.Configuration `json:"configuration"`
	Result     *quote.Breakdown    `json:"quotation_result,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// Transition describes what a navigation call did.
type Transition struct {
	From     int
	To       int
	Computed bool
	Finished bool
}

// Engine applies wizard operations to sessions.
type Engine struct {
	catalog *catalog.Catalog
	steps   []Step
}

func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c, steps: DefaultSteps()}
}

func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Steps returns a copy of the step sequence.
func (e *Engine) Steps() []Step {
	out := make([]Step, len(e.steps))
	copy(out, e.steps)
	return out
}

// StepCount is N, the index of the results step.
func (e *Engine) StepCount() int {
	return len(e.steps)
}

// NewSession starts an empty configuration on step 1.
func (e *Engine) NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		Current:    1,
		MaxVisited: 1,
		Config:     quote.NewConfiguration(e.catalog.DefaultCableLength()),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsStepValid evaluates the gate of step i against the session state. Out of
// range indexes are never valid.
func (e *Engine) IsStepValid(s *Session, i int) bool {
	if i < 1 || i > len(e.steps) {
		return false
	}
	return e.steps[i-1].Valid(s.Config)
}

// Advance moves the cursor forward once the current step is valid. Leaving the
// last input step computes the quotation; advancing on the results step
// recomputes it and marks the session finished.
func (e *Engine) Advance(s *Session) (Transition, error) {
	if !e.IsStepValid(s, s.Current) {
		return Transition{}, e.incompleteStep(s.Current)
	}

	t := Transition{From: s.Current}
	n := len(e.steps)
	if s.Current < n {
		if s.Current == n-1 {
			e.compute(s)
			t.Computed = true
		}
		e.moveTo(s, s.Current+1)
	} else {
		e.compute(s)
		s.Finished = true
		t.Computed = true
		t.Finished = true
	}
	t.To = s.Current
	return t, nil
}

// Retreat moves back one step. Answers and any computed result are kept.
func (e *Engine) Retreat(s *Session) Transition {
	t := Transition{From: s.Current, To: s.Current}
	if s.Current > 1 {
		e.moveTo(s, s.Current-1)
		s.Finished = false
		t.To = s.Current
	}
	return t
}

// JumpTo sets the cursor to step i. Any visited step is reachable; the step
// right after the current one goes through Advance. Landing on the results
// step recomputes the quotation.
func (e *Engine) JumpTo(s *Session, i int) (Transition, error) {
	n := len(e.steps)
	if i < 1 || i > n {
		return Transition{}, pkgerrors.New(pkgerrors.CodeValidation, "step out of range").
			WithDetails(map[string]any{"step": i, "min": 1, "max": n})
	}

	if i > s.MaxVisited {
		if i == s.Current+1 {
			return e.Advance(s)
		}
		return Transition{}, pkgerrors.New(pkgerrors.CodeStateConflict, "step not reached yet").
			WithDetails(map[string]any{"step": i, "max_visited_step": s.MaxVisited})
	}

	t := Transition{From: s.Current}
	e.moveTo(s, i)
	if i == n {
		e.compute(s)
		t.Computed = true
	} else {
		s.Finished = false
	}
	t.To = s.Current
	return t, nil
}

// ApplyFieldUpdate mutates one configuration field without moving the cursor.
func (e *Engine) ApplyFieldUpdate(s *Session, field quote.Field, value string) error {
	return s.Config.ApplyFieldUpdate(field, value)
}

// AdjustCount applies an increment or decrement to a camera counter.
func (e *Engine) AdjustCount(s *Session, field quote.Field, delta int) error {
	return s.Config.AdjustCount(field, delta)
}

// Quote prices a configuration against the engine catalog.
func (e *Engine) Quote(cfg quote.Configuration) quote.Breakdown {
	return quote.Compute(cfg, e.catalog)
}

func (e *Engine) compute(s *Session) {
	result := e.Quote(s.Config)
	s.Result = &result
}

func (e *Engine) moveTo(s *Session, i int) {
	s.Current = i
	if i > s.MaxVisited {
		s.MaxVisited = i
	}
}

func (e *Engine) incompleteStep(i int) error {
	details := map[string]any{"step": i}
	if i >= 1 && i <= len(e.steps) {
		details["key"] = string(e.steps[i-1].Key)
		details["label"] = e.steps[i-1].Label
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, "current step is incomplete").WithDetails(details)
}
