package wizarddto

import (
	"time"

	"github.com/angelmondragon/xpertech-quotes/internal/quote"
	"github.com/angelmondragon/xpertech-quotes/internal/wizard"
)

type Step struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	Label string `json:"label"`
}

// CurrentStep adds the gate result for the step the visitor is on.
type CurrentStep struct {
	Step
	Valid bool `json:"valid"`
}

type Session struct {
	ID             string              `json:"id"`
	CurrentStep    CurrentStep         `json:"current_step"`
	MaxVisitedStep int                 `json:"max_visited_step"`
	TotalSteps     int                 `json:"total_steps"`
	Finished       bool                `json:"finished"`
	Configuration  quote.Configuration `json:"configuration"`
	Quote          *Quote              `json:"quotation_result"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type Handoff struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

func NewSteps(steps []wizard.Step) []Step {
	out := make([]Step, 0, len(steps))
	for _, s := range steps {
		out = append(out, newStep(s))
	}
	return out
}

func newStep(s wizard.Step) Step {
	return Step{Index: s.Index, Key: string(s.Key), Label: s.Label}
}

// NewSession renders s with the gate state of its current step.
func NewSession(s *wizard.Session, e *wizard.Engine, symbol string) Session {
	out := Session{
		ID:             s.ID,
		MaxVisitedStep: s.MaxVisited,
		TotalSteps:     e.StepCount(),
		Finished:       s.Finished,
		Configuration:  s.Config,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	steps := e.Steps()
	if s.Current >= 1 && s.Current <= len(steps) {
		out.CurrentStep = CurrentStep{Step: newStep(steps[s.Current-1]), Valid: e.IsStepValid(s, s.Current)}
	}
	if s.Result != nil {
		q := NewQuote(*s.Result, symbol)
		out.Quote = &q
	}
	return out
}
