package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/xpertech-quotes/internal/handoff"
	"github.com/angelmondragon/xpertech-quotes/internal/quote"
	"github.com/angelmondragon/xpertech-quotes/internal/wizard"
	pkgerrors "github.com/angelmondragon/xpertech-quotes/pkg/errors"
	"github.com/angelmondragon/xpertech-quotes/pkg/metrics"
	"github.com/google/uuid"
)

// Navigation actions, used as metric labels.
const (
	ActionAdvance = "advance"
	ActionRetreat = "retreat"
	ActionJump    = "jump"
)

// Service runs wizard operations against stored sessions. Calls for the same
// session id are serialized; different sessions proceed in parallel.
type Service interface {
	Create(ctx context.Context) (*wizard.Session, error)
	Get(ctx context.Context, id string) (*wizard.Session, error)
	UpdateField(ctx context.Context, id string, field quote.Field, value string) (*wizard.Session, error)
	AdjustCount(ctx context.Context, id string, field quote.Field, delta int) (*wizard.Session, error)
	Advance(ctx context.Context, id string) (*wizard.Session, error)
	Retreat(ctx context.Context, id string) (*wizard.Session, error)
	JumpTo(ctx context.Context, id string, step int) (*wizard.Session, error)
	Handoff(ctx context.Context, id string) (handoff.Handoff, error)
	End(ctx context.Context, id string) error
}

type service struct {
	store    Store
	engine   *wizard.Engine
	composer *handoff.Composer
	metrics  *metrics.QuoteMetrics
	locks    Locker
	now      func() time.Time
	newID    func() string
}

// Option customizes a session service.
type Option func(*service)

// WithLocker replaces the in-process per-session lock, for stores shared by
// several API instances.
func WithLocker(l Locker) Option {
	return func(s *service) {
		if l != nil {
			s.locks = l
		}
	}
}

// NewService builds a session service. The metrics recorder is optional.
func NewService(store Store, engine *wizard.Engine, composer *handoff.Composer, m *metrics.QuoteMetrics, opts ...Option) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if engine == nil {
		return nil, fmt.Errorf("wizard engine required")
	}
	if composer == nil {
		return nil, fmt.Errorf("handoff composer required")
	}
	svc := &service{
		store:    store,
		engine:   engine,
		composer: composer,
		metrics:  m,
		locks:    newKeyedMutex(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *service) Create(ctx context.Context) (*wizard.Session, error) {
	sess := s.engine.NewSession(s.newID(), s.now())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store wizard session")
	}
	s.metrics.SessionStarted()
	return sess, nil
}

func (s *service) Get(ctx context.Context, id string) (*wizard.Session, error) {
	return s.load(ctx, id)
}

func (s *service) UpdateField(ctx context.Context, id string, field quote.Field, value string) (*wizard.Session, error) {
	return s.mutate(ctx, id, func(sess *wizard.Session) error {
		return s.engine.ApplyFieldUpdate(sess, field, value)
	})
}

func (s *service) AdjustCount(ctx context.Context, id string, field quote.Field, delta int) (*wizard.Session, error) {
	return s.mutate(ctx, id, func(sess *wizard.Session) error {
		return s.engine.AdjustCount(sess, field, delta)
	})
}

func (s *service) Advance(ctx context.Context, id string) (*wizard.Session, error) {
	return s.navigate(ctx, id, ActionAdvance, s.engine.Advance)
}

func (s *service) Retreat(ctx context.Context, id string) (*wizard.Session, error) {
	return s.navigate(ctx, id, ActionRetreat, func(sess *wizard.Session) (wizard.Transition, error) {
		return s.engine.Retreat(sess), nil
	})
}

func (s *service) JumpTo(ctx context.Context, id string, step int) (*wizard.Session, error) {
	return s.navigate(ctx, id, ActionJump, func(sess *wizard.Session) (wizard.Transition, error) {
		return s.engine.JumpTo(sess, step)
	})
}

// Handoff renders the chat message for a session that has a quotation.
func (s *service) Handoff(ctx context.Context, id string) (handoff.Handoff, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return handoff.Handoff{}, err
	}
	if sess.Result == nil {
		return handoff.Handoff{}, pkgerrors.New(pkgerrors.CodeStateConflict, "quotation not computed yet").
			WithDetails(map[string]any{"current_step": sess.Current})
	}
	return s.composer.Compose(sess.Config, *sess.Result), nil
}

func (s *service) End(ctx context.Context, id string) error {
	unlock, err := s.lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wizard session")
	}
	s.metrics.SessionEnded()
	return nil
}

func (s *service) navigate(ctx context.Context, id, action string, fn func(*wizard.Session) (wizard.Transition, error)) (*wizard.Session, error) {
	var transition wizard.Transition
	sess, err := s.mutate(ctx, id, func(sess *wizard.Session) error {
		t, err := fn(sess)
		transition = t
		return err
	})
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
			s.metrics.IncTransition(action, metrics.OutcomeRejected)
		}
		return nil, err
	}
	s.metrics.IncTransition(action, metrics.OutcomeOK)
	if transition.Computed && sess.Result != nil {
		s.metrics.ObserveQuote(metrics.SourceWizard, sess.Result.Total.InexactFloat64())
	}
	return sess, nil
}

// mutate loads, changes and saves a session while holding its lock. Nothing
// is written when fn fails.
func (s *service) mutate(ctx context.Context, id string, fn func(*wizard.Session) error) (*wizard.Session, error) {
	unlock, err := s.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = s.now()
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store wizard session")
	}
	return sess, nil
}

func (s *service) lock(ctx context.Context, id string) (func(), error) {
	unlock, err := s.locks.Lock(ctx, id)
	if errors.Is(err, ErrSessionBusy) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "wizard session is busy, retry")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock wizard session")
	}
	return unlock, nil
}

func (s *service) load(ctx context.Context, id string) (*wizard.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wizard session not found").
			WithDetails(map[string]any{"session_id": id})
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wizard session")
	}
	return sess, nil
}
