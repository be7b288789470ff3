package wizard

import (
	"context"
	"net/http"

	wizarddto "github.com/angelmondragon/xpertech-quotes/api/controllers/wizard/dto"
	"github.com/angelmondragon/xpertech-quotes/api/responses"
	"github.com/angelmondragon/xpertech-quotes/api/validators"
	"github.com/angelmondragon/xpertech-quotes/internal/quote"
	"github.com/angelmondragon/xpertech-quotes/internal/sessions"
	wizardengine "github.com/angelmondragon/xpertech-quotes/internal/wizard"
	pkgerrors "github.com/angelmondragon/xpertech-quotes/pkg/errors"
	"github.com/angelmondragon/xpertech-quotes/pkg/logger"
)

const maxLocationLength = 200

// View renders sessions for responses.
type View struct {
	Engine *wizardengine.Engine
	Symbol string
}

func (v View) session(s *wizardengine.Session) wizarddto.Session {
	return wizarddto.NewSession(s, v.Engine, v.Symbol)
}

// Steps lists the wizard step labels.
func Steps(engine *wizardengine.Engine) http.HandlerFunc {
	steps := wizarddto.NewSteps(engine.Steps())
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, steps)
	}
}

// SessionCreate starts a new wizard session.
func SessionCreate(svc sessions.Service, view View, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}
		sess, err := svc.Create(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithSessionID(r.Context(), sess.ID), "wizard.session.created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view.session(sess))
	}
}

// SessionFetch returns the session snapshot.
func SessionFetch(svc sessions.Service, view View, logg *logger.Logger) http.HandlerFunc {
	return withSession(logg, func(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) {
		sess, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view.session(sess))
	})
}

// SessionUpdateField applies one field update. Choice values must exist in
// the catalog.
func SessionUpdateField(svc sessions.Service, view View, logg *logger.Logger) http.HandlerFunc {
	return withSession(logg, func(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) {
		var payload wizarddto.FieldUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		field := quote.Field(payload.Field)
		value := payload.Value
		if field == quote.FieldLocation {
			value = validators.SanitizeString(value, maxLocationLength)
		}
		if err := quote.CheckFieldValue(field, value, view.Engine.Catalog()); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sess, err := svc.UpdateField(ctx, id, field, value)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view.session(sess))
	})
}

// SessionAdjustCount applies an increment or decrement to a camera counter.
func SessionAdjustCount(svc sessions.Service, view View, logg *logger.Logger) http.HandlerFunc {
	return withSession(logg, func(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) {
		var payload wizarddto.CountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sess, err := svc.AdjustCount(ctx, id, quote.Field(payload.Field), payload.Delta)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view.session(sess))
	})
}

// SessionAdvance moves to the next step when the current one is complete.
func SessionAdvance(svc sessions.Service, view View, logg *logger.Logger) http.HandlerFunc {
	return withSession(logg, func(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) {
		sess, err := svc.Advance(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view.session(sess))
	})
}

func SessionRetreat(svc sessions.Service, view View, logg *logger.Logger) http.HandlerFunc {
	return withSession(logg, func(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) {
		sess, err := svc.Retreat(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view.session(sess))
	})
}

// SessionJump moves to a visited step or the next one.
func SessionJump(svc sessions.Service, view View, logg *logger.Logger) http.HandlerFunc {
	return withSession(logg, func(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) {
		var payload wizarddto.JumpRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sess, err := svc.JumpTo(ctx, id, payload.Step)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view.session(sess))
	})
}

// SessionHandoff returns the chat message and link for a quoted session.
func SessionHandoff(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(logg, func(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) {
		h, err := svc.Handoff(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, wizarddto.Handoff{Message: h.Message, URL: h.URL})
	})
}

// SessionEnd discards the session.
func SessionEnd(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return withSession(logg, func(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) {
		if err := svc.End(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(ctx, "wizard.session.ended")
		}
		responses.WriteNoContent(w)
	})
}

type sessionHandler func(ctx context.Context, w http.ResponseWriter, r *http.Request, id string)

// withSession resolves the {sessionId} parameter and tags the log context.
func withSession(logg *logger.Logger, fn sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.SessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithSessionID(ctx, id)
		}
		fn(ctx, w, r, id)
	}
}
