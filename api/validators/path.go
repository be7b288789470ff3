package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/xpertech-quotes/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionIDParam reads the {sessionId} route parameter and checks it is a UUID.
func SessionIDParam(r *http.Request) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "sessionId"))
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid session id").
			WithDetails(map[string]any{"field": "sessionId"})
	}
	return id.String(), nil
}
