// Package sessions keeps wizard sessions between HTTP calls and serializes
// the operations applied to each one.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angelmondragon/xpertech-quotes/internal/wizard"
)

// ErrNotFound is returned by stores for missing or expired sessions.
var ErrNotFound = errors.New("wizard session not found")

// Store persists serialized sessions. Implementations apply their own TTL on
// every Save.
type Store interface {
	Get(ctx context.Context, id string) (*wizard.Session, error)
	Save(ctx context.Context, s *wizard.Session) error
	Delete(ctx context.Context, id string) error
}

func encode(s *wizard.Session) ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return payload, nil
}

func decode(id string, payload []byte) (*wizard.Session, error) {
	var s wizard.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if s.Config.PhysicalTypes == nil {
		s.Config.PhysicalTypes = []string{}
	}
	return &s, nil
}
