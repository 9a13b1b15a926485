package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"focusflow/internal/modules/session/domain"
	sessionout "focusflow/internal/modules/session/port/out"
)

// FileSessionStore keeps the full session collection as one JSON array.
// Loading a missing or unparsable blob yields an empty collection; the
// error is swallowed rather than surfaced.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) sessionout.SessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Load(_ context.Context) ([]domain.Session, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return []domain.Session{}, nil
	}
	var sessions []domain.Session
	if err := json.Unmarshal(payload, &sessions); err != nil {
		return []domain.Session{}, nil
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	return sessions, nil
}

func (s *FileSessionStore) Save(_ context.Context, sessions []domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	payload, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write sessions: %w", err)
	}
	return nil
}
