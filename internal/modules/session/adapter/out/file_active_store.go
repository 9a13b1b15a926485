package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"focusflow/internal/modules/session/domain"
	sessionout "focusflow/internal/modules/session/port/out"
	apperrors "focusflow/internal/platform/errors"
)

// FileActiveStateStore persists the single active-session reference with
// its timer position, so a later process can resume the countdown.
type FileActiveStateStore struct {
	path string
}

func NewFileActiveStateStore(path string) sessionout.ActiveStateStore {
	return &FileActiveStateStore{path: path}
}

func (s *FileActiveStateStore) SaveActive(_ context.Context, state domain.ActiveState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active state: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write active state: %w", err)
	}
	return nil
}

// LoadActive degrades to ErrNoActiveSession for a missing, unparsable, or
// empty reference rather than surfacing corruption.
func (s *FileActiveStateStore) LoadActive(_ context.Context) (domain.ActiveState, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return domain.ActiveState{}, apperrors.ErrNoActiveSession
	}
	state := domain.ActiveState{}
	if err := json.Unmarshal(payload, &state); err != nil {
		return domain.ActiveState{}, apperrors.ErrNoActiveSession
	}
	if state.SessionID == "" {
		return domain.ActiveState{}, apperrors.ErrNoActiveSession
	}
	return state, nil
}

func (s *FileActiveStateStore) ClearActive(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear active state: %w", err)
	}
	return nil
}
