package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sessiondomain "focusflow/internal/modules/session/domain"
	"focusflow/internal/modules/stats/domain"

	_ "modernc.org/sqlite"
)

// SQLiteReportStore is the reporting index. It doubles as the session
// module's history projector: every canonical write upserts one row here,
// and reindex rebuilds the table wholesale.
type SQLiteReportStore struct {
	db *sql.DB
}

func NewSQLiteReportStore(dbPath string) (*SQLiteReportStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteReportStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteReportStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  subject TEXT NOT NULL,
  duration_minutes INTEGER NOT NULL,
  distraction_count INTEGER NOT NULL,
  date_key TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  completed INTEGER NOT NULL,
  focused_minutes INTEGER NOT NULL,
  rating INTEGER
);
CREATE INDEX IF NOT EXISTS idx_sessions_date_key ON sessions(date_key);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteReportStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions index: %w", err)
	}
	return nil
}

func (s *SQLiteReportStore) Upsert(ctx context.Context, facts domain.SessionFacts) error {
	return s.upsertRow(ctx, facts)
}

// UpsertSession implements the session module's HistoryProjector port.
func (s *SQLiteReportStore) UpsertSession(ctx context.Context, session sessiondomain.Session) error {
	facts := domain.SessionFacts{
		ID:               session.ID,
		Title:            session.Title,
		Subject:          session.Subject,
		DurationMinutes:  session.DurationMinutes,
		DistractionCount: len(session.Distractions),
		DateKey:          session.DateKey,
		CreatedAt:        session.CreatedAt,
		Completed:        session.Completed,
		FocusedMinutes:   session.FocusedMinutes,
	}
	if session.Reflection != nil {
		facts.HasReflection = true
		facts.Rating = session.Reflection.Rating
	}
	return s.upsertRow(ctx, facts)
}

func (s *SQLiteReportStore) upsertRow(ctx context.Context, facts domain.SessionFacts) error {
	const stmt = `
INSERT INTO sessions (id, title, subject, duration_minutes, distraction_count, date_key, created_at, completed, focused_minutes, rating)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  subject=excluded.subject,
  duration_minutes=excluded.duration_minutes,
  distraction_count=excluded.distraction_count,
  date_key=excluded.date_key,
  created_at=excluded.created_at,
  completed=excluded.completed,
  focused_minutes=excluded.focused_minutes,
  rating=excluded.rating;
`
	rating := sql.NullInt64{}
	if facts.HasReflection {
		rating = sql.NullInt64{Int64: int64(facts.Rating), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, stmt,
		facts.ID,
		facts.Title,
		facts.Subject,
		facts.DurationMinutes,
		facts.DistractionCount,
		facts.DateKey,
		facts.CreatedAt,
		facts.Completed,
		facts.FocusedMinutes,
		rating,
	)
	if err != nil {
		return fmt.Errorf("upsert session row: %w", err)
	}
	return nil
}

func (s *SQLiteReportStore) DailyFocus(ctx context.Context, fromDateKey string) ([]domain.DayTotal, error) {
	const query = `
SELECT date_key, SUM(focused_minutes), COUNT(*)
FROM sessions
WHERE date_key >= ?
GROUP BY date_key
ORDER BY date_key;
`
	rows, err := s.db.QueryContext(ctx, query, fromDateKey)
	if err != nil {
		return nil, fmt.Errorf("query daily focus: %w", err)
	}
	defer rows.Close()

	var totals []domain.DayTotal
	for rows.Next() {
		var t domain.DayTotal
		if err := rows.Scan(&t.DateKey, &t.FocusedMinutes, &t.Sessions); err != nil {
			return nil, fmt.Errorf("scan daily focus row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily focus rows: %w", err)
	}
	return totals, nil
}
