package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hyprfocus/internal/modules/stats/domain"
	statsout "hyprfocus/internal/modules/stats/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteProjector struct {
	db *sql.DB
}

var _ statsout.Projection = (*SQLiteProjector)(nil)

func NewSQLiteProjector(dbPath string) (*SQLiteProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	p := &SQLiteProjector{db: db}
	if err := p.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

func (p *SQLiteProjector) Close() error { return p.db.Close() }

func (p *SQLiteProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS events (
  seq INTEGER PRIMARY KEY,
  ts TEXT NOT NULL,
  type TEXT NOT NULL,
  goal TEXT NOT NULL,
  intention TEXT NOT NULL,
  duration INTEGER NOT NULL,
  pomodoro INTEGER NOT NULL,
  rating INTEGER NOT NULL,
  comment TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_goal_type ON events(goal, type);
CREATE TABLE IF NOT EXISTS spans (
  goal TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL,
  hours REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_spans_goal ON spans(goal);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create stats tables: %w", err)
	}
	return nil
}

// Replace rebuilds both tables from scratch inside one transaction.
func (p *SQLiteProjector) Replace(ctx context.Context, records []domain.Record, spans []domain.Span) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reindex: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("reset events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM spans`); err != nil {
		return fmt.Errorf("reset spans: %w", err)
	}

	const insertEvent = `
INSERT INTO events (seq, ts, type, goal, intention, duration, pomodoro, rating, comment)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	for i, r := range records {
		pomodoro := 0
		if r.Pomodoro {
			pomodoro = 1
		}
		if _, err := tx.ExecContext(ctx, insertEvent,
			i+1,
			r.Timestamp.Format(time.RFC3339),
			r.Type,
			r.Goal,
			r.Intention,
			r.Duration,
			pomodoro,
			r.Rating,
			r.Comment,
		); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	const insertSpan = `
INSERT INTO spans (goal, started_at, ended_at, hours)
VALUES (?, ?, ?, ?);
`
	for _, s := range spans {
		if _, err := tx.ExecContext(ctx, insertSpan, s.Goal, s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339), s.Hours()); err != nil {
			return fmt.Errorf("insert span: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reindex: %w", err)
	}
	return nil
}

// GoalTotals aggregates per goal, busiest goal first.
func (p *SQLiteProjector) GoalTotals(ctx context.Context) ([]domain.GoalTotal, error) {
	const query = `
SELECT g.goal,
       (SELECT COUNT(*) FROM events e WHERE e.goal = g.goal AND e.type = 'login'),
       (SELECT COALESCE(SUM(s.hours), 0) FROM spans s WHERE s.goal = g.goal),
       (SELECT COALESCE(AVG(e.rating), 0) FROM events e WHERE e.goal = g.goal AND e.type = 'feedback' AND e.rating > 0)
FROM (SELECT DISTINCT goal FROM events) g
ORDER BY 3 DESC, 2 DESC, g.goal ASC;
`
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query goal totals: %w", err)
	}
	defer rows.Close()
	var out []domain.GoalTotal
	for rows.Next() {
		var total domain.GoalTotal
		if err := rows.Scan(&total.Goal, &total.Sessions, &total.Hours, &total.AverageRating); err != nil {
			return nil, fmt.Errorf("scan goal totals: %w", err)
		}
		out = append(out, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goal totals: %w", err)
	}
	return out, nil
}
