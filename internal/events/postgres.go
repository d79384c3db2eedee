package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

var schemaSQL = []string{`
CREATE TABLE IF NOT EXISTS view_events (
	id              BIGSERIAL PRIMARY KEY,
	view_id         TEXT        NOT NULL,
	event_type      TEXT        NOT NULL,
	module_id       TEXT,
	lesson_id       TEXT,
	catalog_version TEXT,
	data            JSONB       NOT NULL DEFAULT '{}'::jsonb,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS view_events_lesson_idx ON view_events (lesson_id, event_type)`,
}

// PostgresSink inserts events into the view_events table.
type PostgresSink struct {
	pool *pgxpool.Pool
}

func NewPostgresSink(pool *pgxpool.Pool) *PostgresSink {
	return &PostgresSink{pool: pool}
}

// EnsureSchema creates the view_events table if it does not exist.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("event sink pool is nil")
	}
	for _, stmt := range schemaSQL {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create view_events: %w", err)
		}
	}
	return nil
}

func (s *PostgresSink) LogEvent(event Event) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("event sink pool is nil")
	}
	if event.EventType == "" {
		return fmt.Errorf("event_type is required")
	}
	if event.ViewID == "" {
		return fmt.Errorf("view_id is required")
	}

	payload := event.Data
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	_, err = s.pool.Exec(ctx,
		`INSERT INTO view_events (view_id, event_type, module_id, lesson_id, catalog_version, data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)`,
		event.ViewID,
		event.EventType,
		nullIfEmpty(event.ModuleID),
		nullIfEmpty(event.LessonID),
		nullIfEmpty(event.CatalogVersion),
		string(data),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	slog.Debug("event logged",
		"type", event.EventType,
		"view_id", event.ViewID,
		"lesson_id", event.LessonID,
	)
	return nil
}

// CountByType returns how many events of the given type were recorded for a lesson.
func (s *PostgresSink) CountByType(ctx context.Context, lessonID, eventType string) (int64, error) {
	if s == nil || s.pool == nil {
		return 0, fmt.Errorf("event sink pool is nil")
	}
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM view_events WHERE lesson_id = $1 AND event_type = $2`,
		lessonID, eventType,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
