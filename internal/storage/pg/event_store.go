package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/jackc/pgx/v5/pgconn"
)

const foreignKeyViolation = "23503"

type EventStore struct {
	db DB
}

func NewEventStore(pool *ConnectionPool) *EventStore {
	return &EventStore{db: pool.conn}
}

func NewEventStoreWithDB(db DB) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) Append(ctx context.Context, event domain.UserEvent) error {
	cmd := `
		INSERT INTO user_events (id, kind, article_id, user_id, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.Exec(
		ctx,
		cmd,
		event.ID,
		string(event.Kind),
		event.ArticleID,
		event.UserID,
		event.Location.Lat,
		event.Location.Lon,
		event.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return apperr.NewInvalidReference("article", event.ArticleID.String())
		}
		return fmt.Errorf("failed to insert user event: %w", err)
	}
	return nil
}

func (s *EventStore) EventsSince(ctx context.Context, since time.Time) ([]domain.EventSample, error) {
	rows, err := s.db.Query(ctx, `SELECT article_id, kind, created_at FROM user_events WHERE created_at >= $1`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent events: %w", err)
	}
	defer rows.Close()

	var samples []domain.EventSample
	for rows.Next() {
		var (
			sample domain.EventSample
			kind   string
		)
		if err := rows.Scan(&sample.ArticleID, &kind, &sample.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		sample.Kind = domain.EventKind(kind)
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return samples, nil
}

var _ storage.EventStore = (*EventStore)(nil)
