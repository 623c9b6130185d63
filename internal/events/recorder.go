package events

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/DjordjeVuckovic/news-pulse/internal/metrics"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/google/uuid"
)

type Command struct {
	Kind      string
	ArticleID string
	UserID    string
	Location  geo.Point
}

// Recorder appends user interaction events. Repeated events are kept as is.
type Recorder struct {
	store storage.EventStore
	now   func() time.Time
}

func NewRecorder(store storage.EventStore) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

func (r *Recorder) Record(ctx context.Context, cmd Command) (domain.UserEvent, error) {
	kind, err := domain.ParseEventKind(strings.ToLower(strings.TrimSpace(cmd.Kind)))
	if err != nil {
		return domain.UserEvent{}, apperr.NewValidationWrap("invalid event kind", err)
	}

	articleID, err := uuid.Parse(strings.TrimSpace(cmd.ArticleID))
	if err != nil {
		return domain.UserEvent{}, apperr.NewValidationWrap("invalid article id", err)
	}

	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return domain.UserEvent{}, apperr.NewValidation("user id is required")
	}

	if err := cmd.Location.Validate(); err != nil {
		return domain.UserEvent{}, apperr.NewValidationWrap("invalid location", err)
	}

	event := domain.UserEvent{
		ID:        uuid.New(),
		Kind:      kind,
		ArticleID: articleID,
		UserID:    userID,
		Location:  cmd.Location,
		CreatedAt: r.now().UTC(),
	}

	if err := r.store.Append(ctx, event); err != nil {
		return domain.UserEvent{}, err
	}

	metrics.EventsRecorded.WithLabelValues(string(kind)).Inc()
	slog.Debug("Event recorded", "id", event.ID, "kind", kind, "article_id", articleID)

	return event, nil
}
