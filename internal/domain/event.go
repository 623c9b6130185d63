package domain

import (
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/google/uuid"
)

type EventKind string

const (
	EventView  EventKind = "view"
	EventClick EventKind = "click"
)

func ParseEventKind(s string) (EventKind, error) {
	switch EventKind(s) {
	case EventView, EventClick:
		return EventKind(s), nil
	default:
		return "", fmt.Errorf("unknown event kind %q, expected one of [%s %s]", s, EventView, EventClick)
	}
}

// UserEvent is an append-only interaction record feeding the trending signal.
// UserID is deliberately loose: anonymous ids, session ids and account ids all land here.
type UserEvent struct {
	ID        uuid.UUID `json:"id"`
	Kind      EventKind `json:"kind"`
	ArticleID uuid.UUID `json:"articleId"`
	UserID    string    `json:"userId"`
	Location  geo.Point `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventSample is the projection of a UserEvent used to rebuild trending scores.
type EventSample struct {
	ArticleID uuid.UUID
	Kind      EventKind
	CreatedAt time.Time
}
