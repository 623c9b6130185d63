package router

import (
	"context"
	"net/http"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/events"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/labstack/echo/v4"
)

type EventRecorder interface {
	Record(ctx context.Context, cmd events.Command) (domain.UserEvent, error)
}

type EventRouter struct {
	g        *echo.Group
	recorder EventRecorder
}

func NewEventRouter(g *echo.Group, recorder EventRecorder) *EventRouter {
	return &EventRouter{
		g:        g,
		recorder: recorder,
	}
}

func (r *EventRouter) Bind() {
	r.g.POST("/events", r.recordHandler)
}

type EventRequest struct {
	Kind      string   `json:"kind" validate:"required,oneof=view click"`
	ArticleID string   `json:"article_id" validate:"required,uuid"`
	UserID    string   `json:"user_id" validate:"required,max=256"`
	Lat       *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon       *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
}

// recordHandler godoc
// @Summary Record a user interaction
// @Description Appends a view or click event that feeds the trending ranking
// @Tags events
// @Accept json
// @Produce json
// @Param body body EventRequest true "Event"
// @Success 201 {object} domain.UserEvent
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/events [post]
func (r *EventRouter) recordHandler(c echo.Context) error {
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := r.recorder.Record(c.Request().Context(), events.Command{
		Kind:      req.Kind,
		ArticleID: req.ArticleID,
		UserID:    req.UserID,
		Location:  geo.NewPoint(*req.Lat, *req.Lon),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, event)
}
