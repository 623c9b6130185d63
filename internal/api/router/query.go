package router

import (
	"context"
	"net/http"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/DjordjeVuckovic/news-pulse/internal/query"
	"github.com/labstack/echo/v4"
)

type QueryResolver interface {
	Resolve(ctx context.Context, req query.Request) (domain.QueryResult, error)
}

type QueryRouter struct {
	g        *echo.Group
	resolver QueryResolver
}

func NewQueryRouter(g *echo.Group, resolver QueryResolver) *QueryRouter {
	return &QueryRouter{
		g:        g,
		resolver: resolver,
	}
}

func (r *QueryRouter) Bind() {
	r.g.POST("/query", r.queryHandler)
}

type QueryRequest struct {
	Query string   `json:"query" validate:"required,max=1000"`
	Lat   *float64 `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lon   *float64 `json:"lon,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// queryHandler godoc
// @Summary Resolve a natural-language news query
// @Description Understands the query, finds up to five matching articles and summarizes each one
// @Tags query
// @Accept json
// @Produce json
// @Param body body QueryRequest true "Query"
// @Success 200 {object} domain.QueryResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/query [post]
func (r *QueryRouter) queryHandler(c echo.Context) error {
	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if (req.Lat == nil) != (req.Lon == nil) {
		return apperr.NewValidation("lat and lon must be provided together")
	}

	q := query.Request{Text: req.Query}
	if req.Lat != nil {
		p := geo.NewPoint(*req.Lat, *req.Lon)
		q.Location = &p
	}

	result, err := r.resolver.Resolve(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
