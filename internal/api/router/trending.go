package router

import (
	"context"
	"net/http"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/DjordjeVuckovic/news-pulse/internal/trending"
	"github.com/labstack/echo/v4"
)

type TrendingService interface {
	Trending(ctx context.Context, req trending.Request) (trending.Response, error)
}

type TrendingRouter struct {
	g       *echo.Group
	service TrendingService
}

func NewTrendingRouter(g *echo.Group, service TrendingService) *TrendingRouter {
	return &TrendingRouter{
		g:       g,
		service: service,
	}
}

func (r *TrendingRouter) Bind() {
	r.g.GET("/trending", r.trendingHandler)
}

type TrendingParams struct {
	Lat      float64 `query:"lat" validate:"gte=-90,lte=90"`
	Lon      float64 `query:"lon" validate:"gte=-180,lte=180"`
	Limit    int     `query:"limit" validate:"gte=0,lte=50"`
	RadiusKm float64 `query:"radius_km" validate:"gte=0"`
}

// trendingHandler godoc
// @Summary Trending articles near a location
// @Description Ranks articles by recent interaction popularity blended with distance from the caller
// @Tags trending
// @Produce json
// @Param lat query number true "Latitude in decimal degrees"
// @Param lon query number true "Longitude in decimal degrees"
// @Param limit query int false "Number of articles (default 5, max 50)"
// @Param radius_km query number false "Only include articles within this radius"
// @Success 200 {object} trending.Response
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/trending [get]
func (r *TrendingRouter) trendingHandler(c echo.Context) error {
	var params TrendingParams
	err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &params.Lat).
		MustFloat64("lon", &params.Lon).
		Int("limit", &params.Limit).
		Float64("radius_km", &params.RadiusKm).
		BindError()
	if err != nil {
		return apperr.NewValidationWrap("invalid query parameters", err)
	}
	if err := c.Validate(&params); err != nil {
		return err
	}

	resp, err := r.service.Trending(c.Request().Context(), trending.Request{
		Location:     geo.NewPoint(params.Lat, params.Lon),
		Limit:        params.Limit,
		RadiusMeters: params.RadiusKm * 1000,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}
