package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/aula-api/internal/models"
	"github.com/noah-isme/aula-api/pkg/response"
)

type weatherService interface {
	Current(ctx context.Context, city, country string) (*models.WeatherSnapshot, error)
}

// WeatherHandler proxies current-weather lookups.
type WeatherHandler struct {
	weather weatherService
}

// NewWeatherHandler constructs WeatherHandler.
func NewWeatherHandler(weather weatherService) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

// Current godoc
// @Summary Current weather
// @Description Looks up current conditions on OpenWeatherMap. Provider errors are relayed with their original status and body.
// @Tags Weather
// @Produce json
// @Param city query string false "City name" default(Posadas)
// @Param country query string false "ISO country code" default(AR)
// @Success 200 {object} models.WeatherSnapshot
// @Failure 500 {object} response.ErrorBody
// @Router /weather [get]
func (h *WeatherHandler) Current(c *gin.Context) {
	snapshot, err := h.weather.Current(c.Request.Context(), c.Query("city"), c.Query("country"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot)
}
