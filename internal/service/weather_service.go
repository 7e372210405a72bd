package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/aula-api/internal/models"
	"github.com/noah-isme/aula-api/pkg/config"
	appErrors "github.com/noah-isme/aula-api/pkg/errors"
)

const (
	DefaultWeatherCity    = "Posadas"
	DefaultWeatherCountry = "AR"

	weatherProvider = "openweathermap"
	// upper bound on relayed error bodies
	maxUpstreamBody = 1 << 20
)

// owmCurrent mirrors the parts of the OpenWeatherMap current-weather payload
// that are relayed. Everything is optional.
type owmCurrent struct {
	Name *string `json:"name"`
	Sys  *struct {
		Country *string `json:"country"`
	} `json:"sys"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	} `json:"weather"`
}

// WeatherService proxies current-weather lookups to OpenWeatherMap.
type WeatherService struct {
	cfg     config.WeatherConfig
	client  *http.Client
	metrics *MetricsService
	logger  *zap.Logger
}

// NewWeatherService constructs a WeatherService. A nil client gets one with
// the configured timeout.
func NewWeatherService(cfg config.WeatherConfig, client *http.Client, metrics *MetricsService, logger *zap.Logger) *WeatherService {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeatherService{cfg: cfg, client: client, metrics: metrics, logger: logger}
}

// Configured reports whether an API key is available.
func (s *WeatherService) Configured() bool {
	return s.cfg.APIKey != ""
}

// Current looks up the current weather for city/country. Empty values fall
// back to Posadas, AR.
func (s *WeatherService) Current(ctx context.Context, city, country string) (*models.WeatherSnapshot, error) {
	if !s.Configured() {
		return nil, appErrors.ErrWeatherNotConfigured
	}
	if strings.TrimSpace(city) == "" {
		city = DefaultWeatherCity
	}
	if strings.TrimSpace(country) == "" {
		country = DefaultWeatherCountry
	}

	endpoint, err := s.endpoint(city, country)
	if err != nil {
		return nil, s.fetchError(city, country, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, s.fetchError(city, country, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.metrics.ObserveUpstream(weatherProvider, 0, time.Since(start))
		return nil, s.fetchError(city, country, err)
	}
	defer resp.Body.Close()
	s.metrics.ObserveUpstream(weatherProvider, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
		if err != nil {
			return nil, s.fetchError(city, country, err)
		}
		s.logger.Warn("weather provider rejected request",
			zap.String("city", city), zap.String("country", country), zap.Int("status", resp.StatusCode))
		return nil, &appErrors.UpstreamError{
			Status:      resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        body,
		}
	}

	var payload owmCurrent
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, s.fetchError(city, country, fmt.Errorf("decode weather payload: %w", err))
	}

	return payload.snapshot(), nil
}

func (s *WeatherService) endpoint(city, country string) (string, error) {
	base, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse weather base url: %w", err)
	}
	q := base.Query()
	q.Set("q", city+","+country)
	q.Set("appid", s.cfg.APIKey)
	q.Set("units", "metric")
	q.Set("lang", "es")
	base.RawQuery = q.Encode()
	return base.String(), nil
}

func (s *WeatherService) fetchError(city, country string, err error) error {
	s.logger.Error("weather fetch failed", zap.String("city", city), zap.String("country", country), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrWeatherFetch.Code, appErrors.ErrWeatherFetch.Status, appErrors.ErrWeatherFetch.Message)
}

func (p owmCurrent) snapshot() *models.WeatherSnapshot {
	snap := &models.WeatherSnapshot{City: p.Name}
	if p.Sys != nil {
		snap.Country = p.Sys.Country
	}
	if p.Main != nil {
		snap.Temp = p.Main.Temp
		snap.FeelsLike = p.Main.FeelsLike
		snap.Humidity = p.Main.Humidity
	}
	if len(p.Weather) > 0 {
		snap.Weather = p.Weather[0].Description
		snap.Icon = p.Weather[0].Icon
	}
	return snap
}
