package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/aula-api/pkg/config"
	appErrors "github.com/noah-isme/aula-api/pkg/errors"
)

const owmPayload = `{
  "coord": {"lon": -55.9, "lat": -27.37},
  "weather": [{"id": 800, "main": "Clear", "description": "cielo claro", "icon": "01d"}],
  "main": {"temp": 28.4, "feels_like": 30.1, "temp_min": 27, "temp_max": 29, "pressure": 1012, "humidity": 62},
  "sys": {"country": "AR", "sunrise": 1700000000},
  "name": "Posadas",
  "cod": 200
}`

type providerStub struct {
	server *httptest.Server
	hits   atomic.Int32
	last   atomic.Value
}

func newProviderStub(t *testing.T, status int, body string) *providerStub {
	t.Helper()
	stub := &providerStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.hits.Add(1)
		stub.last.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func newWeatherService(baseURL, key string) *WeatherService {
	return NewWeatherService(config.WeatherConfig{APIKey: key, BaseURL: baseURL, Timeout: 2 * time.Second}, nil, NewMetricsService(), zap.NewNop())
}

func TestWeatherCurrentWithoutKey(t *testing.T) {
	stub := newProviderStub(t, http.StatusOK, owmPayload)
	svc := newWeatherService(stub.server.URL, "")

	_, err := svc.Current(context.Background(), "Posadas", "AR")
	require.Error(t, err)
	assert.Same(t, appErrors.ErrWeatherNotConfigured, err)
	assert.Equal(t, int32(0), stub.hits.Load())
}

func TestWeatherCurrentReshapesPayload(t *testing.T) {
	stub := newProviderStub(t, http.StatusOK, owmPayload)
	svc := newWeatherService(stub.server.URL, "k3y")

	snap, err := svc.Current(context.Background(), "Posadas", "AR")
	require.NoError(t, err)
	assert.Equal(t, int32(1), stub.hits.Load())

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{"city":"Posadas","country":"AR","temp":28.4,"feels_like":30.1,"humidity":62,"weather":"cielo claro","icon":"01d"}`, string(raw))
}

func TestWeatherCurrentQueryParameters(t *testing.T) {
	stub := newProviderStub(t, http.StatusOK, owmPayload)
	svc := newWeatherService(stub.server.URL, "k3y")

	_, err := svc.Current(context.Background(), "San José", "CR")
	require.NoError(t, err)

	q := stub.last.Load().(url.Values)
	assert.Equal(t, []string{"San José,CR"}, q["q"])
	assert.Equal(t, []string{"k3y"}, q["appid"])
	assert.Equal(t, []string{"metric"}, q["units"])
	assert.Equal(t, []string{"es"}, q["lang"])
}

func TestWeatherCurrentDefaults(t *testing.T) {
	stub := newProviderStub(t, http.StatusOK, owmPayload)
	svc := newWeatherService(stub.server.URL, "k3y")

	_, err := svc.Current(context.Background(), "", " ")
	require.NoError(t, err)

	q := stub.last.Load().(url.Values)
	assert.Equal(t, []string{"Posadas,AR"}, q["q"])
}

func TestWeatherCurrentMissingNestedData(t *testing.T) {
	stub := newProviderStub(t, http.StatusOK, `{"name":"Nowhere","weather":[]}`)
	svc := newWeatherService(stub.server.URL, "k3y")

	snap, err := svc.Current(context.Background(), "Nowhere", "XX")
	require.NoError(t, err)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{"city":"Nowhere"}`, string(raw))
}

func TestWeatherCurrentUpstreamError(t *testing.T) {
	body := `{"cod":"404","message":"city not found"}`
	stub := newProviderStub(t, http.StatusNotFound, body)
	svc := newWeatherService(stub.server.URL, "k3y")

	_, err := svc.Current(context.Background(), "Atlantis", "XX")
	require.Error(t, err)

	var upstream *appErrors.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusNotFound, upstream.Status)
	assert.Equal(t, body, string(upstream.Body))
	assert.Equal(t, int32(1), stub.hits.Load())
}

func TestWeatherCurrentMalformedPayload(t *testing.T) {
	stub := newProviderStub(t, http.StatusOK, `{"name":`)
	svc := newWeatherService(stub.server.URL, "k3y")

	_, err := svc.Current(context.Background(), "Posadas", "AR")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrWeatherFetch)
	assert.Equal(t, "Error fetching weather", appErrors.FromError(err).Message)
}

func TestWeatherCurrentNetworkError(t *testing.T) {
	stub := newProviderStub(t, http.StatusOK, owmPayload)
	base := stub.server.URL
	stub.server.Close()
	svc := newWeatherService(base, "k3y")

	_, err := svc.Current(context.Background(), "Posadas", "AR")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrWeatherFetch)
}

func TestWeatherCurrentNoRetry(t *testing.T) {
	stub := newProviderStub(t, http.StatusServiceUnavailable, "busy")
	svc := newWeatherService(stub.server.URL, "k3y")

	_, err := svc.Current(context.Background(), "Posadas", "AR")
	require.Error(t, err)
	assert.Equal(t, int32(1), stub.hits.Load())
}
