package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/weatherlab/weather-insights/internal/insight"
	"github.com/weatherlab/weather-insights/internal/store"
	"github.com/weatherlab/weather-insights/internal/weather"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const validResponse = `{"temperature_avg":21,"humidity_avg":50,"wind_avg":5,` +
	`"temperature_trend":"rising","trend_variance":"+2°C/1h","comfort_score":70,` +
	`"day_type":"mild","alerts":[],"summary":"Slight temperature increase.",` +
	`"recommendation":"No action needed.","confidence":90}`

func newTestApp(gen insight.Generator) (*fiber.App, *weather.Service) {
	app := fiber.New()

	readingStore := store.NewReadingStore(100, 0)
	readingsSvc := weather.NewService(readingStore)
	insightsSvc := insight.NewService(readingsSvc, gen, store.NewInsightStore(), 48, time.Second)

	RegisterRoutes(app, readingsSvc, insightsSvc)
	return app, readingsSvc
}

func seedReadings(t *testing.T, svc *weather.Service) {
	t.Helper()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := svc.Ingest(weather.Reading{
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
			Temperature: float64(20 + i),
			Humidity:    50,
			WindSpeed:   5,
		})
		if err != nil {
			t.Fatalf("failed to seed reading: %v", err)
		}
	}
}

func TestCreateReadingValidation(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{response: validResponse})

	// Missing timestamp should return 400.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/readings",
		strings.NewReader(`{"temperature":21.5,"humidity":60,"wind_speed":3}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// A valid body should return 201.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/readings",
		strings.NewReader(`{"timestamp":"2026-03-01T10:00:00Z","temperature":21.5,"humidity":60,"wind_speed":3}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
}

func TestLatestInsightBeforeAnyRun(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{response: validResponse})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/insights/latest", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestTriggerInsightAndFetchLatest(t *testing.T) {
	app, readingsSvc := newTestApp(&stubGenerator{response: validResponse})
	seedReadings(t, readingsSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/insights", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	var created insight.Insight
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" || created.TemperatureTrend != insight.TrendRising {
		t.Fatalf("unexpected created insight: %+v", created)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/insights/latest", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var latest insight.Insight
	if err := json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if latest.ID != created.ID {
		t.Fatalf("expected latest id %q, got %q", created.ID, latest.ID)
	}
}

func TestTriggerInsightEmptyWindow(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{response: validResponse})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/insights", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestTriggerInsightGeneratorDown(t *testing.T) {
	app, readingsSvc := newTestApp(&stubGenerator{err: errors.New("connection refused")})
	seedReadings(t, readingsSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/insights", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
}

func TestTriggerInsightUnusableResponse(t *testing.T) {
	app, readingsSvc := newTestApp(&stubGenerator{response: "sorry, no analysis today"})
	seedReadings(t, readingsSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/insights", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, resp.StatusCode)
	}
}

func TestRecentReadings(t *testing.T) {
	app, readingsSvc := newTestApp(&stubGenerator{response: validResponse})
	seedReadings(t, readingsSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/readings/recent?limit=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Count    int               `json:"count"`
		Readings []weather.Reading `json:"readings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Count != 2 || len(body.Readings) != 2 {
		t.Fatalf("expected 2 readings, got %+v", body)
	}
	if !body.Readings[0].Timestamp.After(body.Readings[1].Timestamp) {
		t.Fatalf("expected newest first, got %v then %v",
			body.Readings[0].Timestamp, body.Readings[1].Timestamp)
	}
}
