package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/weatherlab/weather-insights/internal/insight"
	"github.com/weatherlab/weather-insights/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, readings *weather.Service, insights *insight.Service) {
	v1 := app.Group("/api/v1")

	v1.Post("/readings", func(c *fiber.Ctx) error {
		var req createReadingRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reading, err := req.toReading()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := readings.Ingest(reading); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(reading)
	})

	v1.Get("/readings/recent", func(c *fiber.Ctx) error {
		limit := 48
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive integer")
			}
			limit = n
		}

		window := readings.RecentWindow(limit)
		return c.JSON(fiber.Map{
			"count":    len(window),
			"readings": window,
		})
	})

	v1.Post("/insights", func(c *fiber.Ctx) error {
		stored, err := insights.Generate(c.Context())
		if err != nil {
			return insightError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(stored)
	})

	v1.Get("/insights/latest", func(c *fiber.Ctx) error {
		latest, ok := insights.Latest()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no insight generated yet")
		}
		return c.JSON(latest)
	})
}

// insightError maps pipeline errors to HTTP status codes: missing input is
// the caller's problem, provider failures are a bad gateway, and a response
// the pipeline could not extract or validate is unprocessable.
func insightError(err error) error {
	if errors.Is(err, insight.ErrEmptyWindow) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var genErr *insight.GenerationError
	if errors.As(err, &genErr) {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	var malformedErr *insight.MalformedJSONError
	var schemaErr *insight.SchemaError
	if errors.Is(err, insight.ErrEmptyResponse) ||
		errors.Is(err, insight.ErrNoJSON) ||
		errors.As(err, &malformedErr) ||
		errors.As(err, &schemaErr) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return fiber.NewError(fiber.StatusInternalServerError, "failed to generate insight")
}

// createReadingRequest is the ingestion body. Timestamp accepts RFC3339 or
// unix seconds, matching what collectors send.
type createReadingRequest struct {
	Timestamp   string            `json:"timestamp" validate:"required"`
	Temperature float64           `json:"temperature"`
	Humidity    float64           `json:"humidity"`
	WindSpeed   float64           `json:"wind_speed"`
	Location    *weather.Location `json:"location"`
}

func (r createReadingRequest) toReading() (weather.Reading, error) {
	ts, err := parseTime(r.Timestamp)
	if err != nil {
		return weather.Reading{}, err
	}
	return weather.Reading{
		Timestamp:   ts,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		WindSpeed:   r.WindSpeed,
		Location:    r.Location,
	}, nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
