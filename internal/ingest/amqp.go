package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/weatherlab/weather-insights/internal/weather"
)

var validate = validator.New()

// readingPayload is the wire shape collectors publish to the queue.
type readingPayload struct {
	Timestamp   string            `json:"timestamp" validate:"required"`
	Temperature float64           `json:"temperature"`
	Humidity    float64           `json:"humidity"`
	WindSpeed   float64           `json:"wind_speed"`
	Location    *weather.Location `json:"location"`
}

// Consumer ingests sensor readings published to a RabbitMQ queue and stores
// them through the readings service.
type Consumer struct {
	url     string
	queue   string
	service *weather.Service

	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewConsumer creates a consumer for the given AMQP endpoint and queue.
func NewConsumer(url, queue string, service *weather.Service) *Consumer {
	return &Consumer{
		url:     url,
		queue:   queue,
		service: service,
	}
}

// Start connects, declares the queue, and consumes deliveries until the
// context is cancelled. Malformed messages are rejected without requeue.
func (c *Consumer) Start(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	c.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	c.ch = ch

	q, err := ch.QueueDeclare(c.queue, true, false, false, false, nil)
	if err != nil {
		c.Close()
		return fmt.Errorf("declare queue %q: %w", c.queue, err)
	}

	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		c.Close()
		return fmt.Errorf("consume queue %q: %w", c.queue, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				c.handle(d)
			}
		}
	}()

	log.Printf("ingest: consuming readings from queue %q", c.queue)
	return nil
}

// Close tears down the channel and connection.
func (c *Consumer) Close() {
	if c.ch != nil {
		c.ch.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}

func (c *Consumer) handle(d amqp.Delivery) {
	var payload readingPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		log.Printf("ingest: dropping unparsable message: %v", err)
		d.Nack(false, false)
		return
	}

	if err := validate.Struct(payload); err != nil {
		log.Printf("ingest: dropping invalid message: %v", err)
		d.Nack(false, false)
		return
	}

	ts, err := time.Parse(time.RFC3339, payload.Timestamp)
	if err != nil {
		log.Printf("ingest: dropping message with bad timestamp %q: %v", payload.Timestamp, err)
		d.Nack(false, false)
		return
	}

	reading := weather.Reading{
		Timestamp:   ts,
		Temperature: payload.Temperature,
		Humidity:    payload.Humidity,
		WindSpeed:   payload.WindSpeed,
		Location:    payload.Location,
	}

	if err := c.service.Ingest(reading); err != nil {
		log.Printf("ingest: failed to store reading: %v", err)
		d.Nack(false, false)
		return
	}

	d.Ack(false)
}
