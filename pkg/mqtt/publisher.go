package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/M17-Project/m17-core-go/pkg/logger"
)

// Config holds MQTT publisher configuration
type Config struct {
	Enabled     bool
	Broker      string
	TopicPrefix string
	ClientID    string
	Username    string
	Password    string
	QoS         byte
	Retained    bool
}

// Publisher handles MQTT event publishing
type Publisher struct {
	config Config
	log    *logger.Logger
}

// Event types for MQTT publishing

// StationHeardEvent represents a decoded stream's LSF source/destination.
type StationHeardEvent struct {
	Callsign    string    `json:"callsign"`
	Destination string    `json:"destination"`
	StreamID    uint16    `json:"stream_id"`
	CAN         int       `json:"can"`
	Timestamp   time.Time `json:"timestamp"`
}

// StreamEndedEvent represents the end of a decoded voice/data stream.
type StreamEndedEvent struct {
	StreamID   uint16    `json:"stream_id"`
	Duration   float64   `json:"duration"`
	FrameCount int       `json:"frame_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// TextMessageEvent represents a fully reassembled LSF META text message.
type TextMessageEvent struct {
	Src       string    `json:"src"`
	Dst       string    `json:"dst"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// DecodeFailureEvent represents a FEC or CRC failure surfaced to operators.
type DecodeFailureEvent struct {
	Kind      string    `json:"kind"`
	StreamID  uint16    `json:"stream_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ReflectorStatusEvent represents a change in the upstream reflector link.
type ReflectorStatusEvent struct {
	Connected bool      `json:"connected"`
	Addr      string    `json:"addr"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a new MQTT publisher
func New(config Config, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.New(logger.Config{Level: "info", Format: "text"})
	}

	return &Publisher{
		config: config,
		log:    log.WithComponent("mqtt"),
	}
}

// Start starts the MQTT publisher
func (p *Publisher) Start(ctx context.Context) error {
	if !p.config.Enabled {
		p.log.Info("mqtt publisher disabled")
		return nil
	}

	p.log.Info("starting mqtt publisher",
		logger.String("broker", p.config.Broker),
		logger.String("client_id", p.config.ClientID))

	// TODO: implement actual MQTT connection when paho.mqtt library is added
	// For now, this is a no-op stub that allows the application to start
	p.log.Warn("mqtt connection not yet implemented - events will not be published")

	return nil
}

// Stop stops the MQTT publisher
func (p *Publisher) Stop() {
	if !p.config.Enabled {
		return
	}

	p.log.Info("stopping mqtt publisher")
	// TODO: disconnect MQTT client when implemented
}

// PublishStationHeard publishes a station-heard event
func (p *Publisher) PublishStationHeard(event StationHeardEvent) error {
	if !p.config.Enabled {
		return nil
	}

	topic := p.formatTopic("stations/heard")
	return p.publish(topic, event)
}

// PublishStreamEnded publishes a stream-ended event
func (p *Publisher) PublishStreamEnded(event StreamEndedEvent) error {
	if !p.config.Enabled {
		return nil
	}

	topic := p.formatTopic("streams/ended")
	return p.publish(topic, event)
}

// PublishTextMessage publishes a reassembled text message event
func (p *Publisher) PublishTextMessage(event TextMessageEvent) error {
	if !p.config.Enabled {
		return nil
	}

	topic := p.formatTopic("messages")
	return p.publish(topic, event)
}

// PublishDecodeFailure publishes a FEC/CRC decode failure event
func (p *Publisher) PublishDecodeFailure(event DecodeFailureEvent) error {
	if !p.config.Enabled {
		return nil
	}

	topic := p.formatTopic("decode/failure")
	return p.publish(topic, event)
}

// PublishReflectorStatus publishes a reflector link status change
func (p *Publisher) PublishReflectorStatus(event ReflectorStatusEvent) error {
	if !p.config.Enabled {
		return nil
	}

	topic := p.formatTopic("reflector/status")
	return p.publish(topic, event)
}

// publish publishes an event to a topic
func (p *Publisher) publish(topic string, event interface{}) error {
	payload, err := p.serializeEvent(event)
	if err != nil {
		p.log.Error("failed to serialize event",
			logger.String("topic", topic),
			logger.Error(err))
		return err
	}

	// TODO: implement actual MQTT publish when paho.mqtt library is added
	p.log.Debug("would publish mqtt event",
		logger.String("topic", topic),
		logger.Int("payload_size", len(payload)))

	return nil
}

// serializeEvent serializes an event to JSON
func (p *Publisher) serializeEvent(event interface{}) ([]byte, error) {
	return json.Marshal(event)
}

// formatTopic formats a topic with the configured prefix
func (p *Publisher) formatTopic(suffix string) string {
	prefix := strings.TrimSuffix(p.config.TopicPrefix, "/")
	if prefix == "" {
		return suffix
	}
	return fmt.Sprintf("%s/%s", prefix, suffix)
}
