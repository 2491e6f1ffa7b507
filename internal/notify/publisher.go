package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/PratikDhanave/pet-feeder-service/internal/config"
	"github.com/PratikDhanave/pet-feeder-service/internal/feedtime"
	"github.com/PratikDhanave/pet-feeder-service/internal/models"
)

// Schedule actions carried in schedule messages.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultPublishTimeout = 3 * time.Second
	disconnectQuiesceMS   = 250
)

// Publisher sends write notifications to feeders.
type Publisher interface {
	FeedingRecorded(ctx context.Context, ev models.FeedingEvent) error
	ScheduleChanged(ctx context.Context, feederID int64, action string, at feedtime.Time) error
	Close()
}

// Nop discards every notification. Used when MQTT is disabled.
type Nop struct{}

func (Nop) FeedingRecorded(context.Context, models.FeedingEvent) error { return nil }

func (Nop) ScheduleChanged(context.Context, int64, string, feedtime.Time) error { return nil }

func (Nop) Close() {}

// mqttClient is the subset of pahomqtt.Client the publisher needs.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
	Disconnect(quiesce uint)
}

// MQTTPublisher publishes notifications through an MQTT broker.
type MQTTPublisher struct {
	client  mqttClient
	topics  Topics
	qos     byte
	timeout time.Duration
}

// Connect dials the broker described by cfg. The paho client reconnects on
// its own after the first successful connection.
func Connect(cfg config.MQTTConfig) (*MQTTPublisher, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(defaultConnectTimeout).
		SetKeepAlive(60 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return newMQTTPublisher(client, cfg), nil
}

func newMQTTPublisher(client mqttClient, cfg config.MQTTConfig) *MQTTPublisher {
	return &MQTTPublisher{
		client:  client,
		topics:  Topics{Prefix: cfg.TopicPrefix},
		qos:     byte(cfg.QoS),
		timeout: defaultPublishTimeout,
	}
}

// FeedingRecorded publishes ev to the feeder's events topic.
func (p *MQTTPublisher) FeedingRecorded(ctx context.Context, ev models.FeedingEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return p.publish(ctx, p.topics.Events(ev.FeederID), payload)
}

// scheduleMessage is the body sent on the schedule topic.
type scheduleMessage struct {
	FeederID  int64         `json:"feeder_id"`
	Action    string        `json:"action"`
	Time      feedtime.Time `json:"time"`
	ChangedAt time.Time     `json:"changed_at"`
}

// ScheduleChanged publishes a created/deleted message for one slot.
func (p *MQTTPublisher) ScheduleChanged(ctx context.Context, feederID int64, action string, at feedtime.Time) error {
	payload, err := json.Marshal(scheduleMessage{
		FeederID:  feederID,
		Action:    action,
		Time:      at,
		ChangedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return p.publish(ctx, p.topics.Schedule(feederID), payload)
}

func (p *MQTTPublisher) publish(ctx context.Context, topic string, payload []byte) error {
	token := p.client.Publish(topic, p.qos, false, payload)

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
	case <-timer.C:
		return fmt.Errorf("%w: %s: timeout after %v", ErrPublishFailed, topic, p.timeout)
	case <-ctx.Done():
		return fmt.Errorf("%w: %s: %w", ErrPublishFailed, topic, ctx.Err())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublishFailed, topic, err)
	}
	return nil
}

// Close disconnects from the broker after in-flight messages drain.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(disconnectQuiesceMS)
}
