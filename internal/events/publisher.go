// Package events announces replicated orders on an MQTT feed consumed by
// the dashboard notification panel.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cetadcco/carwash-pos/internal/models"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const connectTimeout = 5 * time.Second

// Publisher announces order lifecycle events.
type Publisher interface {
	OrderReplicated(order models.Order) error
	Close()
}

// MQTTPublisher publishes order events to an MQTT broker.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
}

// NewMQTTPublisher connects to the broker and returns a publisher.
func NewMQTTPublisher(broker, topic string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("carwash-pos-" + uuid.NewString()[:8]).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect timeout to %s", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}

	return &MQTTPublisher{client: client, topic: topic}, nil
}

// OrderReplicated publishes the replicated order as JSON.
func (p *MQTTPublisher) OrderReplicated(order models.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	token := p.client.Publish(p.topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// NopPublisher discards events; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) OrderReplicated(models.Order) error { return nil }
func (NopPublisher) Close()                             {}
