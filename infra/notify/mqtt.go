// Package notify forwards dispatch notifications to an MQTT topic so
// operator dashboards can subscribe to assignment outcomes.
package notify

import (
	"context"
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/askilde/dispatchdesk/core/dispatch"
	"github.com/askilde/dispatchdesk/infra/logger"
)

// Publisher is the subset of the paho client the notifier needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	IsConnected() bool
	Disconnect(uint)
}

// Notifier drains a notification bus and publishes each entry as JSON.
type Notifier struct {
	client Publisher
	topic  string
	qos    byte
	log    logger.Logger
}

// New connects to the broker and returns a ready notifier.
func New(cfg Config) (*Notifier, error) {
	cfg.SetDefaults()
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return NewWithClient(client, cfg), nil
}

// NewWithClient wraps an existing client, used in tests.
func NewWithClient(client Publisher, cfg Config) *Notifier {
	cfg.SetDefaults()
	return &Notifier{
		client: client,
		topic:  cfg.Topic,
		qos:    cfg.QoS,
		log:    logger.New("notifier"),
	}
}

type wireNotification struct {
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Count    int       `json:"count,omitempty"`
	Time     time.Time `json:"time"`
}

// Run consumes the channel until it closes or the context is cancelled.
// Publish failures are logged and do not stop the loop.
func (n *Notifier) Run(ctx context.Context, ch <-chan dispatch.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case note, ok := <-ch:
			if !ok {
				return
			}
			n.publish(note)
		}
	}
}

func (n *Notifier) publish(note dispatch.Notification) {
	payload, err := json.Marshal(wireNotification{
		Severity: note.Severity.String(),
		Message:  note.Message,
		Count:    note.Count,
		Time:     note.Time,
	})
	if err != nil {
		n.log.Errorf("encode notification: %v", err)
		return
	}
	token := n.client.Publish(n.topic, n.qos, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		n.log.Errorf("publish notification: %v", err)
	}
}

// Close disconnects from the broker.
func (n *Notifier) Close() {
	if n.client.IsConnected() {
		n.client.Disconnect(250)
	}
}
