package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askilde/dispatchdesk/core/dispatch"
)

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                       { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool   { return true }
func (t *fakeToken) Done() <-chan struct{}            { ch := make(chan struct{}); close(ch); return ch }
func (t *fakeToken) Error() error                     { return t.err }

type fakePublisher struct {
	topics   []string
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload.([]byte))
	return &fakeToken{err: p.err}
}

func (p *fakePublisher) IsConnected() bool { return true }
func (p *fakePublisher) Disconnect(uint)   {}

func TestRunPublishesNotificationsAsJSON(t *testing.T) {
	pub := &fakePublisher{}
	n := NewWithClient(pub, Config{Topic: "ops/notes", QoS: 1})

	ch := make(chan dispatch.Notification, 2)
	ch <- dispatch.Notification{
		Severity: dispatch.SeveritySuccess,
		Message:  "2 routes were assigned",
		Count:    2,
		Time:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	close(ch)

	n.Run(context.Background(), ch)

	require.Len(t, pub.payloads, 1)
	assert.Equal(t, "ops/notes", pub.topics[0])

	var got wireNotification
	require.NoError(t, json.Unmarshal(pub.payloads[0], &got))
	assert.Equal(t, "success", got.Severity)
	assert.Equal(t, "2 routes were assigned", got.Message)
	assert.Equal(t, 2, got.Count)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	pub := &fakePublisher{}
	n := NewWithClient(pub, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := make(chan dispatch.Notification)

	done := make(chan struct{})
	go func() {
		n.Run(ctx, ch)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return on cancel")
	}
	assert.Empty(t, pub.payloads)
}
