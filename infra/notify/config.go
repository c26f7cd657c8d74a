package notify

import "fmt"

// Config holds the MQTT notification forwarder settings.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "dispatchdesk-notifier"
	}
	if c.Topic == "" {
		c.Topic = "dispatchdesk/notifications"
	}
}

func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("notifier enabled but broker is empty")
	}
	if c.QoS > 2 {
		return fmt.Errorf("invalid qos %d", c.QoS)
	}
	return nil
}
