package metrics

import (
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/mayara-radar/mayara/radar"
)

// MQTTEventSink republishes radar.Events to a broker under
// mayara/<brand>-<serial>/..., retained, the same fan-out pattern as the
// teacher's mqtt_publisher.go. It is pure fan-out off the event stream —
// it never feeds back into controller or locator state.
type MQTTEventSink struct {
	client mqtt.Client
	qos    byte
}

// NewMQTTEventSink connects to broker under clientID and returns a sink
// ready for Publish.
func NewMQTTEventSink(broker, clientID string) (*MQTTEventSink, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Println("mayara/mqtt: connected to broker")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("mayara/mqtt: connection lost: %v", err)
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &MQTTEventSink{client: client, qos: 1}, nil
}

type eventPayload struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Publish republishes ev as a retained message. Events that carry no
// useful wire shape (none currently) are silently dropped.
func (s *MQTTEventSink) Publish(ev radar.Event) error {
	topic, payload, ok := topicAndPayload(ev)
	if !ok {
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mqtt marshal: %w", err)
	}
	token := s.client.Publish(topic, s.qos, true, body)
	token.Wait()
	return token.Error()
}

// PublishAll republishes an entire Poll() batch, stopping at the first
// publish error.
func (s *MQTTEventSink) PublishAll(events []radar.Event) error {
	for _, ev := range events {
		if err := s.Publish(ev); err != nil {
			return err
		}
	}
	return nil
}

func topicAndPayload(ev radar.Event) (string, eventPayload, bool) {
	switch e := ev.(type) {
	case radar.StateChangedEvent:
		return fmt.Sprintf("mayara/%s/state", e.Identity.Key()),
			eventPayload{Type: "state_changed", Value: e.State.String()}, true
	case radar.ControlChangedEvent:
		return fmt.Sprintf("mayara/%s/controls/%s", e.Identity.Key(), e.Value.ID),
			eventPayload{Type: "control_changed", Value: e.Value}, true
	case radar.ControlErrorEvent:
		return fmt.Sprintf("mayara/%s/errors/%s", e.Identity.Key(), e.ControlID),
			eventPayload{Type: "control_error", Value: e.Err.Error()}, true
	case radar.RadarFoundEvent:
		return fmt.Sprintf("mayara/%s/found", e.Identity.Key()),
			eventPayload{Type: "radar_found", Value: e.Endpoints}, true
	default:
		return "", eventPayload{}, false
	}
}

// Close disconnects the MQTT client, waiting up to 250ms for in-flight
// publishes to drain.
func (s *MQTTEventSink) Close() {
	s.client.Disconnect(250)
}
