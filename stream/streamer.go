package stream

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// Frame payload encodings.
const (
	FormatJSON   = "json"
	FormatBinary = "binary"
)

const publishTimeout = 5 * time.Second

// Streamer publishes frames to a renderer over MQTT and forwards step
// requests from the control topic.
type Streamer struct {
	client  mqtt.Client
	topic   string
	control string
	format  string
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client) *Streamer {
	s := new(Streamer)
	s.client = client
	s.topic = config.Mqtt.Topics.Stream
	s.control = config.Mqtt.Topics.Control
	s.format = config.Mqtt.Format
	return s
}

func encodeFrame(f *Frame, format string) ([]byte, error) {
	if format == FormatJSON {
		return json.Marshal(f)
	}
	return f.MarshalBinary()
}

// SendFrame publishes a frame on the stream topic.
func (s *Streamer) SendFrame(f *Frame) error {
	b, err := encodeFrame(f, s.format)
	if err != nil {
		return err
	}

	token := s.client.Publish(s.topic, 0, false, b)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", s.topic)
	}
	return token.Error()
}

type controlMessage struct {
	Step string `json:"step"`
}

// parseControl accepts {"step":"tablet"} or a bare step name.
func parseControl(payload []byte) string {
	var msg controlMessage
	if err := json.Unmarshal(payload, &msg); err == nil && msg.Step != "" {
		return msg.Step
	}
	return strings.TrimSpace(string(payload))
}

// Subscribe forwards control topic messages to the controller. It does
// nothing when no control topic is configured.
func (s *Streamer) Subscribe(c *Controller) error {
	if s.control == "" {
		return nil
	}

	handler := func(client mqtt.Client, msg mqtt.Message) {
		log.Printf("Received msg %d on %s: %s", msg.MessageID(), msg.Topic(), msg.Payload())
		c.Request(parseControl(msg.Payload()))
	}

	if token := s.client.Subscribe(s.control, 0, handler); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}
