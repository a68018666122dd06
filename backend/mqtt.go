package backend

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// samplePayload is the wire form of one published sample. The value is
// kept raw so that both JSON numbers and strings are accepted; whether
// it parses is the graph core's business.
type samplePayload struct {
	TimestampSec float64         `json:"timestamp_s"`
	Series       string          `json:"series"`
	Value        json.RawMessage `json:"value"`
}

// parsePayload decodes one MQTT message into a series name and its raw
// sample value.
func parsePayload(data []byte) (series string, ts float64, raw string, err error) {
	var p samplePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", 0, "", fmt.Errorf("decode sample payload: %w", err)
	}
	if p.Series == "" {
		return "", 0, "", fmt.Errorf("sample payload missing series name")
	}
	raw = strings.Trim(strings.TrimSpace(string(p.Value)), `"`)
	return p.Series, p.TimestampSec, raw, nil
}

// subscriber feeds samples from an MQTT topic into a session's sample
// channel, registering each series name the first time it appears.
type subscriber struct {
	client paho.Client
	topic  string

	mu       sync.Mutex
	seriesID map[string]int
}

func newSubscriber(broker, topic string, nextID func() int, out chan<- InputData) (*subscriber, error) {
	s := &subscriber{
		topic:    topic,
		seriesID: make(map[string]int),
	}
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("metric-scope").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	s.client = paho.NewClient(opts)
	token := s.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	handler := func(_ paho.Client, msg paho.Message) {
		series, ts, raw, err := parsePayload(msg.Payload())
		if err != nil {
			// Malformed messages are dropped, not fatal.
			return
		}
		s.mu.Lock()
		id, known := s.seriesID[series]
		if !known {
			id = nextID()
			s.seriesID[series] = id
		}
		s.mu.Unlock()
		if !known {
			out <- InputData{
				Kind:          KindHeadings,
				Headings:      []string{series},
				HeadingSeries: []int{id},
			}
		}
		out <- InputData{
			Kind: KindSample,
			Sample: Sample{
				TimestampSec: ts,
				Series:       id,
				Raw:          raw,
			},
		}
	}
	subToken := s.client.Subscribe(topic, 0, handler)
	if !subToken.WaitTimeout(10 * time.Second) {
		s.client.Disconnect(250)
		return nil, fmt.Errorf("subscribe timeout")
	}
	if err := subToken.Error(); err != nil {
		s.client.Disconnect(250)
		return nil, fmt.Errorf("subscribe to %q: %w", topic, err)
	}
	return s, nil
}

// Close disconnects from the broker.
func (s *subscriber) Close() {
	s.client.Disconnect(1000)
}
