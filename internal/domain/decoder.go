// Package domain contains the event decoder, the event-to-tree reducer and
// the read-only query helpers that form the core of the parser.
package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	m "github.com/fenv-org/flutter-test-output-parser/internal/model"
)

// envelope extracts the tag before the payload is decoded in full.
type envelope struct {
	Type string `json:"type"`
}

const maxErrInput = 120

// DecodeEvent turns one line of machine output into exactly one event.
// Unknown tags decode into an UnknownEvent so newer producers do not break
// this consumer; anything undecodable fails with a MalformedEventError.
func DecodeEvent(line string) (m.Event, error) {
	data := []byte(line)

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, malformed(line, err)
	}

	if env.Type == "" {
		return nil, malformed(line, fmt.Errorf("missing event type"))
	}

	event, err := decodePayload(m.EventType(env.Type), data)
	if err != nil {
		return nil, malformed(line, err)
	}

	return event, nil
}

func decodePayload(kind m.EventType, data []byte) (m.Event, error) {
	switch kind {
	case m.EventStart:
		return unmarshalEvent(data, &m.StartEvent{})
	case m.EventSuite:
		return unmarshalEvent(data, &m.SuiteEvent{})
	case m.EventGroup:
		return unmarshalEvent(data, &m.GroupEvent{})
	case m.EventTestStart:
		return unmarshalEvent(data, &m.TestStartEvent{})
	case m.EventTest:
		return unmarshalEvent(data, &m.TestEvent{})
	case m.EventTestDone:
		return unmarshalEvent(data, &m.TestDoneEvent{})
	case m.EventPrint:
		return unmarshalEvent(data, &m.PrintEvent{})
	case m.EventError:
		return unmarshalEvent(data, &m.ErrorEvent{})
	case m.EventAllSuites:
		return unmarshalEvent(data, &m.AllSuitesEvent{})
	case m.EventDone:
		return unmarshalEvent(data, &m.DoneEvent{})
	default:
		unknown, err := unmarshalEvent(data, &m.UnknownEvent{})
		if err != nil {
			return nil, err
		}

		unknown.Payload = json.RawMessage(data)

		return unknown, nil
	}
}

func unmarshalEvent[E m.Event](data []byte, event E) (E, error) {
	if err := json.Unmarshal(data, event); err != nil {
		var zero E
		return zero, err
	}

	return event, nil
}

func malformed(line string, err error) error {
	input := strings.TrimSpace(line)
	if len(input) > maxErrInput {
		input = input[:maxErrInput] + "…"
	}

	return &MalformedEventError{Input: input, Err: err}
}
