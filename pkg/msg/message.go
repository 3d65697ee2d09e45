package msg

import "encoding/json"

type WsMessage struct {
	EventCode EventCode       `json:"eventCode"`
	EventData json.RawMessage `json:"eventData"`
}

// NewWsMessage wraps an event payload into the wire envelope.
func NewWsMessage(code EventCode, event any) (*WsMessage, error) {
	rawEvent, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &WsMessage{
		EventCode: code,
		EventData: rawEvent,
	}, nil
}
