package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownEventType indicates a stored event type this package does not own.
var ErrUnknownEventType = errors.New("unknown tenant descriptor event type")

// TitlePayload captures the stored payload for created and updated events.
type TitlePayload struct {
	Title string `json:"title"`
}

// EncodeEvent returns the stored type and JSON payload for evt.
func EncodeEvent(evt Event) (Type, []byte, error) {
	var payload any
	switch e := evt.(type) {
	case CreatedEvent:
		payload = TitlePayload{Title: e.Title}
	case UpdatedEvent:
		payload = TitlePayload{Title: e.Title}
	case DeletedEvent:
		payload = struct{}{}
	default:
		return "", nil, fmt.Errorf("encode %T: %w", evt, ErrUnknownEventType)
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", nil, fmt.Errorf("encode %s payload: %w", evt.Type(), err)
	}
	return evt.Type(), payloadJSON, nil
}

// DecodeEvent rebuilds an event from its stored type and JSON payload.
func DecodeEvent(eventType Type, payloadJSON []byte) (Event, error) {
	switch eventType {
	case EventTypeCreated, EventTypeUpdated:
		var payload TitlePayload
		if err := json.Unmarshal(payloadJSON, &payload); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", eventType, err)
		}
		if eventType == EventTypeCreated {
			return CreatedEvent{Title: payload.Title}, nil
		}
		return UpdatedEvent{Title: payload.Title}, nil
	case EventTypeDeleted:
		return DeletedEvent{}, nil
	default:
		return nil, fmt.Errorf("decode %q: %w", eventType, ErrUnknownEventType)
	}
}
