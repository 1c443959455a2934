package descriptor

import (
	"errors"
	"testing"
)

func TestEncodeDecodeEvents(t *testing.T) {
	events := []Event{
		CreatedEvent{Title: "Acme Corp"},
		UpdatedEvent{Title: "Acme Corporation"},
		DeletedEvent{},
	}
	for _, evt := range events {
		eventType, payloadJSON, err := EncodeEvent(evt)
		if err != nil {
			t.Fatalf("encode %v: %v", evt, err)
		}
		if eventType != evt.Type() {
			t.Fatalf("type = %s, want %s", eventType, evt.Type())
		}
		decoded, err := DecodeEvent(eventType, payloadJSON)
		if err != nil {
			t.Fatalf("decode %v: %v", evt, err)
		}
		if decoded != evt {
			t.Fatalf("decoded = %v, want %v", decoded, evt)
		}
	}
}

func TestEncodeCreatedPayload(t *testing.T) {
	_, payloadJSON, err := EncodeEvent(CreatedEvent{Title: "Acme Corp"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(payloadJSON) != `{"title":"Acme Corp"}` {
		t.Fatalf("payload = %s", payloadJSON)
	}
}

func TestDecodeEventRejectsUnknownType(t *testing.T) {
	_, err := DecodeEvent("tenant.descriptor.renamed", []byte(`{}`))
	if !errors.Is(err, ErrUnknownEventType) {
		t.Fatalf("err = %v, want ErrUnknownEventType", err)
	}
}

func TestDecodeEventRejectsMalformedPayload(t *testing.T) {
	if _, err := DecodeEvent(EventTypeCreated, []byte(`{`)); err == nil {
		t.Fatal("expected decode error")
	}
}
