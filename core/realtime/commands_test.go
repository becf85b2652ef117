package realtime

import (
	"encoding/json"
	"strings"
	"testing"
)

func marshalToMap(t *testing.T, event ClientEvent) map[string]any {
	t.Helper()
	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal %#v: %v", event, err)
	}
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		t.Fatalf("failed to unmarshal %s: %v", payload, err)
	}
	return fields
}

func TestNewAppendAudioEncodesPCM(t *testing.T) {
	fields := marshalToMap(t, NewAppendAudio([]byte{0x01, 0x00, 0xff, 0xff}))

	if fields["type"] != "input_audio_buffer.append" {
		t.Fatalf("unexpected type %v", fields["type"])
	}
	if fields["audio"] != "AQD//w==" {
		t.Fatalf("unexpected audio payload %v", fields["audio"])
	}
	if eventID, _ := fields["event_id"].(string); eventID == "" {
		t.Fatalf("expected a generated event id")
	}
}

func TestNewTruncateItemCarriesTarget(t *testing.T) {
	fields := marshalToMap(t, NewTruncateItem("item_2", 0, 0))

	if fields["type"] != "conversation.item.truncate" {
		t.Fatalf("unexpected type %v", fields["type"])
	}
	if fields["item_id"] != "item_2" {
		t.Fatalf("unexpected item id %v", fields["item_id"])
	}
	if fields["content_index"] != float64(0) || fields["audio_end_ms"] != float64(0) {
		t.Fatalf("expected truncation at the item start, got %v", fields)
	}
}

func TestCommandTypes(t *testing.T) {
	cases := []struct {
		event ClientEvent
		want  string
	}{
		{NewCommitBuffer(), "input_audio_buffer.commit"},
		{NewCreateResponse(), "response.create"},
		{NewCancelResponse(), "response.cancel"},
	}
	for _, c := range cases {
		if fields := marshalToMap(t, c.event); fields["type"] != c.want {
			t.Errorf("expected type %q, got %v", c.want, fields["type"])
		}
	}
}

func TestSessionUpdateSerializesCreateResponseOff(t *testing.T) {
	payload, err := json.Marshal(NewSessionUpdate(SessionConfig{
		Voice: "alloy",
		TurnDetection: &TurnDetection{
			Type:           "server_vad",
			Threshold:      0.55,
			CreateResponse: false,
		},
	}))
	if err != nil {
		t.Fatalf("failed to marshal session update: %v", err)
	}

	// The field has to be on the wire even when false, otherwise the server
	// default keeps auto-creating responses.
	if !strings.Contains(string(payload), `"create_response":false`) {
		t.Fatalf("expected create_response to serialize explicitly, got %s", payload)
	}
}
