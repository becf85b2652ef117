package realtime

import (
	"bytes"
	"testing"
)

func TestDecodeServerEventTypedPayloads(t *testing.T) {
	cases := []struct {
		name string
		msg  string
		want ServerEvent
	}{
		{
			name: "session created",
			msg:  `{"type":"session.created","session":{"id":"sess_1"}}`,
			want: SessionCreatedEvent{SessionID: "sess_1"},
		},
		{
			name: "error",
			msg:  `{"type":"error","error":{"code":"rate_limit_exceeded","message":"slow down"}}`,
			want: ErrorEvent{Code: "rate_limit_exceeded", Message: "slow down"},
		},
		{
			name: "buffer committed",
			msg:  `{"type":"input_audio_buffer.committed","item_id":"item_9"}`,
			want: BufferCommittedEvent{ItemID: "item_9"},
		},
		{
			name: "speech started",
			msg:  `{"type":"input_audio_buffer.speech_started","audio_start_ms":120}`,
			want: SpeechStartedEvent{},
		},
		{
			name: "output item added",
			msg:  `{"type":"response.output_item.added","item":{"id":"item_3","type":"message","role":"assistant"}}`,
			want: OutputItemAddedEvent{ItemID: "item_3"},
		},
		{
			name: "user item with transcript content",
			msg:  `{"type":"conversation.item.created","item":{"id":"item_4","role":"user","content":[{"type":"input_audio","transcript":"hello there"}]}}`,
			want: ItemCreatedEvent{ItemID: "item_4", Role: "user", Text: "hello there"},
		},
		{
			name: "assistant item with text content",
			msg:  `{"type":"conversation.item.created","item":{"id":"item_5","role":"assistant","content":[{"type":"text","text":"hi"}]}}`,
			want: ItemCreatedEvent{ItemID: "item_5", Role: "assistant", Text: "hi"},
		},
		{
			name: "audio done",
			msg:  `{"type":"response.audio.done"}`,
			want: AudioDoneEvent{},
		},
		{
			name: "text delta",
			msg:  `{"type":"response.text.delta","delta":"par"}`,
			want: TextDeltaEvent{Delta: "par"},
		},
		{
			name: "text done",
			msg:  `{"type":"response.text.done","text":"partly cloudy"}`,
			want: TextDoneEvent{Text: "partly cloudy"},
		},
		{
			name: "response done",
			msg:  `{"type":"response.done"}`,
			want: ResponseDoneEvent{},
		},
		{
			name: "transcription completed",
			msg:  `{"type":"conversation.item.input_audio_transcription.completed","transcript":"what time is it?"}`,
			want: TranscriptionCompletedEvent{Transcript: "what time is it?"},
		},
		{
			name: "transcription delta",
			msg:  `{"type":"conversation.item.input_audio_transcription.delta","delta":" stop"}`,
			want: TranscriptionDeltaEvent{Delta: " stop"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			event, ok := DecodeServerEvent([]byte(c.msg))
			if !ok {
				t.Fatalf("expected %q to decode", c.msg)
			}
			if event != c.want {
				t.Fatalf("decoded %#v, want %#v", event, c.want)
			}
		})
	}
}

func TestDecodeServerEventAudioDelta(t *testing.T) {
	// base64 of PCM16 [1, -1]
	event, ok := DecodeServerEvent([]byte(`{"type":"response.audio.delta","delta":"AQD//w=="}`))
	if !ok {
		t.Fatalf("expected the audio delta to decode")
	}
	audioDelta, ok := event.(AudioDeltaEvent)
	if !ok {
		t.Fatalf("expected an audio delta event, got %#v", event)
	}
	if !bytes.Equal(audioDelta.Audio, []byte{0x01, 0x00, 0xff, 0xff}) {
		t.Fatalf("unexpected decoded audio %v", audioDelta.Audio)
	}
}

func TestDecodeServerEventRejectsMalformedAndUnknown(t *testing.T) {
	cases := []struct {
		name string
		msg  string
	}{
		{"malformed json", `{"type":"response.done"`},
		{"unknown type", `{"type":"response.function_call_arguments.delta","delta":"{}"}`},
		{"empty type", `{"delta":"x"}`},
		{"invalid base64 audio", `{"type":"response.audio.delta","delta":"not base64!!"}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if event, ok := DecodeServerEvent([]byte(c.msg)); ok {
				t.Fatalf("expected %q to be rejected, got %#v", c.msg, event)
			}
		})
	}
}
