package realtime

import (
	"encoding/base64"
	"encoding/json"
)

// Wire discriminators for the server events the client understands.
const (
	typeSessionCreated         = "session.created"
	typeError                  = "error"
	typeBufferCommitted        = "input_audio_buffer.committed"
	typeSpeechStarted          = "input_audio_buffer.speech_started"
	typeOutputItemAdded        = "response.output_item.added"
	typeItemCreated            = "conversation.item.created"
	typeAudioDelta             = "response.audio.delta"
	typeAudioDone              = "response.audio.done"
	typeTextDelta              = "response.text.delta"
	typeTextDone               = "response.text.done"
	typeResponseDone           = "response.done"
	typeTranscriptionCompleted = "conversation.item.input_audio_transcription.completed"
	typeTranscriptionDelta     = "conversation.item.input_audio_transcription.delta"
)

// ServerEvent is the closed set of inbound session events. Payloads the
// decoder does not recognize never reach a handler.
type ServerEvent interface{ serverEvent() }

type SessionCreatedEvent struct{ SessionID string }

type ErrorEvent struct {
	Code    string
	Message string
}

// BufferCommittedEvent signals that server-side voice activity detection has
// closed the current user utterance.
type BufferCommittedEvent struct{ ItemID string }

type SpeechStartedEvent struct{}

type OutputItemAddedEvent struct{ ItemID string }

type ItemCreatedEvent struct {
	ItemID string
	Role   string
	// Text carries the finalized transcript or text of the item's first
	// content part, when present.
	Text string
}

type AudioDeltaEvent struct{ Audio []byte }

type AudioDoneEvent struct{}

type TextDeltaEvent struct{ Delta string }

type TextDoneEvent struct{ Text string }

type ResponseDoneEvent struct{}

type TranscriptionCompletedEvent struct{ Transcript string }

type TranscriptionDeltaEvent struct{ Delta string }

func (SessionCreatedEvent) serverEvent()         {}
func (ErrorEvent) serverEvent()                  {}
func (BufferCommittedEvent) serverEvent()        {}
func (SpeechStartedEvent) serverEvent()          {}
func (OutputItemAddedEvent) serverEvent()        {}
func (ItemCreatedEvent) serverEvent()            {}
func (AudioDeltaEvent) serverEvent()             {}
func (AudioDoneEvent) serverEvent()              {}
func (TextDeltaEvent) serverEvent()              {}
func (TextDoneEvent) serverEvent()               {}
func (ResponseDoneEvent) serverEvent()           {}
func (TranscriptionCompletedEvent) serverEvent() {}
func (TranscriptionDeltaEvent) serverEvent()     {}

type serverEnvelope struct {
	Type       string `json:"type"`
	EventID    string `json:"event_id"`
	ItemID     string `json:"item_id"`
	Delta      string `json:"delta"`
	Transcript string `json:"transcript"`
	Text       string `json:"text"`
	Error      struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Session struct {
		ID string `json:"id"`
	} `json:"session"`
	Item struct {
		ID      string `json:"id"`
		Type    string `json:"type"`
		Role    string `json:"role"`
		Content []struct {
			Type       string `json:"type"`
			Text       string `json:"text"`
			Transcript string `json:"transcript"`
		} `json:"content"`
	} `json:"item"`
}

// DecodeServerEvent parses one text frame into a typed event. It reports
// false for malformed payloads and for event types outside the closed set,
// leaving the caller free to skip them.
func DecodeServerEvent(msg []byte) (ServerEvent, bool) {
	var envelope serverEnvelope
	if err := json.Unmarshal(msg, &envelope); err != nil {
		return nil, false
	}

	switch envelope.Type {
	case typeSessionCreated:
		return SessionCreatedEvent{SessionID: envelope.Session.ID}, true
	case typeError:
		return ErrorEvent{Code: envelope.Error.Code, Message: envelope.Error.Message}, true
	case typeBufferCommitted:
		return BufferCommittedEvent{ItemID: envelope.ItemID}, true
	case typeSpeechStarted:
		return SpeechStartedEvent{}, true
	case typeOutputItemAdded:
		return OutputItemAddedEvent{ItemID: envelope.Item.ID}, true
	case typeItemCreated:
		event := ItemCreatedEvent{ItemID: envelope.Item.ID, Role: envelope.Item.Role}
		if len(envelope.Item.Content) > 0 {
			if transcript := envelope.Item.Content[0].Transcript; transcript != "" {
				event.Text = transcript
			} else {
				event.Text = envelope.Item.Content[0].Text
			}
		}
		return event, true
	case typeAudioDelta:
		pcm, err := base64.StdEncoding.DecodeString(envelope.Delta)
		if err != nil {
			return nil, false
		}
		return AudioDeltaEvent{Audio: pcm}, true
	case typeAudioDone:
		return AudioDoneEvent{}, true
	case typeTextDelta:
		return TextDeltaEvent{Delta: envelope.Delta}, true
	case typeTextDone:
		return TextDoneEvent{Text: envelope.Text}, true
	case typeResponseDone:
		return ResponseDoneEvent{}, true
	case typeTranscriptionCompleted:
		return TranscriptionCompletedEvent{Transcript: envelope.Transcript}, true
	case typeTranscriptionDelta:
		return TranscriptionDeltaEvent{Delta: envelope.Delta}, true
	}

	return nil, false
}
