package realtime

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// ClientEvent is the closed set of outbound session commands. Events are
// immutable once constructed; ownership passes to the transport on Send.
type ClientEvent interface{ clientEvent() }

type baseEvent struct {
	EventID string `json:"event_id,omitempty"`
	Type    string `json:"type"`
}

func (baseEvent) clientEvent() {}

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{EventID: uuid.NewString(), Type: eventType}
}

type SessionUpdateEvent struct {
	baseEvent
	Session SessionConfig `json:"session"`
}

type AppendAudioEvent struct {
	baseEvent
	Audio string `json:"audio"`
}

type CommitBufferEvent struct{ baseEvent }

type CreateResponseEvent struct{ baseEvent }

type CancelResponseEvent struct{ baseEvent }

type TruncateItemEvent struct {
	baseEvent
	ItemID       string `json:"item_id"`
	ContentIndex int    `json:"content_index"`
	AudioEndMS   int    `json:"audio_end_ms"`
}

func NewSessionUpdate(session SessionConfig) SessionUpdateEvent {
	return SessionUpdateEvent{baseEvent: newBaseEvent("session.update"), Session: session}
}

// NewAppendAudio wraps one chunk of raw PCM16 into an
// input_audio_buffer.append command, base64-encoded for the wire.
func NewAppendAudio(pcm []byte) AppendAudioEvent {
	return AppendAudioEvent{
		baseEvent: newBaseEvent("input_audio_buffer.append"),
		Audio:     base64.StdEncoding.EncodeToString(pcm),
	}
}

func NewCommitBuffer() CommitBufferEvent {
	return CommitBufferEvent{baseEvent: newBaseEvent("input_audio_buffer.commit")}
}

func NewCreateResponse() CreateResponseEvent {
	return CreateResponseEvent{baseEvent: newBaseEvent("response.create")}
}

func NewCancelResponse() CancelResponseEvent {
	return CancelResponseEvent{baseEvent: newBaseEvent("response.cancel")}
}

// NewTruncateItem discards the server-side record of an assistant item's
// audio beyond audioEndMS. Truncating at 0 drops the whole utterance.
func NewTruncateItem(itemID string, contentIndex int, audioEndMS int) TruncateItemEvent {
	return TruncateItemEvent{
		baseEvent:    newBaseEvent("conversation.item.truncate"),
		ItemID:       itemID,
		ContentIndex: contentIndex,
		AudioEndMS:   audioEndMS,
	}
}

// SessionConfig mirrors the session.update payload the service expects.
type SessionConfig struct {
	Modalities              []string             `json:"modalities,omitempty"`
	Voice                   string               `json:"voice,omitempty"`
	Instructions            string               `json:"instructions,omitempty"`
	InputAudioFormat        string               `json:"input_audio_format,omitempty"`
	OutputAudioFormat       string               `json:"output_audio_format,omitempty"`
	InputAudioTranscription *TranscriptionConfig `json:"input_audio_transcription,omitempty"`
	TurnDetection           *TurnDetection       `json:"turn_detection,omitempty"`
}

type TranscriptionConfig struct {
	Model string `json:"model,omitempty"`
}

// TurnDetection configures server-side voice activity detection.
// CreateResponse intentionally serializes even when false: the client owns
// response scheduling and has to switch the server default off.
type TurnDetection struct {
	Type              string  `json:"type,omitempty"`
	Threshold         float64 `json:"threshold,omitempty"`
	PrefixPaddingMS   int     `json:"prefix_padding_ms,omitempty"`
	SilenceDurationMS int     `json:"silence_duration_ms,omitempty"`
	CreateResponse    bool    `json:"create_response"`
}
