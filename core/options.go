package conversation

import (
	"context"
	"time"

	"github.com/parlarlabs/parlar/core/audio"
	"github.com/parlarlabs/parlar/core/realtime"
)

// Transport is the duplex session channel the pipeline talks through.
// Commands are delivered to the wire in Send order; Listen dispatches
// inbound events in arrival order from a single reader.
type Transport interface {
	Send(event realtime.ClientEvent) error
	Listen(ctx context.Context, handler func(realtime.ServerEvent)) error
}

const (
	defaultChunkDuration      = 20 * time.Millisecond
	defaultOnsetPeak          = 0.22
	defaultOnsetMinChunks     = 2
	defaultCancelCooldown     = 400 * time.Millisecond
	defaultResponseDelayShort = 200 * time.Millisecond
	defaultResponseDelayLong  = 700 * time.Millisecond
	defaultVADThreshold       = 0.55
	defaultVADSilence         = 350 * time.Millisecond
	defaultVADPrefixPadding   = 100 * time.Millisecond
	defaultVoice              = "alloy"
	defaultInstructions       = "You are a concise, helpful assistant."
	defaultTranscriptionModel = "whisper-1"
	defaultCaptureQueueSize   = 96
)

type sessionOptions struct {
	encodingInfo  audio.EncodingInfo
	chunkDuration time.Duration

	onsetPeak      float64
	onsetMinChunks int

	cancelCooldown     time.Duration
	responseDelayShort time.Duration
	responseDelayLong  time.Duration

	vadThreshold float64
	vadSilence   time.Duration

	voice              string
	instructions       string
	transcriptionModel string

	captureQueueSize int

	onUserTranscript func(transcript string)
	onAssistantText  func(delta string)
	onInterruption   func(reason InterruptReason)
	onSessionError   func(code string, message string)
}

func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		encodingInfo:       audio.GetDefaultEncodingInfo(),
		chunkDuration:      defaultChunkDuration,
		onsetPeak:          defaultOnsetPeak,
		onsetMinChunks:     defaultOnsetMinChunks,
		cancelCooldown:     defaultCancelCooldown,
		responseDelayShort: defaultResponseDelayShort,
		responseDelayLong:  defaultResponseDelayLong,
		vadThreshold:       defaultVADThreshold,
		vadSilence:         defaultVADSilence,
		voice:              defaultVoice,
		instructions:       defaultInstructions,
		transcriptionModel: defaultTranscriptionModel,
		captureQueueSize:   defaultCaptureQueueSize,
	}
}

type SessionOption func(*sessionOptions)

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SessionOption {
	return func(o *sessionOptions) { o.encodingInfo = encodingInfo }
}

func WithChunkDuration(chunkDuration time.Duration) SessionOption {
	return func(o *sessionOptions) { o.chunkDuration = chunkDuration }
}

// WithOnsetGate tunes echo suppression while the assistant speaks: captured
// chunks are only forwarded after loudness of at least onsetPeak for
// minChunks consecutive chunks.
func WithOnsetGate(onsetPeak float64, minChunks int) SessionOption {
	return func(o *sessionOptions) {
		o.onsetPeak = onsetPeak
		o.onsetMinChunks = minChunks
	}
}

func WithCancelCooldown(cooldown time.Duration) SessionOption {
	return func(o *sessionOptions) { o.cancelCooldown = cooldown }
}

// WithResponseDelays sets the adaptive pause between a committed user turn
// and response creation: short when the utterance ends in terminal
// punctuation, long otherwise.
func WithResponseDelays(short, long time.Duration) SessionOption {
	return func(o *sessionOptions) {
		o.responseDelayShort = short
		o.responseDelayLong = long
	}
}

func WithVoiceActivityDetection(threshold float64, silence time.Duration) SessionOption {
	return func(o *sessionOptions) {
		o.vadThreshold = threshold
		o.vadSilence = silence
	}
}

func WithVoice(voice string) SessionOption {
	return func(o *sessionOptions) { o.voice = voice }
}

func WithInstructions(instructions string) SessionOption {
	return func(o *sessionOptions) { o.instructions = instructions }
}

func WithUserTranscriptCallback(callback func(transcript string)) SessionOption {
	return func(o *sessionOptions) { o.onUserTranscript = callback }
}

func WithAssistantTextCallback(callback func(delta string)) SessionOption {
	return func(o *sessionOptions) { o.onAssistantText = callback }
}

func WithInterruptionCallback(callback func(reason InterruptReason)) SessionOption {
	return func(o *sessionOptions) { o.onInterruption = callback }
}

func WithSessionErrorCallback(callback func(code string, message string)) SessionOption {
	return func(o *sessionOptions) { o.onSessionError = callback }
}
