package conversation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/parlarlabs/parlar/core/audio"
	"github.com/parlarlabs/parlar/core/realtime"
	"go.opentelemetry.io/otel/codes"
)

// Session coordinates one full-duplex voice conversation: it gates and
// forwards captured microphone audio, drives the response lifecycle from
// inbound session events, executes interruptions, and buffers synthesized
// audio for the playback callback.
//
// Contract: call Run at most once per session instance.
type Session struct {
	options sessionOptions

	transport Transport
	state     conversationState
	gate      *captureGate
	playback  *playbackBuffer
	chunker   *audio.Chunker

	// captured hands chunks from the capture callback to the forwarding
	// goroutine; the callback never blocks on it.
	captured chan []byte

	// pullScratch is reused across playback pulls; the playback callback is
	// the only consumer.
	pullScratch []int16

	closeOnce sync.Once
	closed    chan struct{}
}

func NewSession(transport Transport, opts ...SessionOption) *Session {
	options := defaultSessionOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Session{
		options:   options,
		transport: transport,
		gate:      newCaptureGate(options.onsetPeak, options.onsetMinChunks),
		playback:  newPlaybackBuffer(),
		chunker:   audio.NewChunker(options.encodingInfo, options.chunkDuration),
		captured:  make(chan []byte, options.captureQueueSize),
		closed:    make(chan struct{}),
	}
}

// Run pushes the session configuration, starts the capture forwarder, and
// consumes inbound events until the transport fails or ctx is cancelled.
// A transport read failure is fatal to the session; reconnection is the
// caller's concern.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.close()

	ctx, span := tracer.Start(ctx, "run conversation session")
	defer span.End()

	if err := s.configureSession(); err != nil {
		recordedErr := fmt.Errorf("failed to configure session: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return recordedErr
	}

	go s.forwardCapturedAudio(ctx)

	if err := s.transport.Listen(ctx, s.HandleServerEvent); err != nil {
		recordedErr := fmt.Errorf("session receive loop failed: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return recordedErr
	}
	return nil
}

func (s *Session) close() {
	s.closeOnce.Do(func() { close(s.closed) })
}

func (s *Session) configureSession() error {
	encodingFormat := s.options.encodingInfo.Format.Name()
	return s.transport.Send(realtime.NewSessionUpdate(realtime.SessionConfig{
		Modalities:              []string{"audio", "text"},
		Voice:                   s.options.voice,
		Instructions:            s.options.instructions,
		InputAudioFormat:        encodingFormat,
		OutputAudioFormat:       encodingFormat,
		InputAudioTranscription: &realtime.TranscriptionConfig{Model: s.options.transcriptionModel},
		TurnDetection: &realtime.TurnDetection{
			Type:              "server_vad",
			Threshold:         s.options.vadThreshold,
			PrefixPaddingMS:   int(defaultVADPrefixPadding / time.Millisecond),
			SilenceDurationMS: int(s.options.vadSilence / time.Millisecond),
			CreateResponse:    false,
		},
	}))
}

// OnCapturedAudio accepts raw PCM16 from the capture device callback. It
// only reslices into fixed-duration chunks and enqueues; chunks are dropped
// rather than ever blocking the hardware clock.
func (s *Session) OnCapturedAudio(pcm []byte) {
	s.chunker.Push(pcm, func(chunk []byte) {
		owned := make([]byte, len(chunk))
		copy(owned, chunk)

		select {
		case s.captured <- owned:
		default:
		}
	})
}

// forwardCapturedAudio drains captured chunks, applies the onset gate, and
// forwards passing chunks to the transport.
func (s *Session) forwardCapturedAudio(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closed:
			return
		case chunk := <-s.captured:
			level := audio.PeakLevelPCM16(chunk)
			s.state.noteMicChunk(level, len(chunk))

			if !s.gate.forward(level, s.state.assistantSpeaking()) {
				continue
			}

			if err := s.transport.Send(realtime.NewAppendAudio(chunk)); err != nil {
				logger.Error("failed to forward captured audio, stopping capture path", "error", err)
				return
			}
		}
	}
}

// PullPlayback fills out with buffered assistant audio for one playback
// cycle, zero-filling on underrun. Bounded time, safe for the device
// callback.
func (s *Session) PullPlayback(out []byte) {
	sampleCount := len(out) / 2
	if cap(s.pullScratch) < sampleCount {
		s.pullScratch = make([]int16, sampleCount)
	}
	samples := s.pullScratch[:sampleCount]

	s.playback.pull(samples)
	for i, sample := range samples {
		out[i*2] = byte(sample)
		out[i*2+1] = byte(sample >> 8)
	}

	s.state.noteSpeakerPull(audio.PeakLevel(samples), len(out))
}

// Interrupt cancels the in-flight assistant response, if any. This is the
// manual analog of the speech-started and keyword interruption paths.
func (s *Session) Interrupt() {
	s.interrupt(InterruptReasonManual, false)
}

// Snapshot returns a point-in-time copy of the observable conversation
// state, for meters and transcript display.
func (s *Session) Snapshot() Snapshot {
	return s.state.snapshot()
}

// BufferedPlaybackSamples reports how much synthesized audio is queued but
// not yet played.
func (s *Session) BufferedPlaybackSamples() int {
	return s.playback.buffered()
}
