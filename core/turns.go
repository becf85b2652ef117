package conversation

import (
	"time"

	"github.com/parlarlabs/parlar/core/audio"
	"github.com/parlarlabs/parlar/core/realtime"
)

// InterruptReason records which path cancelled an assistant response.
type InterruptReason string

const (
	// InterruptReasonSpeech is a server-side voice activity detection of the
	// user talking over the assistant.
	InterruptReasonSpeech InterruptReason = "speech"
	// InterruptReasonKeyword is a trigger phrase in the partial transcript.
	InterruptReasonKeyword InterruptReason = "keyword"
	// InterruptReasonManual is an explicit user command.
	InterruptReasonManual InterruptReason = "manual"
)

// Error codes the session tolerates. A cancel racing a natural completion
// is expected, not a fault.
const errorCodeCancelNotActive = "response_cancel_not_active"

// HandleServerEvent applies one inbound session event to the conversation
// lifecycle. Events must be delivered in arrival order by a single caller;
// the transport's receive loop satisfies both.
func (s *Session) HandleServerEvent(event realtime.ServerEvent) {
	switch event := event.(type) {
	case realtime.SessionCreatedEvent:
		// Nothing to apply; the session configuration was already pushed.

	case realtime.ErrorEvent:
		s.handleSessionError(event)

	case realtime.BufferCommittedEvent:
		s.scheduleResponse()

	case realtime.OutputItemAddedEvent:
		s.state.noteAssistantItem(event.ItemID)

	case realtime.ItemCreatedEvent:
		switch event.Role {
		case "assistant":
			s.state.noteAssistantItem(event.ItemID)
		case "user":
			// Surface the finalized user text for observation only; response
			// scheduling is driven solely by buffer-committed so a turn never
			// triggers twice.
			if event.Text != "" {
				s.state.recordUserTranscript(event.Text)
				if s.options.onUserTranscript != nil {
					s.options.onUserTranscript(event.Text)
				}
			}
		}

	case realtime.AudioDeltaEvent:
		s.state.markResponseActive()
		s.playback.push(audio.DecodePCM16(event.Audio))

	case realtime.AudioDoneEvent:
		s.state.finishResponse()

	case realtime.TextDeltaEvent:
		s.state.appendAssistantText(event.Delta)
		if s.options.onAssistantText != nil {
			s.options.onAssistantText(event.Delta)
		}

	case realtime.TextDoneEvent:
		s.state.clearInflight()

	case realtime.ResponseDoneEvent:
		s.state.finishResponse()

	case realtime.SpeechStartedEvent:
		s.interrupt(InterruptReasonSpeech, false)

	case realtime.TranscriptionCompletedEvent:
		s.state.recordUserTranscript(event.Transcript)
		if s.options.onUserTranscript != nil {
			s.options.onUserTranscript(event.Transcript)
		}

	case realtime.TranscriptionDeltaEvent:
		s.handleTranscriptionDelta(event.Delta)
	}
}

// scheduleResponse starts the one-shot adaptive response timer for a
// committed user turn. Terminal punctuation on the last utterance signals a
// complete thought and gets the short delay; otherwise the long delay leaves
// room for the user to continue. The timer re-validates lifecycle state on
// expiry, so overlapping commits still emit exactly one response.create.
func (s *Session) scheduleResponse() {
	delay := s.options.responseDelayLong
	if s.state.userUtteranceEndsTerminal() {
		delay = s.options.responseDelayShort
	}

	time.AfterFunc(delay, func() {
		select {
		case <-s.closed:
			return
		default:
		}

		if !s.state.tryBeginResponse() {
			return
		}

		s.state.resetAssistantText()
		if err := s.transport.Send(realtime.NewCreateResponse()); err != nil {
			logger.Error("failed to request assistant response", "error", err)
			s.state.clearInflight()
		}
	})
}

// interrupt executes the shared interruption sequence: clear the lifecycle
// flags, cancel the response, truncate the current assistant item at its
// start, and drop buffered playback so no stale audio keeps playing. A
// second interruption while already idle is a no-op.
func (s *Session) interrupt(reason InterruptReason, enforceCooldown bool) {
	itemID, ok := s.state.beginInterruption(s.options.cancelCooldown, enforceCooldown)
	if !ok {
		return
	}

	if err := s.transport.Send(realtime.NewCancelResponse()); err != nil {
		logger.Error("failed to cancel assistant response", "error", err)
	}
	if itemID != "" {
		if err := s.transport.Send(realtime.NewTruncateItem(itemID, 0, 0)); err != nil {
			logger.Error("failed to truncate assistant item", "error", err)
		}
	}
	s.playback.clear()

	if s.options.onInterruption != nil {
		s.options.onInterruption(reason)
	}
}

func (s *Session) handleSessionError(event realtime.ErrorEvent) {
	if event.Code == errorCodeCancelNotActive {
		// Expected when a cancel lands after the response already finished.
		return
	}

	logger.Warn("session error event", "code", event.Code, "message", event.Message)
	if s.options.onSessionError != nil {
		s.options.onSessionError(event.Code, event.Message)
	}
}
