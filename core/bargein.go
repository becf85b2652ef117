package conversation

import "strings"

// Barge-in keywords matched against the accumulated partial transcript. A
// bare "stop" counts at the start of the utterance; mid-utterance matches
// require the preceding space so words like "nonstop" don't trigger.
var bargeInKeywords = []string{" stop", " wait", " hold on", " hey"}

func containsBargeInKeyword(partial string) bool {
	text := strings.ToLower(partial)
	if strings.HasPrefix(text, "stop") {
		return true
	}
	for _, keyword := range bargeInKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// handleTranscriptionDelta accumulates incremental user speech and triggers
// a keyword interruption when the assistant is speaking, the cancel cooldown
// has elapsed, and the partial transcript contains a trigger phrase. A
// successful trigger clears the partial transcript so the same utterance
// cannot fire twice.
func (s *Session) handleTranscriptionDelta(delta string) {
	partial := s.state.appendUserPartial(delta)

	if !containsBargeInKeyword(partial) {
		return
	}

	s.interrupt(InterruptReasonKeyword, true)
}
