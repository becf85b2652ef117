package conversation

import (
	"strings"
	"sync"
	"time"
)

// conversationState is the authoritative response-lifecycle state. Every
// mutation is a named read-modify-write operation under one mutex so no
// caller observes a half-applied transition; the lock is never held across
// I/O or together with the playback buffer lock.
type conversationState struct {
	mu sync.Mutex

	responseActive      bool
	responseInflight    bool
	lastAssistantItemID string

	lastUser        string
	lastUserPartial string
	lastAssistant   string

	lastCancelAt time.Time

	micLevel float64
	spkLevel float64
	micBytes int
	spkBytes int
}

// Snapshot is a point-in-time copy of the observable conversation state.
type Snapshot struct {
	ResponseActive   bool
	ResponseInflight bool
	LastUser         string
	LastAssistant    string

	MicLevel float64
	SpkLevel float64
	MicBytes int
	SpkBytes int
}

func (s *conversationState) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ResponseActive:   s.responseActive,
		ResponseInflight: s.responseInflight,
		LastUser:         s.lastUser,
		LastAssistant:    s.lastAssistant,
		MicLevel:         s.micLevel,
		SpkLevel:         s.spkLevel,
		MicBytes:         s.micBytes,
		SpkBytes:         s.spkBytes,
	}
}

func (s *conversationState) assistantSpeaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responseActive || s.responseInflight
}

func (s *conversationState) noteMicChunk(level float64, byteCount int) {
	s.mu.Lock()
	s.micLevel = level
	s.micBytes += byteCount
	s.mu.Unlock()
}

func (s *conversationState) noteSpeakerPull(level float64, byteCount int) {
	s.mu.Lock()
	s.spkLevel = level
	s.spkBytes += byteCount
	s.mu.Unlock()
}

func (s *conversationState) noteAssistantItem(itemID string) {
	if itemID == "" {
		return
	}
	s.mu.Lock()
	s.lastAssistantItemID = itemID
	s.mu.Unlock()
}

// tryBeginResponse is the transition a response timer attempts on expiry. It
// re-validates that no response is inflight or active, so overlapping timers
// collapse to a single response.create emission.
func (s *conversationState) tryBeginResponse() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.responseInflight || s.responseActive {
		return false
	}
	s.responseInflight = true
	return true
}

func (s *conversationState) markResponseActive() {
	s.mu.Lock()
	s.responseActive = true
	s.mu.Unlock()
}

// finishResponse is the terminal transition shared by audio-done,
// response-done and a locally applied cancellation.
func (s *conversationState) finishResponse() {
	s.mu.Lock()
	s.responseActive = false
	s.responseInflight = false
	s.mu.Unlock()
}

func (s *conversationState) clearInflight() {
	s.mu.Lock()
	s.responseInflight = false
	s.mu.Unlock()
}

// beginInterruption applies a local cancellation if the assistant is
// speaking and, when enforceCooldown is set, the cooldown since the previous
// cancellation has elapsed. On success both lifecycle flags are cleared, the
// cancel timestamp recorded and the partial transcript dropped; the returned
// item id is the truncation target.
func (s *conversationState) beginInterruption(cooldown time.Duration, enforceCooldown bool) (itemID string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.responseActive && !s.responseInflight {
		return "", false
	}
	if enforceCooldown && !s.lastCancelAt.IsZero() && time.Since(s.lastCancelAt) < cooldown {
		return "", false
	}

	s.responseActive = false
	s.responseInflight = false
	s.lastCancelAt = time.Now()
	s.lastUserPartial = ""
	return s.lastAssistantItemID, true
}

func (s *conversationState) recordUserTranscript(transcript string) {
	s.mu.Lock()
	s.lastUser = transcript
	s.lastUserPartial = ""
	s.mu.Unlock()
}

// appendUserPartial accumulates an incremental transcription delta and
// returns the partial transcript so far.
func (s *conversationState) appendUserPartial(delta string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUserPartial += delta
	return s.lastUserPartial
}

func (s *conversationState) appendAssistantText(delta string) {
	s.mu.Lock()
	s.lastAssistant += delta
	s.mu.Unlock()
}

func (s *conversationState) resetAssistantText() {
	s.mu.Lock()
	s.lastAssistant = ""
	s.mu.Unlock()
}

// userUtteranceEndsTerminal reports whether the last finalized user
// utterance reads as a complete thought. Terminal punctuation means the
// assistant may respond after the short delay; anything else waits the long
// delay in case the user continues.
func (s *conversationState) userUtteranceEndsTerminal() bool {
	s.mu.Lock()
	lastUser := s.lastUser
	s.mu.Unlock()

	trimmed := strings.TrimSpace(lastUser)
	return strings.HasSuffix(trimmed, ".") ||
		strings.HasSuffix(trimmed, "!") ||
		strings.HasSuffix(trimmed, "?")
}
