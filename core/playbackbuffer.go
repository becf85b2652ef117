package conversation

import "sync"

const playbackBufferInitialCapacity = 96000

// playbackBuffer is the FIFO of decoded assistant samples between the
// inbound audio-delta handler (producer) and the hardware playback callback
// (consumer). The consumer never waits: a pull that outruns the producer is
// zero-filled. The buffer is deliberately unbounded, matching the upstream
// rate the service streams at.
type playbackBuffer struct {
	mu      sync.Mutex
	samples []int16
	head    int
}

func newPlaybackBuffer() *playbackBuffer {
	return &playbackBuffer{samples: make([]int16, 0, playbackBufferInitialCapacity)}
}

func (b *playbackBuffer) push(samples []int16) {
	b.mu.Lock()
	b.samples = append(b.samples, samples...)
	b.mu.Unlock()
}

// pull fills out with the oldest buffered samples in order, zero-filling any
// shortfall. Bounded time, no waiting; safe to call from a device callback.
func (b *playbackBuffer) pull(out []int16) {
	b.mu.Lock()
	n := copy(out, b.samples[b.head:])
	b.head += n
	if b.head == len(b.samples) {
		b.samples = b.samples[:0]
		b.head = 0
	} else if b.head > playbackBufferInitialCapacity {
		b.samples = append(b.samples[:0], b.samples[b.head:]...)
		b.head = 0
	}
	b.mu.Unlock()

	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// clear atomically discards everything buffered, so no stale assistant audio
// survives an interruption.
func (b *playbackBuffer) clear() {
	b.mu.Lock()
	b.samples = b.samples[:0]
	b.head = 0
	b.mu.Unlock()
}

func (b *playbackBuffer) buffered() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples) - b.head
}
