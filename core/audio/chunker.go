package audio

import "time"

// Chunker reslices a capture stream into fixed-duration chunks. Device
// callbacks deliver whatever frame count the hardware clock produced, while
// the rest of the pipeline works on chunk-sized buffers; any partial tail is
// carried over to the next push.
type Chunker struct {
	chunkBytes int
	pending    []byte
}

func NewChunker(encodingInfo EncodingInfo, chunkDuration time.Duration) *Chunker {
	chunkBytes := int(float64(encodingInfo.SampleRate) * chunkDuration.Seconds() * float64(encodingInfo.Format.ByteSize()))
	if chunkBytes <= 0 {
		chunkBytes = 1
	}

	return &Chunker{chunkBytes: chunkBytes}
}

// Push appends pcm to the pending stream and emits every complete chunk in
// order. The emitted slice is only valid for the duration of the call.
func (c *Chunker) Push(pcm []byte, emit func(chunk []byte)) {
	c.pending = append(c.pending, pcm...)

	for len(c.pending) >= c.chunkBytes {
		emit(c.pending[:c.chunkBytes])
		c.pending = c.pending[c.chunkBytes:]
	}

	if len(c.pending) == 0 {
		c.pending = nil
	}
}
