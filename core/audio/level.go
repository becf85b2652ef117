package audio

import (
	"encoding/binary"
	"math"
)

// PeakLevel returns the loudness of a chunk of samples as the maximum
// absolute sample magnitude normalized to [0, 1]. An empty chunk is silent.
func PeakLevel(samples []int16) float64 {
	if len(samples) == 0 {
		return 0.0
	}

	peak := 0
	for _, s := range samples {
		a := int(s)
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak = a
		}
	}
	return math.Min(1.0, float64(peak)/float64(math.MaxInt16))
}

// PeakLevelPCM16 is [PeakLevel] over raw little-endian PCM16 bytes. A
// trailing odd byte is ignored.
func PeakLevelPCM16(pcm []byte) float64 {
	if len(pcm) < 2 {
		return 0.0
	}

	peak := 0
	for i := 0; i+1 < len(pcm); i += 2 {
		a := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak = a
		}
	}
	return math.Min(1.0, float64(peak)/float64(math.MaxInt16))
}

// DecodePCM16 converts little-endian PCM16 bytes into samples, ignoring a
// trailing odd byte.
func DecodePCM16(pcm []byte) []int16 {
	samples := make([]int16, 0, len(pcm)/2)
	for i := 0; i+1 < len(pcm); i += 2 {
		samples = append(samples, int16(binary.LittleEndian.Uint16(pcm[i:])))
	}
	return samples
}

// EncodePCM16 converts samples into little-endian PCM16 bytes.
func EncodePCM16(samples []int16) []byte {
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(s))
	}
	return pcm
}
