package conversation

// captureGate decides whether a captured chunk is forwarded for
// transcription and turn detection. While the assistant is speaking its own
// voice leaks into the microphone, so forwarding only resumes once loudness
// has stayed above the onset threshold for a minimum run of consecutive
// chunks. While the assistant is silent every chunk passes.
type captureGate struct {
	onsetPeak float64
	minChunks int

	loudRun int
}

func newCaptureGate(onsetPeak float64, minChunks int) *captureGate {
	return &captureGate{onsetPeak: onsetPeak, minChunks: minChunks}
}

func (g *captureGate) forward(level float64, assistantSpeaking bool) bool {
	if !assistantSpeaking {
		g.loudRun = 0
		return true
	}

	if level >= g.onsetPeak {
		g.loudRun++
	} else {
		g.loudRun = 0
	}
	return g.loudRun >= g.minChunks
}
