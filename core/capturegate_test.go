package conversation

import "testing"

func TestCaptureGateForwardsEverythingWhileAssistantSilent(t *testing.T) {
	gate := newCaptureGate(0.22, 2)

	for _, level := range []float64{0.0, 0.1, 0.5, 1.0} {
		if !gate.forward(level, false) {
			t.Fatalf("expected pass-through at level %f while assistant silent", level)
		}
	}
}

func TestCaptureGateSuppressesQuietChunksWhileAssistantSpeaking(t *testing.T) {
	gate := newCaptureGate(0.22, 2)

	for i := 0; i < 10; i++ {
		if gate.forward(0.1, true) {
			t.Fatalf("expected chunk %d below threshold to be suppressed", i)
		}
	}
}

func TestCaptureGateForwardsAfterOnsetRun(t *testing.T) {
	gate := newCaptureGate(0.22, 2)

	if gate.forward(0.3, true) {
		t.Fatalf("expected first loud chunk to be suppressed")
	}
	if !gate.forward(0.3, true) {
		t.Fatalf("expected second consecutive loud chunk to be forwarded")
	}
	if !gate.forward(0.3, true) {
		t.Fatalf("expected forwarding to continue once the onset run is met")
	}
}

func TestCaptureGateResetsOnsetRunOnQuietChunk(t *testing.T) {
	gate := newCaptureGate(0.22, 2)

	gate.forward(0.3, true)
	gate.forward(0.1, true)

	if gate.forward(0.3, true) {
		t.Fatalf("expected onset run to restart after a quiet chunk")
	}
	if !gate.forward(0.3, true) {
		t.Fatalf("expected forwarding after a fresh onset run")
	}
}

func TestCaptureGateResetsWhenAssistantStopsSpeaking(t *testing.T) {
	gate := newCaptureGate(0.22, 2)

	gate.forward(0.3, true)
	if !gate.forward(0.05, false) {
		t.Fatalf("expected pass-through once assistant stopped speaking")
	}
	if gate.forward(0.3, true) {
		t.Fatalf("expected onset run to have been reset by the silent period")
	}
}

func TestCaptureGateThresholdIsInclusive(t *testing.T) {
	gate := newCaptureGate(0.22, 1)

	if !gate.forward(0.22, true) {
		t.Fatalf("expected level equal to the onset threshold to count")
	}
}
