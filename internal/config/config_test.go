package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	config, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.APIKey != "sk-test" {
		t.Errorf("expected the api key to be read, got %q", config.APIKey)
	}
	if config.Model != "gpt-realtime" {
		t.Errorf("unexpected default model %q", config.Model)
	}
	if config.Voice != "alloy" {
		t.Errorf("unexpected default voice %q", config.Voice)
	}
	if config.SampleRate != 24000 {
		t.Errorf("unexpected default sample rate %d", config.SampleRate)
	}
	if config.ChunkDuration != 20*time.Millisecond {
		t.Errorf("unexpected default chunk duration %v", config.ChunkDuration)
	}
	if config.OnsetPeak != 0.22 || config.OnsetMinChunks != 2 {
		t.Errorf("unexpected default onset gate %v/%d", config.OnsetPeak, config.OnsetMinChunks)
	}
	if config.CancelCooldown != 400*time.Millisecond {
		t.Errorf("unexpected default cancel cooldown %v", config.CancelCooldown)
	}
	if config.ResponseDelayShort != 200*time.Millisecond || config.ResponseDelayLong != 700*time.Millisecond {
		t.Errorf("unexpected default response delays %v/%v", config.ResponseDelayShort, config.ResponseDelayLong)
	}
	if config.VADThreshold != 0.55 || config.VADSilence != 350*time.Millisecond {
		t.Errorf("unexpected default vad settings %v/%v", config.VADThreshold, config.VADSilence)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REALTIME_MODEL", "gpt-realtime-mini")
	t.Setenv("REALTIME_VOICE", "verse")
	t.Setenv("SR", "16000")
	t.Setenv("CHUNK_MS", "40")
	t.Setenv("INT_ONSET_PEAK", "0.3")
	t.Setenv("INT_ONSET_MIN_CHUNKS", "3")
	t.Setenv("CANCEL_COOLDOWN_MS", "250")
	t.Setenv("TURN_VAD_THRESH", "0.7")
	t.Setenv("TURN_SIL_MS", "500")
	t.Setenv("RESP_DELAY_SHORT_MS", "100")
	t.Setenv("RESP_DELAY_LONG_MS", "900")

	config, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Model != "gpt-realtime-mini" || config.Voice != "verse" {
		t.Errorf("model/voice overrides not applied: %q/%q", config.Model, config.Voice)
	}
	if config.SampleRate != 16000 || config.ChunkDuration != 40*time.Millisecond {
		t.Errorf("audio overrides not applied: %d/%v", config.SampleRate, config.ChunkDuration)
	}
	if config.OnsetPeak != 0.3 || config.OnsetMinChunks != 3 {
		t.Errorf("onset overrides not applied: %v/%d", config.OnsetPeak, config.OnsetMinChunks)
	}
	if config.CancelCooldown != 250*time.Millisecond {
		t.Errorf("cooldown override not applied: %v", config.CancelCooldown)
	}
	if config.VADThreshold != 0.7 || config.VADSilence != 500*time.Millisecond {
		t.Errorf("vad overrides not applied: %v/%v", config.VADThreshold, config.VADSilence)
	}
	if config.ResponseDelayShort != 100*time.Millisecond || config.ResponseDelayLong != 900*time.Millisecond {
		t.Errorf("delay overrides not applied: %v/%v", config.ResponseDelayShort, config.ResponseDelayLong)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error without an api key")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"SR", "not-a-number"},
		{"SR", "0"},
		{"CHUNK_MS", "-20"},
		{"INT_ONSET_PEAK", "1.5"},
		{"INT_ONSET_MIN_CHUNKS", "0"},
		{"CANCEL_COOLDOWN_MS", "soon"},
		{"TURN_VAD_THRESH", "-0.1"},
		{"TURN_SIL_MS", "-1"},
		{"RESP_DELAY_SHORT_MS", "fast"},
		{"RESP_DELAY_LONG_MS", "-5"},
	}

	for _, c := range cases {
		t.Run(c.name+"="+c.value, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv(c.name, c.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected %s=%q to be rejected", c.name, c.value)
			}
			if !strings.Contains(err.Error(), c.name) {
				t.Errorf("expected the error to name %s, got %v", c.name, err)
			}
		})
	}
}
