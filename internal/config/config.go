package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable the client reads at startup. The core treats
// these as immutable for the process lifetime.
type Config struct {
	APIKey string
	Model  string
	Voice  string

	SampleRate    int
	ChunkDuration time.Duration

	OnsetPeak      float64
	OnsetMinChunks int
	CancelCooldown time.Duration

	VADThreshold float64
	VADSilence   time.Duration

	ResponseDelayShort time.Duration
	ResponseDelayLong  time.Duration
}

// Load reads configuration from environment variables with defaults,
// sourcing a .env file first if one exists.
func Load() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	config := &Config{
		Model:              "gpt-realtime",
		Voice:              "alloy",
		SampleRate:         24000,
		ChunkDuration:      20 * time.Millisecond,
		OnsetPeak:          0.22,
		OnsetMinChunks:     2,
		CancelCooldown:     400 * time.Millisecond,
		VADThreshold:       0.55,
		VADSilence:         350 * time.Millisecond,
		ResponseDelayShort: 200 * time.Millisecond,
		ResponseDelayLong:  700 * time.Millisecond,
	}

	// Required: OPENAI_API_KEY
	config.APIKey = os.Getenv("OPENAI_API_KEY")
	if config.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	if model := os.Getenv("REALTIME_MODEL"); model != "" {
		config.Model = model
	}

	if voice := os.Getenv("REALTIME_VOICE"); voice != "" {
		config.Voice = voice
	}

	if sampleRate := os.Getenv("SR"); sampleRate != "" {
		sr, err := strconv.Atoi(sampleRate)
		if err != nil || sr <= 0 {
			return nil, fmt.Errorf("invalid SR: %q", sampleRate)
		}
		config.SampleRate = sr
	}

	if chunkMS := os.Getenv("CHUNK_MS"); chunkMS != "" {
		ms, err := strconv.Atoi(chunkMS)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid CHUNK_MS: %q", chunkMS)
		}
		config.ChunkDuration = time.Duration(ms) * time.Millisecond
	}

	if onsetPeak := os.Getenv("INT_ONSET_PEAK"); onsetPeak != "" {
		peak, err := strconv.ParseFloat(onsetPeak, 64)
		if err != nil || peak < 0 || peak > 1 {
			return nil, fmt.Errorf("invalid INT_ONSET_PEAK: %q", onsetPeak)
		}
		config.OnsetPeak = peak
	}

	if onsetChunks := os.Getenv("INT_ONSET_MIN_CHUNKS"); onsetChunks != "" {
		chunks, err := strconv.Atoi(onsetChunks)
		if err != nil || chunks < 1 {
			return nil, fmt.Errorf("invalid INT_ONSET_MIN_CHUNKS: %q", onsetChunks)
		}
		config.OnsetMinChunks = chunks
	}

	if cooldown := os.Getenv("CANCEL_COOLDOWN_MS"); cooldown != "" {
		ms, err := strconv.Atoi(cooldown)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid CANCEL_COOLDOWN_MS: %q", cooldown)
		}
		config.CancelCooldown = time.Duration(ms) * time.Millisecond
	}

	if threshold := os.Getenv("TURN_VAD_THRESH"); threshold != "" {
		t, err := strconv.ParseFloat(threshold, 64)
		if err != nil || t < 0 || t > 1 {
			return nil, fmt.Errorf("invalid TURN_VAD_THRESH: %q", threshold)
		}
		config.VADThreshold = t
	}

	if silence := os.Getenv("TURN_SIL_MS"); silence != "" {
		ms, err := strconv.Atoi(silence)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid TURN_SIL_MS: %q", silence)
		}
		config.VADSilence = time.Duration(ms) * time.Millisecond
	}

	if delay := os.Getenv("RESP_DELAY_SHORT_MS"); delay != "" {
		ms, err := strconv.Atoi(delay)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid RESP_DELAY_SHORT_MS: %q", delay)
		}
		config.ResponseDelayShort = time.Duration(ms) * time.Millisecond
	}

	if delay := os.Getenv("RESP_DELAY_LONG_MS"); delay != "" {
		ms, err := strconv.Atoi(delay)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid RESP_DELAY_LONG_MS: %q", delay)
		}
		config.ResponseDelayLong = time.Duration(ms) * time.Millisecond
	}

	return config, nil
}
