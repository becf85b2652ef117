package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	conversation "github.com/parlarlabs/parlar/core"
	"github.com/parlarlabs/parlar/core/audio"
	"github.com/parlarlabs/parlar/core/audio/miniaudio"
	"github.com/parlarlabs/parlar/core/realtime"
	"github.com/parlarlabs/parlar/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "parlar:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client, err := realtime.Dial(ctx,
		realtime.WithAPIKey(cfg.APIKey),
		realtime.WithModel(cfg.Model),
	)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer client.Close()

	encodingInfo := audio.EncodingInfo{SampleRate: cfg.SampleRate, Format: audio.EncodingPCM16}

	var program *tea.Program
	send := func(msg tea.Msg) {
		if program != nil {
			program.Send(msg)
		}
	}

	session := conversation.NewSession(client,
		conversation.WithEncodingInfo(encodingInfo),
		conversation.WithChunkDuration(cfg.ChunkDuration),
		conversation.WithOnsetGate(cfg.OnsetPeak, cfg.OnsetMinChunks),
		conversation.WithCancelCooldown(cfg.CancelCooldown),
		conversation.WithResponseDelays(cfg.ResponseDelayShort, cfg.ResponseDelayLong),
		conversation.WithVoiceActivityDetection(cfg.VADThreshold, cfg.VADSilence),
		conversation.WithVoice(cfg.Voice),
		conversation.WithUserTranscriptCallback(func(transcript string) {
			send(userTranscriptMsg(transcript))
		}),
		conversation.WithAssistantTextCallback(func(delta string) {
			send(assistantTextMsg(delta))
		}),
		conversation.WithInterruptionCallback(func(reason conversation.InterruptReason) {
			send(interruptionMsg(reason))
		}),
		conversation.WithSessionErrorCallback(func(code, message string) {
			send(sessionErrorMsg{code: code, message: message})
		}),
	)

	audioClient, err := miniaudio.NewClient(encodingInfo, session.PullPlayback)
	if err != nil {
		return fmt.Errorf("failed to open audio devices: %w", err)
	}
	defer audioClient.Close()

	if err := audioClient.Stream(ctx, session.OnCapturedAudio); err != nil {
		return fmt.Errorf("failed to start capture: %w", err)
	}

	program = tea.NewProgram(newModel(session, cfg), tea.WithAltScreen())

	go func() {
		err := session.Run(ctx)
		program.Send(sessionClosedMsg{err: err})
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
