package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	conversation "github.com/parlarlabs/parlar/core"
	"github.com/parlarlabs/parlar/internal/config"
)

const (
	meterWidth     = 24
	refreshRate    = 66 * time.Millisecond
	transcriptTail = 160
)

type (
	userTranscriptMsg string
	assistantTextMsg  string
	interruptionMsg   conversation.InterruptReason
	sessionErrorMsg   struct{ code, message string }
	sessionClosedMsg  struct{ err error }
	tickMsg           time.Time
)

type keyMap struct {
	Interrupt key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Interrupt: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "interrupt"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle     = lipgloss.NewStyle().Bold(true)
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	dimStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	commandStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

type model struct {
	session *conversation.Session
	cfg     *config.Config

	snapshot conversation.Snapshot

	status    string
	lastError string
	width     int

	closed   bool
	closeErr error
}

func newModel(session *conversation.Session, cfg *config.Config) model {
	return model{
		session: session,
		cfg:     cfg,
		status:  "live, speak to talk",
		width:   80,
	}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Interrupt):
			m.session.Interrupt()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		m.snapshot = m.session.Snapshot()
		return m, tick()

	case userTranscriptMsg, assistantTextMsg:
		// Transcripts render from the snapshot; the messages only force an
		// immediate refresh.
		m.snapshot = m.session.Snapshot()

	case interruptionMsg:
		m.status = fmt.Sprintf("assistant canceled (%s)", string(msg))

	case sessionErrorMsg:
		m.lastError = fmt.Sprintf("%s %s", msg.code, msg.message)

	case sessionClosedMsg:
		m.closed = true
		m.closeErr = msg.err
		return m, tea.Quit
	}

	return m, nil
}

func (m model) View() string {
	if m.closed {
		if m.closeErr != nil {
			return errorStyle.Render(fmt.Sprintf("Session ended: %v", m.closeErr)) + "\n"
		}
		return "Session ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Parlar Realtime"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"model=%s voice=%s SR=%dHz chunk=%s | barge≥%.2f",
		m.cfg.Model, m.cfg.Voice, m.cfg.SampleRate, m.cfg.ChunkDuration, m.cfg.OnsetPeak,
	)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s %s\n",
		labelStyle.Render("Mic"),
		meterBar(m.snapshot.MicLevel),
		dimStyle.Render(fmt.Sprintf("%d KiB", m.snapshot.MicBytes/1024)),
	))
	b.WriteString(fmt.Sprintf("%s %s %s\n",
		labelStyle.Render("Spk"),
		meterBar(m.snapshot.SpkLevel),
		dimStyle.Render(fmt.Sprintf("%d KiB", m.snapshot.SpkBytes/1024)),
	))
	b.WriteString("\n")

	wrapWidth := m.width - 10
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	b.WriteString(userStyle.Render("You: "))
	b.WriteString(wordwrap.String(tail(m.snapshot.LastUser, transcriptTail), wrapWidth))
	b.WriteString("\n")
	b.WriteString(assistantStyle.Render("AI:  "))
	b.WriteString(wordwrap.String(tail(m.snapshot.LastAssistant, transcriptTail), wrapWidth))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render(m.status))
	b.WriteString("\n")
	if m.lastError != "" {
		b.WriteString(errorStyle.Render("error: " + m.lastError))
		b.WriteString("\n")
	}
	b.WriteString(commandStyle.Render(fmt.Sprintf(
		"Commands: [%s] Interrupt  [%s] Quit",
		keys.Interrupt.Help().Key, keys.Quit.Help().Key,
	)))

	return panelStyle.Render(b.String()) + "\n"
}

func meterBar(level float64) string {
	if level < 0 {
		level = 0
	} else if level > 1 {
		level = 1
	}
	filled := int(level*meterWidth + 0.5)
	return fmt.Sprintf("[%s%s] %3d%%",
		strings.Repeat("█", filled),
		strings.Repeat(" ", meterWidth-filled),
		int(level*100),
	)
}

func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
