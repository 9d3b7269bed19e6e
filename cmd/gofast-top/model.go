package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gofast/internal/highlight"
	"gofast/internal/respclient"
)

const pollInterval = time.Second

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// model is the Bubble Tea model for gofast-top, a read-only dashboard
// that polls a gofastd instance's INFO (for keyspace size) and a sampled
// key over RESP2.
type model struct {
	target string

	width, height int
	err           error

	dbSize      int64
	sampleKey   string
	sampleType  string
	pollCount   int
	history     []string
}

func newModel(target string) model {
	return model{target: target}
}

type pollMsg struct {
	dbSize     int64
	sampleKey  string
	sampleType string
	err        error
}

type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(poll(m.target), tick())
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func poll(target string) tea.Cmd {
	return func() tea.Msg {
		c, err := respclient.Dial(target, 2*time.Second)
		if err != nil {
			return pollMsg{err: fmt.Errorf("dial %s: %w", target, err)}
		}
		defer c.Close()

		infoReply, err := c.Do("INFO")
		if err != nil {
			return pollMsg{err: err}
		}
		dbSize := parseDBSize(string(infoReply.Bulk))

		keysReply, err := c.Do("KEYS", "*")
		if err != nil {
			return pollMsg{err: err}
		}

		var sampleKey, sampleType string
		if len(keysReply.Array) > 0 {
			sampleKey = string(keysReply.Array[0].Bulk)
			typeReply, err := c.Do("TYPE", sampleKey)
			if err == nil {
				sampleType = string(typeReply.Str)
			}
		}

		return pollMsg{dbSize: dbSize, sampleKey: sampleKey, sampleType: sampleType}
	}
}

// parseDBSize pulls the "db0:keys=N" line out of an INFO reply's
// "# Keyspace" section.
func parseDBSize(info string) int64 {
	for _, line := range strings.Split(info, "\r\n") {
		if n, ok := strings.CutPrefix(line, "db0:keys="); ok {
			v, err := strconv.ParseInt(n, 10, 64)
			if err == nil {
				return v
			}
		}
	}
	return 0
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(poll(m.target), tick())

	case pollMsg:
		m.pollCount++
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.dbSize = msg.dbSize
		m.sampleKey = msg.sampleKey
		m.sampleType = msg.sampleType
		line := fmt.Sprintf("KEYS * -> %q (%s)", msg.sampleKey, msg.sampleType)
		m.history = append(m.history, highlight.Command(line))
		if len(m.history) > 8 {
			m.history = m.history[len(m.history)-8:]
		}
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return ""
	}

	header := titleStyle.Render("gofast-top") + "  " + labelStyle.Render(m.target)

	if m.err != nil {
		return header + "\n\n" + errStyle.Render(m.err.Error())
	}

	stats := boxStyle.Render(fmt.Sprintf(
		"%s %d\n%s %s\n%s %d",
		labelStyle.Render("keys:"), m.dbSize,
		labelStyle.Render("sample type:"), m.sampleType,
		labelStyle.Render("polls:"), m.pollCount,
	))

	log := boxStyle.Render(strings.Join(m.history, "\n"))

	return header + "\n\n" + stats + "\n\n" + log + "\n\n" + labelStyle.Render("q: quit")
}
