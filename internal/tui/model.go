package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"textsum/internal/config"
	"textsum/internal/domain"
	"textsum/internal/input"
	"textsum/internal/service"
)

const emptyTextMessage = "Please provide some text"

// SummaryPort is the TUI-facing subset of the summary service.
type SummaryPort interface {
	Summarize(ctx context.Context, req service.Request) (*service.Response, error)
}

type focus int

const (
	focusText focus = iota
	focusCount
)

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service   SummaryPort
	text      textarea.Model
	count     textinput.Model
	viewport  viewport.Model
	style     domain.Style
	focus     focus
	result    *service.Response
	status    string
	exportDir string
	ready     bool
}

// New creates a TUI model. defaults seed the sentence count and style;
// exports are written to exportDir.
func New(svc SummaryPort, defaults config.SummarizerConfig, exportDir string) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste the text to summarize"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Focus()

	ti := textinput.New()
	ti.Prompt = "Sentences: "
	ti.CharLimit = 4
	ti.SetValue(fmt.Sprint(defaults.MaxSentences))

	style := domain.Style(strings.ToLower(strings.TrimSpace(defaults.Style)))
	if style == "" {
		style = domain.StylePlain
	}
	if exportDir == "" {
		exportDir = "."
	}
	return Model{
		service:   svc,
		text:      ta,
		count:     ti,
		viewport:  viewport.New(0, 0),
		style:     style,
		exportDir: exportDir,
		status:    "Ctrl+G summarize · Tab style · Shift+Tab switch field · Ctrl+E export · Esc quit",
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd { return textarea.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		width := max(20, msg.Width)
		_, rh := resultBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		textHeight := max(3, msg.Height/3)
		m.text.SetWidth(width - 4)
		m.text.SetHeight(textHeight)
		reserved := 1 + textHeight + ih + 1 + ih + 1 // header, text box, count box, status
		m.viewport.Width = width
		m.viewport.Height = max(3, msg.Height-reserved-rh)
		m.viewport.SetContent(m.renderResult())
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.style = nextStyle(m.style)
			m.status = "Style: " + string(m.style)
			return m, nil
		case "shift+tab":
			m.toggleFocus()
			return m, nil
		case "ctrl+g":
			m.generate()
			return m, nil
		case "ctrl+e":
			m.export()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == focusCount {
		m.count, cmd = m.count.Update(msg)
	} else {
		m.text, cmd = m.text.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleFocus() {
	if m.focus == focusText {
		m.focus = focusCount
		m.text.Blur()
		m.count.Focus()
		return
	}
	m.focus = focusText
	m.count.Blur()
	m.text.Focus()
}

func (m *Model) generate() {
	text := input.Normalize(m.text.Value())
	if strings.TrimSpace(text) == "" {
		m.status = emptyTextMessage
		return
	}
	resp, err := m.service.Summarize(context.Background(), service.Request{
		Text:          text,
		SentenceCount: input.ParseSentenceCount(m.count.Value()),
		Style:         m.style,
	})
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.result = resp
	m.status = fmt.Sprintf("Selected %d sentence(s)", len(resp.Selected))
	m.viewport.SetContent(m.renderResult())
	m.viewport.GotoTop()
}

func (m *Model) export() {
	if m.result == nil || m.result.Artifact == nil {
		m.status = "Nothing to export yet"
		return
	}
	path, err := m.result.Artifact.Save(m.exportDir)
	if err != nil {
		m.status = "Export failed: " + err.Error()
		return
	}
	m.status = "Saved " + path
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Text Summarizer") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("  style: "+string(m.style))
	text := inputBoxStyle.Render(m.text.View())
	count := inputBoxStyle.Render(m.count.View())
	results := resultBoxStyle.Render(m.viewport.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + text + "\n" + count + "\n" + results + "\n" + status
}

func (m Model) renderResult() string {
	if m.result == nil {
		return "No summary yet."
	}
	if m.result.Summary == "" {
		return "No sentences selected."
	}
	return strings.TrimLeft(m.result.Summary, "\n") + "\n\n" + RenderStats(m.result.Stats)
}

func nextStyle(s domain.Style) domain.Style {
	for i, st := range domain.Styles {
		if st == s {
			return domain.Styles[(i+1)%len(domain.Styles)]
		}
	}
	return domain.StylePlain
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
