package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/scamshield/scamshield/pkg/scenario"
	"github.com/scamshield/scamshield/pkg/session"
)

var (
	headerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("29")). // WhatsApp green
			Foreground(lipgloss.Color("255")).
			Bold(true).
			Padding(0, 1)

	contactBubbleStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("255")).
				Foreground(lipgloss.Color("235")).
				Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("193")). // pale green
			Foreground(lipgloss.Color("235")).
			Padding(0, 1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(true)

	safeOutcomeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("35")).
				Bold(true).
				Padding(0, 1)

	unsafeOutcomeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("160")).
				Bold(true).
				Padding(0, 1)

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// dwellElapsedMsg is delivered when a scheduled dwell timer fires. The token
// identifies the timer generation; the controller discards stale ones.
type dwellElapsedMsg struct {
	token uint64
}

// ConsoleUI renders one scenario attempt. Scrolling drives the reveal state
// machine: reaching the bottom of the transcript reports the final message
// as fully visible, scrolling away cancels the pending dwell timer.
type ConsoleUI struct {
	controller *session.Controller
	viewport   viewport.Model
	ready      bool
	width      int
	height     int
	selected   int
	copied     bool
	err        error
}

func NewConsoleUI(controller *session.Controller) *ConsoleUI {
	return &ConsoleUI{controller: controller}
}

func (m *ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chatHeight := m.height - m.chromeHeight()
		if chatHeight < 3 {
			chatHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, chatHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = chatHeight
		}
		m.viewport.SetContent(m.renderTranscript())
		return m, m.observeVisibility()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dwellElapsedMsg:
		if m.controller.TimerElapsed(msg.token) {
			// Options just unlocked; the viewport shrinks to fit them.
			return m, func() tea.Msg {
				return tea.WindowSizeMsg{Width: m.width, Height: m.height}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, tea.Batch(cmd, m.observeVisibility())
}

func (m *ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || key == "q" {
		m.controller.Exit()
		return m, tea.Quit
	}

	switch m.controller.Stage() {
	case session.StageViewing:
		if key == "e" {
			// Jump to the end; the dwell timer still has to run its course.
			m.viewport.GotoBottom()
			return m, m.observeVisibility()
		}

	case session.StageOptionsShown:
		options := m.controller.Options()
		switch key {
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(options)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			return m.selectOption(options[m.selected])
		case "1", "2", "3", "4":
			idx := int(key[0] - '1')
			if idx < len(options) {
				return m.selectOption(options[idx])
			}
			return m, nil
		}

	case session.StageOutcomeShown:
		switch key {
		case "r":
			if m.controller.CanRetry() {
				if err := m.controller.Retry(); err == nil {
					m.selected = 0
					m.copied = false
				}
			}
			return m, nil
		case "c":
			if outcome, ok := m.controller.Outcome(); ok {
				if err := clipboard.WriteAll(outcome.Advice); err == nil {
					m.copied = true
				}
			}
			return m, nil
		case "enter":
			m.controller.Exit()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, tea.Batch(cmd, m.observeVisibility())
}

func (m *ConsoleUI) selectOption(opt scenario.Option) (tea.Model, tea.Cmd) {
	if _, err := m.controller.SelectOption(context.Background(), opt.ID); err != nil {
		m.err = err
	}
	return m, nil
}

// observeVisibility reports the final message's visibility to the reveal
// machine. At the bottom of the viewport the final message is fully on
// screen; anywhere else it is treated as not visible. A returned dwell timer
// is scheduled as a one-shot tick carrying its generation token.
func (m *ConsoleUI) observeVisibility() tea.Cmd {
	if !m.ready {
		return nil
	}
	ratio := 0.0
	if m.viewport.AtBottom() {
		ratio = 1.0
	}
	timer, armed := m.controller.FinalMessageVisible(ratio)
	if !armed {
		return nil
	}
	return tea.Tick(timer.Duration, func(time.Time) tea.Msg {
		return dwellElapsedMsg{token: timer.Token}
	})
}

// chromeHeight is the number of rows used by everything except the chat
// viewport in the current stage.
func (m *ConsoleUI) chromeHeight() int {
	const headerRows = 2
	const footerRows = 2
	extra := 0
	switch m.controller.Stage() {
	case session.StageOptionsShown:
		extra = len(m.controller.Options()) + 2
	case session.StageOutcomeShown:
		if outcome, ok := m.controller.Outcome(); ok {
			extra = len(outcome.Explanation) + 6
		}
	}
	return headerRows + footerRows + extra
}

func (m *ConsoleUI) renderTranscript() string {
	scn := m.controller.Scenario()
	if scn == nil {
		return ""
	}

	bubbleWidth := m.width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var b strings.Builder
	b.WriteString(timestampStyle.Render("— today —"))
	b.WriteString("\n\n")

	for _, msg := range scn.Transcript() {
		text := msg.Content
		if msg.Attachment != nil {
			text += fmt.Sprintf("\n[attachment: %s]", msg.Attachment.Name)
		}
		wrapped := wordwrap.String(text, bubbleWidth)

		var bubble string
		if msg.Sender == scenario.SenderUser {
			bubble = userBubbleStyle.Render(wrapped)
			bubble = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble)
		} else {
			bubble = contactBubbleStyle.Render(wrapped)
		}
		b.WriteString(bubble)
		b.WriteString("\n")
		if msg.Timestamp != "" {
			stamp := timestampStyle.Render(msg.Timestamp)
			if msg.Sender == scenario.SenderUser {
				stamp = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, stamp)
			}
			b.WriteString(stamp)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *ConsoleUI) View() string {
	if !m.ready {
		return "loading..."
	}
	scn := m.controller.Scenario()
	if scn == nil {
		return ""
	}

	var b strings.Builder
	header := fmt.Sprintf("%s  %s", scn.ContactName, scn.ContactStatus)
	b.WriteString(headerStyle.Width(m.width).Render(header))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(unsafeOutcomeStyle.Render("Something went wrong with this scenario."))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q: back to scenarios"))
		return b.String()
	}

	switch m.controller.Stage() {
	case session.StageViewing:
		hint := "scroll to read the conversation"
		if m.controller.Reveal().ScrollHintVisible() {
			hint += " • e: jump to end"
		}
		b.WriteString(helpStyle.Render(hint + " • q: quit"))

	case session.StageOptionsShown:
		b.WriteString(promptStyle.Render("What would you do?"))
		b.WriteString("\n")
		letters := []string{"A", "B", "C", "D"}
		for i, opt := range m.controller.Options() {
			line := fmt.Sprintf(" %s. %s", letters[i], opt.Text)
			if i == m.selected {
				b.WriteString(selectedOptionStyle.Render(line))
			} else {
				b.WriteString(optionStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ + enter or 1-4 to choose • q: quit"))

	case session.StageOutcomeShown:
		outcome, _ := m.controller.Outcome()
		style := unsafeOutcomeStyle
		if outcome.IsCorrect {
			style = safeOutcomeStyle
		}
		b.WriteString(style.Render(outcome.Title))
		b.WriteString("\n")
		b.WriteString(wordwrap.String(outcome.Description, m.width))
		b.WriteString("\n")
		for _, point := range outcome.Explanation {
			b.WriteString(wordwrap.String("  • "+point, m.width))
			b.WriteString("\n")
		}
		b.WriteString(adviceStyle.Render(wordwrap.String("Please note: "+outcome.Advice, m.width)))
		b.WriteString("\n")
		if m.controller.SaveWarning() != nil {
			b.WriteString(helpStyle.Render("warning: progress may not have been saved"))
			b.WriteString("\n")
		}
		help := "enter: back to scenarios • c: copy advice"
		if m.controller.CanRetry() {
			help = "r: try again • " + help
		}
		if m.copied {
			help += " (copied!)"
		}
		b.WriteString(helpStyle.Render(help))
	}

	return b.String()
}
