package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/gift-hunt/internal/handlers"
	"github.com/jwebster45206/gift-hunt/pkg/chat"
	"github.com/jwebster45206/gift-hunt/pkg/hunt"
	"github.com/muesli/reflow/wordwrap"
)

const (
	AgentName       = "Agent Cupid"
	PlaceHolderText = "Type your answer here..."
)

type entry struct {
	fromUser bool
	text     string
	state    string // agent_state for agent entries
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	history      []entry
	lastDraft    string // most recent unlocked or revised gift text
	status       *handlers.HuntResponse
	notice       string
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	loading      bool

	showQuitModal bool
	progressTick  int
}

type chatResponseMsg struct {
	response *chat.ChatResponse
	err      error
}

type huntStatusMsg struct {
	status *handlers.HuntResponse
	err    error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	agentStyles = map[string]lipgloss.Style{
		chat.AgentStateExcited:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		chat.AgentStateSmiling:  lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		chat.AgentStateConfused: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	completeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = chat.MaxMessageLength
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	return ConsoleUI{
		config:       cfg,
		client:       client,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: viewport.New(20, 20),
		loading:      true,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.sendChatMessage(chat.StartMessage), m.refreshStatus(), progressTick())
}

// stripMarkup drops the bold/italic asterisks used in replies.
func stripMarkup(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

func formatAgentResponse(e entry, width int) string {
	style, ok := agentStyles[e.state]
	if !ok {
		style = agentStyles[chat.AgentStateSmiling]
	}
	prefix := AgentName + ": "
	wrapped := wordwrap.String(stripMarkup(e.text), width-len(prefix))
	return style.Render(prefix) + wrapped
}

func writeStatus(status *handlers.HuntResponse) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("GIFTS") + "\n\n")

	if status == nil {
		content.WriteString("Loading...\n")
		return content.String()
	}

	content.WriteString("Hunt:\n" + status.Catalog + "\n\n")
	for _, g := range status.Gifts {
		marker := "○"
		switch g.SubState {
		case hunt.Complete.String():
			marker = completeStyle.Render("●")
		case hunt.AwaitingCustomization.String():
			marker = "◐"
		}
		if g.SubState == hunt.AwaitingAnswer.String() && !g.Reachable {
			marker = "🔒"
		}
		content.WriteString(fmt.Sprintf("%s %d. %s\n", marker, g.Ordinal, g.Name))
		if g.CompletedAt != nil {
			content.WriteString(promptStyle.Render("   done "+g.CompletedAt.Local().Format("Jan 2 15:04")) + "\n")
		}
	}
	if status.Complete {
		content.WriteString("\n" + completeStyle.Render("All gifts unlocked!") + "\n")
	}

	content.WriteString("\nCommands:\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /copy: Copy gift\n")
	content.WriteString("• /status: Refresh\n")
	content.WriteString("• /reset: Start over\n")
	content.WriteString("• Ctrl+C: Quit\n")
	return content.String()
}

// writeChatContent rebuilds the chat for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("GIFT HUNT") + "\n\n")
	content.WriteString("Answer each clue to unlock your gifts.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	for _, e := range m.history {
		if e.fromUser {
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(e.text, chatWidth-5) + "\n\n")
			continue
		}
		content.WriteString(formatAgentResponse(e, chatWidth) + "\n\n")
	}

	if m.notice != "" {
		content.WriteString(m.notice + "\n\n")
	}
	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(writeStatus(m.status))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.loading = true
			m.progressTick = 0
			m.notice = ""
			m.history = append(m.history, entry{fromUser: true, text: input})
			m.writeChatContent()

			return m, tea.Batch(m.sendChatMessage(input), progressTick())
		}

	case chatResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.notice = errorStyle.Render("Error: " + msg.err.Error())
		} else {
			m.history = append(m.history, entry{text: msg.response.ResponseText, state: msg.response.AgentState})
			if d := draftOf(msg.response); d != "" {
				m.lastDraft = d
			}
		}
		m.writeChatContent()
		return m, m.refreshStatus()

	case huntStatusMsg:
		if msg.err != nil {
			m.notice = errorStyle.Render("Error: " + msg.err.Error())
			m.writeChatContent()
		} else {
			m.status = msg.status
			m.metaViewport.SetContent(writeStatus(m.status))
		}

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// draftOf extracts the gift text from unlock and rewrite replies, which
// frame it with a blank line on either side.
func draftOf(resp *chat.ChatResponse) string {
	if resp.Kind != hunt.KindSuccessUnlock.String() && resp.Kind != hunt.KindGenerateRequest.String() {
		return ""
	}
	parts := strings.Split(resp.ResponseText, "\n\n")
	if len(parts) < 3 {
		return ""
	}
	return strings.Join(parts[1:len(parts)-1], "\n\n")
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "/help":
		m.notice = titleStyle.Render("Help:") + `
• /help - Show this help
• /copy - Copy the latest gift text to the clipboard
• /status - Refresh gift progress
• /reset - Start the hunt over
• Ctrl+C - Quit

How to play:
• Answer each clue and press Enter
• After a gift unlocks, ask Agent Cupid to rewrite it in any tone
• Say "I'm done" when you are happy with it`

	case "/copy":
		switch {
		case m.lastDraft == "":
			m.notice = errorStyle.Render("Nothing to copy yet.")
		case clipboard.Unsupported:
			m.notice = errorStyle.Render("Clipboard is not available on this system.")
		default:
			if err := clipboard.WriteAll(stripMarkup(m.lastDraft)); err != nil {
				m.notice = errorStyle.Render("Copy failed: " + err.Error())
			} else {
				m.notice = completeStyle.Render("Copied to clipboard!")
			}
		}

	case "/status":
		m.writeChatContent()
		return m, m.refreshStatus()

	case "/reset":
		m.history = nil
		m.lastDraft = ""
		m.notice = ""
		m.loading = true
		m.writeChatContent()
		return m, tea.Sequence(m.resetHunt(), m.sendChatMessage(chat.StartMessage))

	default:
		m.notice = errorStyle.Render("Unknown command: " + input)
	}

	m.writeChatContent()
	return m, nil
}

func (m ConsoleUI) sendChatMessage(message string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendChat(m.client, m.config.APIBaseURL, message)
		return chatResponseMsg{resp, err}
	}
}

func (m ConsoleUI) refreshStatus() tea.Cmd {
	return func() tea.Msg {
		status, err := getHunt(m.client, m.config.APIBaseURL)
		return huntStatusMsg{status, err}
	}
}

func (m ConsoleUI) resetHunt() tea.Cmd {
	return func() tea.Msg {
		status, err := resetHunt(m.client, m.config.APIBaseURL)
		return huntStatusMsg{status, err}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Your progress is kept by the server. Leave the hunt for now?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
