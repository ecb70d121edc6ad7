package carmen

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type phase int

const (
	phaseReady phase = iota
	phasePick
	phaseDrawing
	phaseReveal
	phaseDone
	phaseError
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginTop(1).
			MarginBottom(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	cardStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 2)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))
)

// drawnMsg reports the outcome of one card draw.
type drawnMsg struct {
	Index int
	Err   error
}

// Model drives the ready, pick, reveal loop over the seven positions.
type Model struct {
	deck *Deck
	base []int64
	wait time.Duration

	phase  phase
	pos    int
	input  string
	notice string
	drawn  int
	err    error
}

// NewModel builds the TUI model. A nil base falls back to DefaultBase.
func NewModel(deck *Deck, base []int64, wait time.Duration) Model {
	if len(base) == 0 {
		base = DefaultBase
	}
	return Model{deck: deck, base: base, wait: wait, phase: phaseReady}
}

// Run drives the spread interactively and blocks until it finishes.
func Run(deck *Deck, base []int64, wait time.Duration) error {
	final, err := tea.NewProgram(NewModel(deck, base, wait)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case drawnMsg:
		if msg.Err != nil {
			m.phase = phaseError
			m.err = msg.Err
			return m, nil
		}
		m.drawn = msg.Index
		m.phase = phaseReveal
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "enter":
		return m.handleEnter()
	case "backspace":
		if m.phase == phasePick && m.input != "" {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	}

	if m.phase == phasePick && msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' || (r == '-' && m.input == "") {
				m.input += string(r)
			}
		}
	}
	return m, nil
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseReady:
		m.phase = phasePick
		m.input = ""
		m.notice = ""
		return m, nil
	case phasePick:
		pick, err := strconv.ParseInt(m.input, 10, 64)
		if err != nil {
			m.notice = "Please enter a valid integer (e.g., -3, 0, 42)."
			m.input = ""
			return m, nil
		}
		m.phase = phaseDrawing
		return m, drawCard(m.deck, m.base, pick, m.wait)
	case phaseReveal:
		m.pos++
		if m.pos >= len(Order) {
			m.phase = phaseDone
			return m, tea.Quit
		}
		m.phase = phaseReady
		return m, nil
	case phaseDone, phaseError:
		return m, tea.Quit
	}
	return m, nil
}

// drawCard waits, mixes the pick into a card index, prepares the
// rotated copy for odd draws, and opens the image.
func drawCard(deck *Deck, base []int64, pick int64, wait time.Duration) tea.Cmd {
	return func() tea.Msg {
		if wait > 0 {
			time.Sleep(wait)
		}

		index, err := DrawIndex(base, pick)
		if err != nil {
			return drawnMsg{Err: err}
		}

		ctx := context.Background()
		path := deck.CardPath(index)
		if !Upright(index) {
			if path, err = deck.RotatedCopy(ctx, index); err != nil {
				return drawnMsg{Err: err}
			}
		}
		if err := OpenViewer(ctx, path); err != nil {
			return drawnMsg{Err: err}
		}
		return drawnMsg{Index: index}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Marseille Tarot"))
	b.WriteString("\n\n")

	if m.phase == phaseError {
		b.WriteString(errStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Press Enter or q to exit"))
		return b.String()
	}
	if m.phase == phaseDone {
		b.WriteString(promptStyle.Render("Reading complete. Goodbye."))
		b.WriteString("\n")
		return b.String()
	}

	spec := Order[m.pos]
	b.WriteString(dimStyle.Render(fmt.Sprintf("Card %d of %d", m.pos+1, len(Order))))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseReady:
		b.WriteString(promptStyle.Render(spec.ReadyMsg))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("(Press Enter when ready)"))
	case phasePick:
		b.WriteString(promptStyle.Render(spec.PickMsg))
		b.WriteString(m.input)
		b.WriteString("▌")
		if m.notice != "" {
			b.WriteString("\n" + errStyle.Render(m.notice))
		}
	case phaseDrawing:
		b.WriteString(dimStyle.Render("Drawing..."))
	case phaseReveal:
		orientation := "upright"
		if !Upright(m.drawn) {
			orientation = "rotated"
		}
		b.WriteString(promptStyle.Render(spec.ResultMsg))
		b.WriteString(cardStyle.Render(fmt.Sprintf("%d (%s)", m.drawn, orientation)))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("(Close the card window when you are done, then press Enter to continue)"))
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("q or Ctrl+C to quit"))
	return b.String()
}
