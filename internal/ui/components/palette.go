package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hyprfocus/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"session:launch <goal> <minutes> [intention]",
	"session:pomodoro <goal> <minutes> [intention]",
	"session:feedback <rating> [comment]",
	"task:add <title> [@goal]",
	"task:done <n>",
	"task:delete <n>",
	"week:next",
	"week:prev",
	"week:today",
	"calendar:launch-due",
	"ads:on",
	"ads:off",
	"ads:update",
	"goal:add <name>",
	"goal:delete <name>",
	"goal:theme <name> <theme>",
	"filter:add <goal> <domain>",
	"filter:delete <goal> <domain>",
	"pomodoro:set <work> <short> <long>",
	"plugin:doctor",
}

// Palette is a command-palette overlay backed by bubbles/textinput.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

// NewPalette creates an inactive Palette ready to be opened.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if m := Complete(p.input.Value()); m != "" {
				p.input.SetValue(m)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matching := Matches(p.input.Value(), 5)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

// Matches returns up to limit hints whose command word starts with the typed
// command word. Once arguments follow, only the exact command matches.
func Matches(input string, limit int) []string {
	fields := strings.Fields(strings.ToLower(input))
	word := ""
	if len(fields) > 0 {
		word = fields[0]
	}
	exact := len(fields) > 1 || strings.HasSuffix(input, " ")
	var out []string
	for _, h := range paletteHints {
		cmd := strings.Fields(h)[0]
		if exact && cmd != word {
			continue
		}
		if !strings.HasPrefix(cmd, word) {
			continue
		}
		out = append(out, h)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Complete expands a partial command word to the single command it names,
// or to the longest prefix shared by all candidates. It returns "" when
// nothing would change.
func Complete(input string) string {
	if strings.Contains(strings.TrimSpace(input), " ") {
		return ""
	}
	word := strings.ToLower(strings.TrimSpace(input))
	var cands []string
	for _, h := range paletteHints {
		if cmd := strings.Fields(h)[0]; strings.HasPrefix(cmd, word) {
			cands = append(cands, cmd)
		}
	}
	if len(cands) == 0 {
		return ""
	}
	if len(cands) == 1 {
		return cands[0] + " "
	}
	common := cands[0]
	for _, c := range cands[1:] {
		for !strings.HasPrefix(c, common) {
			common = common[:len(common)-1]
		}
	}
	if common == word {
		return ""
	}
	return common
}
