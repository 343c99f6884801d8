package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"hyprfocus/internal/ui/components"
)

func TestCompleteExpandsCommandWord(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"task:a":     "task:add ",
		"wee":        "week:",
		"week:":      "",
		"plug":       "plugin:doctor ",
		"nope":       "",
		"task:add x": "",
	}
	for in, want := range cases {
		if got := components.Complete(in); got != want {
			t.Fatalf("Complete(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMatchesNarrowsOnceArgumentsFollow(t *testing.T) {
	t.Parallel()
	if got := components.Matches("", 5); len(got) != 5 {
		t.Fatalf("empty input lists the first hints, got %v", got)
	}
	if got := components.Matches("ads:", 10); len(got) != 3 {
		t.Fatalf("expected the three ads commands, got %v", got)
	}
	got := components.Matches("task:done 3", 10)
	if len(got) != 1 || got[0] != "task:done <n>" {
		t.Fatalf("unexpected matches %v", got)
	}
}

func TestPaletteSubmitsTrimmedInput(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	for _, r := range " week:next " {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("enter must close the palette")
	}
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok || msg.Input != "week:next" {
		t.Fatalf("unexpected submit %+v", msg)
	}
}
