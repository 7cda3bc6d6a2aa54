//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		name            string
		context         string
		expectMinLength int
	}{
		{"global context", "global", 5},
		{"playback context", "playback", 10},
		{"library context", "library", 5},
		{"unknown context returns empty", "unknown", 0},
		{"empty context returns empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByContext(tt.context)

			if tt.expectMinLength == 0 && len(result) != 0 {
				t.Errorf("ByContext(%q) returned %d items, expected empty", tt.context, len(result))
			}
			if len(result) < tt.expectMinLength {
				t.Errorf("ByContext(%q) returned %d items, expected at least %d", tt.context, len(result), tt.expectMinLength)
			}
			for _, binding := range result {
				if binding.Context != tt.context {
					t.Errorf("binding context = %q, want %q", binding.Context, tt.context)
				}
			}
		})
	}
}

func TestAll_NoKeyBoundTwice(t *testing.T) {
	seen := map[string]Action{}
	for _, b := range All {
		for _, k := range b.Keys {
			if prev, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %s and %s", k, prev, b.Action)
			}
			seen[k] = b.Action
		}
	}
}

func TestAll_BindingsDocumented(t *testing.T) {
	for _, b := range All {
		if b.Action == "" || len(b.Keys) == 0 || b.Description == "" || b.Context == "" {
			t.Errorf("incomplete binding: %+v", b)
		}
	}
}

func TestKeyBinding_MatchesTeaKeys(t *testing.T) {
	tests := []struct {
		msg    tea.KeyMsg
		action Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ActionPlayPause},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, ActionNextPage},
		{tea.KeyMsg{Type: tea.KeyPgUp}, ActionPrevPage},
		{tea.KeyMsg{Type: tea.KeyEnter}, ActionSelect},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, ActionQuit},
	}
	r := NewResolver(All)
	for _, tt := range tests {
		if got := r.Resolve(tt.msg.String()); got != tt.action {
			t.Errorf("Resolve(%q) = %q, want %q", tt.msg.String(), got, tt.action)
		}
		for _, b := range All {
			if b.Action == tt.action && !key.Matches(tt.msg, b.KeyBinding()) {
				t.Errorf("key.Matches(%q, %s) = false", tt.msg.String(), b.Action)
			}
		}
	}
}

func TestHelpKeySpellsSpace(t *testing.T) {
	b := Binding{Action: ActionPlayPause, Keys: []string{" "}, Description: "Play"}
	if got := b.KeyBinding().Help().Key; got != "space" {
		t.Errorf("help key = %q, want space", got)
	}
}

func TestNewHelp(t *testing.T) {
	h := NewHelp(All)

	if len(h.ShortHelp()) != 6 {
		t.Errorf("ShortHelp() has %d bindings, want 6", len(h.ShortHelp()))
	}
	if len(h.FullHelp()) != 3 {
		t.Fatalf("FullHelp() has %d columns, want 3 (global, playback, library)", len(h.FullHelp()))
	}
	if len(h.FullHelp()[1]) != len(ByContext("playback")) {
		t.Errorf("playback column has %d bindings", len(h.FullHelp()[1]))
	}

	var _ help.KeyMap = h
	if out := help.New().View(h); out == "" {
		t.Error("help view should render")
	}
}
