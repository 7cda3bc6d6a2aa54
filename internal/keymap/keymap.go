// Package keymap defines key bindings for the application.
package keymap

import "github.com/charmbracelet/bubbles/key"

// Binding maps keys to an action, with documentation for the help view.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "library"
}

// All contains every key binding.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},
	{ActionToggleTheme, []string{"t"}, "Toggle theme", "global"},
	{ActionCycleLanguage, []string{"L"}, "Switch language", "global"},
	{ActionToggleLibrary, []string{"tab"}, "Show/hide library", "global"},
	{ActionDismissError, []string{"esc"}, "Dismiss error", "global"},

	// Playback
	{ActionPlayPause, []string{"space", " "}, "Play/pause", "playback"},
	{ActionNextPage, []string{"n", "pgdown"}, "Next page", "playback"},
	{ActionPrevPage, []string{"p", "pgup"}, "Previous page", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek -5s", "playback"},
	{ActionCycleRepeat, []string{"r"}, "Cycle repeat mode", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"m"}, "Mute/unmute", "playback"},
	{ActionSpeedUp, []string{"]"}, "Speed up", "playback"},
	{ActionSpeedDown, []string{"["}, "Speed down", "playback"},
	{ActionSpeedReset, []string{"0"}, "Normal speed", "playback"},

	// Library
	{ActionMoveUp, []string{"k", "up"}, "Move up", "library"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "library"},
	{ActionJumpStart, []string{"g", "home"}, "First page", "library"},
	{ActionJumpEnd, []string{"G", "end"}, "Last page", "library"},
	{ActionSelect, []string{"enter"}, "Play page", "library"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// helpKey returns the key shown in help: the first one, with the literal
// space binding spelled out.
func (b Binding) helpKey() string {
	if len(b.Keys) == 0 {
		return ""
	}
	if b.Keys[0] == " " {
		return "space"
	}
	return b.Keys[0]
}

// KeyBinding converts b to a bubbles key.Binding.
func (b Binding) KeyBinding() key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(b.helpKey(), b.Description),
	)
}

// Help implements help.KeyMap over a binding set.
type Help struct {
	Short []key.Binding
	Full  [][]key.Binding
}

// NewHelp builds the help key map: the short view lists the core playback
// actions, the full view one column per context.
func NewHelp(bindings []Binding) Help {
	short := map[Action]bool{
		ActionPlayPause: true, ActionNextPage: true, ActionPrevPage: true,
		ActionCycleRepeat: true, ActionHelp: true, ActionQuit: true,
	}

	var h Help
	columns := map[string][]key.Binding{}
	var order []string
	for _, b := range bindings {
		kb := b.KeyBinding()
		if short[b.Action] {
			h.Short = append(h.Short, kb)
		}
		if _, ok := columns[b.Context]; !ok {
			order = append(order, b.Context)
		}
		columns[b.Context] = append(columns[b.Context], kb)
	}
	for _, ctx := range order {
		h.Full = append(h.Full, columns[ctx])
	}
	return h
}

func (h Help) ShortHelp() []key.Binding { return h.Short }

func (h Help) FullHelp() [][]key.Binding { return h.Full }
