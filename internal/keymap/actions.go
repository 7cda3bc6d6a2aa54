// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit          Action = "quit"
	ActionHelp          Action = "help"
	ActionToggleTheme   Action = "toggle_theme"
	ActionCycleLanguage Action = "cycle_language"
	ActionToggleLibrary Action = "toggle_library"
	ActionDismissError  Action = "dismiss_error"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionNextPage    Action = "next_page"
	ActionPrevPage    Action = "prev_page"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionCycleRepeat Action = "cycle_repeat"
	ActionVolumeUp    Action = "volume_up"
	ActionVolumeDown  Action = "volume_down"
	ActionToggleMute  Action = "toggle_mute"
	ActionSpeedUp     Action = "speed_up"
	ActionSpeedDown   Action = "speed_down"
	ActionSpeedReset  Action = "speed_reset"

	// Library navigation
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionSelect    Action = "select" // enter - play page, or toggle if already current
)
