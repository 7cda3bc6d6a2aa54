// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpCatalogLoad Op = "load page catalog"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpMediaLoad     Op = "load page audio"

	// Settings operations
	OpSettingsOpen Op = "open settings store"
	OpSettingsLoad Op = "load settings"
	OpSettingsSave Op = "save settings"

	// Interface
	OpLanguageLoad Op = "load translations"
	OpThemeSave    Op = "save theme"

	// Integrations
	OpBridgeStart Op = "start browser bridge"
	OpMediaKeys   Op = "register media keys"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
