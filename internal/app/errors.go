package app

import (
	"errors"
	"strings"

	"github.com/llehouerou/pageplayer/internal/errmsg"
	"github.com/llehouerou/pageplayer/internal/playback"
)

// engineErrorText translates an engine error for the banner. Failures with
// no translation fall back to the English operation message.
func (m Model) engineErrorText(ev EngineErrorMsg) string {
	switch {
	case errors.Is(ev.Err, playback.ErrPlaybackRejected):
		return m.bundle.T("errorPlaybackRejected")
	case ev.Operation == playback.OpMedia:
		return m.bundle.T("errorMedia")
	case ev.Operation == playback.OpCatalog:
		return m.bundle.T("errorCatalog")
	case strings.HasPrefix(ev.Operation, "save "):
		return m.bundle.T("errorSettings")
	default:
		return errmsg.Format(opFor(ev.Operation), ev.Err)
	}
}

// opFor maps an engine operation to its user-facing description.
func opFor(operation string) errmsg.Op {
	switch {
	case operation == playback.OpCatalog:
		return errmsg.OpCatalogLoad
	case operation == playback.OpPlay:
		return errmsg.OpPlaybackStart
	case operation == playback.OpMedia:
		return errmsg.OpMediaLoad
	case strings.HasPrefix(operation, "save "):
		return errmsg.OpSettingsSave
	default:
		return errmsg.Op(operation)
	}
}
