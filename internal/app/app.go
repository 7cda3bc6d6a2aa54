// Package app is the terminal front end: a Bubble Tea model over a playback
// session.
package app

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pageplayer/internal/i18n"
	"github.com/llehouerou/pageplayer/internal/keymap"
	"github.com/llehouerou/pageplayer/internal/playback"
	"github.com/llehouerou/pageplayer/internal/ui/cursor"
	"github.com/llehouerou/pageplayer/internal/ui/playerbar"
	"github.com/llehouerou/pageplayer/internal/ui/styles"
)

// Session is the engine handle the UI drives. *playback.Session
// implements it.
type Session interface {
	Post(fn func(*playback.Engine) error)
	Snapshot(ctx context.Context) (playback.Snapshot, error)
	Subscribe() *playback.Subscription
}

// Preferences persists the interface settings the engine doesn't own.
type Preferences interface {
	SaveTheme(theme string) error
	SaveLanguage(lang string) error
}

// Options configures New.
type Options struct {
	Session Session
	Prefs   Preferences
	Bundle  *i18n.Bundle
	I18nDir string
	Theme   styles.Name
	Logger  *slog.Logger

	// StartupError is shown in the error banner on the first frame.
	StartupError string
}

// Model is the root application model.
type Model struct {
	session Session
	sub     *playback.Subscription
	prefs   Preferences
	log     *slog.Logger

	bundle   *i18n.Bundle
	i18nDir  string
	theme    *styles.Theme
	keys     *keymap.Resolver
	help     help.Model
	helpKeys keymap.Help

	snap          playback.Snapshot
	synced        bool
	catalogFailed bool

	list        cursor.Cursor
	showLibrary bool
	showHelp    bool

	errorMsg     string
	errorVersion int

	width, height int
}

// New creates the model and subscribes to the session.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	bundle := opts.Bundle
	if bundle == nil {
		bundle, _ = i18n.Load(i18n.Fallback, opts.I18nDir)
	}

	return Model{
		session:     opts.Session,
		sub:         opts.Session.Subscribe(),
		prefs:       opts.Prefs,
		log:         log.With("component", "app"),
		bundle:      bundle,
		i18nDir:     opts.I18nDir,
		theme:       styles.ForName(opts.Theme),
		keys:        keymap.NewResolver(keymap.All),
		help:        help.New(),
		helpKeys:    keymap.NewHelp(keymap.All),
		list:        cursor.New(1),
		showLibrary: true,
		errorMsg:    opts.StartupError,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.FetchSnapshot(), m.WatchEvents())
}

// playerMode picks the expanded bar when there is room for it.
func (m Model) playerMode() playerbar.DisplayMode {
	if m.height >= 20 {
		return playerbar.ModeExpanded
	}
	return playerbar.ModeCompact
}
