package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pageplayer/internal/app"
	"github.com/llehouerou/pageplayer/internal/catalog"
	"github.com/llehouerou/pageplayer/internal/config"
	"github.com/llehouerou/pageplayer/internal/errmsg"
	"github.com/llehouerou/pageplayer/internal/i18n"
	"github.com/llehouerou/pageplayer/internal/icons"
	"github.com/llehouerou/pageplayer/internal/logging"
	"github.com/llehouerou/pageplayer/internal/mpris"
	"github.com/llehouerou/pageplayer/internal/playback"
	"github.com/llehouerou/pageplayer/internal/player"
	"github.com/llehouerou/pageplayer/internal/settings"
	"github.com/llehouerou/pageplayer/internal/stderr"
	"github.com/llehouerou/pageplayer/internal/ui/styles"
	"github.com/llehouerou/pageplayer/internal/wsbridge"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel())
	if err != nil {
		return err
	}
	log, logFile, err := logging.OpenFile(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer logFile.Close()
	slog.SetDefault(log)

	// Audio backends write to fd 2, which would corrupt the TUI.
	if err := stderr.Start(log); err != nil {
		log.Warn("stderr capture unavailable", "err", err)
	}
	defer stderr.Stop()

	icons.Init(cfg.IconStyle())

	// Startup problems are shown in the banner; the player still starts.
	var startupErrs []string

	store, err := settings.Open(cfg.StorageBackend(), cfg.Storage.Path)
	if err != nil {
		log.Error("settings store unavailable, using memory", "err", err)
		startupErrs = append(startupErrs, errmsg.Format(errmsg.OpSettingsOpen, err))
		store = settings.NewMemory()
	}
	defer store.Close()

	prefs := settings.NewPrefs(store)
	values, err := prefs.Load()
	if err != nil {
		log.Warn("could not read settings, using defaults", "err", err)
		startupErrs = append(startupErrs, errmsg.Format(errmsg.OpSettingsLoad, err))
	}

	bundle, err := i18n.Load(values.Language, cfg.I18n.Dir)
	if err != nil {
		log.Warn("translations unavailable", "lang", values.Language, "err", err)
		startupErrs = append(startupErrs, errmsg.Format(errmsg.OpLanguageLoad, err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := playback.NewLoop()
	go func() { _ = loop.Run(ctx) }()
	defer loop.Stop()

	out := player.New(log.With("component", "player"))
	engine := playback.New(out, prefs, playback.Options{
		Initial:    values.PlaybackState(),
		Logger:     log,
		Dispatcher: loop,
	})
	session := playback.NewSession(engine, loop, log)
	defer func() {
		// Close on the loop; the engine is not safe to touch from here.
		if err := session.Exec(context.Background(), func(e *playback.Engine) error {
			e.Close()
			return nil
		}); err != nil && !errors.Is(err, playback.ErrLoopStopped) {
			log.Warn("engine close", "err", err)
		}
	}()

	if cfg.MprisEnabled() {
		adapter, err := mpris.New(session, mpris.Options{
			Title:  func(p catalog.Page) string { return bundle.PageTitle(p.ID) },
			Artist: bundle.T("reciterName"),
			Album:  bundle.T("surahName"),
			Logger: log,
		})
		if err != nil {
			log.Warn("media keys unavailable", "err", err)
			startupErrs = append(startupErrs, errmsg.Format(errmsg.OpMediaKeys, err))
		} else {
			defer adapter.Close()
		}
	}

	if cfg.HasWebConfig() {
		ln, err := net.Listen("tcp", cfg.Web.Addr)
		if err != nil {
			log.Error("browser bridge unavailable", "addr", cfg.Web.Addr, "err", err)
			startupErrs = append(startupErrs, errmsg.Format(errmsg.OpBridgeStart, err))
		} else {
			bridge := wsbridge.New(session, wsbridge.Options{
				AllowedOrigins: cfg.Web.AllowedOrigins,
				Logger:         log,
			})
			go func() {
				if err := bridge.Serve(ctx, ln); err != nil {
					log.Error("browser bridge stopped", "err", err)
				}
			}()
		}
	}

	model := app.New(app.Options{
		Session:      session,
		Prefs:        prefs,
		Bundle:       bundle,
		I18nDir:      cfg.I18n.Dir,
		Theme:        styles.ParseName(values.Theme),
		Logger:       log,
		StartupError: firstOf(startupErrs),
	})

	// The UI is subscribed by now, so a catalog failure reaches the banner.
	go loadCatalog(ctx, cfg, session, log)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}
	return nil
}

func loadCatalog(ctx context.Context, cfg *config.Config, session *playback.Session, log *slog.Logger) {
	pages, err := catalog.Load(ctx, catalog.Options{
		Source:       catalog.Source(cfg.CatalogSource()),
		AudioDir:     cfg.Catalog.AudioDir,
		ManifestPath: cfg.Catalog.Manifest,
		Cover:        cfg.Catalog.Cover,
		Remote: catalog.RemoteOptions{
			ManifestURL: cfg.Catalog.Remote.ManifestURL,
			BaseURL:     cfg.Catalog.Remote.BaseURL,
			Reciter:     cfg.Catalog.Remote.Reciter,
			Surah:       cfg.Catalog.Remote.Surah,
			Timeout:     cfg.RemoteTimeout(),
		},
	})
	if err == nil && len(pages) == 0 {
		err = catalog.ErrUnavailable
	}
	if err != nil {
		session.Post(func(e *playback.Engine) error {
			e.OnCatalogUnavailable(err)
			return nil
		})
		return
	}
	log.Info("catalog loaded", "source", cfg.CatalogSource(), "pages", len(pages))
	session.Post(func(e *playback.Engine) error {
		e.SetCatalog(pages)
		return nil
	})
}

func firstOf(msgs []string) string {
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0]
}
