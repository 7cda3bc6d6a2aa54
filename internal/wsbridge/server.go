// Package wsbridge serves the player state to browser renderers over a
// websocket and accepts their transport commands.
//
// Every frame is a JSON envelope {type, ts, data}. A new connection first
// receives "state_init" with a full snapshot, then one frame per engine
// notification.
package wsbridge

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	"github.com/llehouerou/pageplayer/internal/playback"
)

const snapshotTimeout = time.Second

// Session is the engine handle used by the bridge. *playback.Session
// implements it.
type Session interface {
	Post(fn func(*playback.Engine) error)
	Snapshot(ctx context.Context) (playback.Snapshot, error)
	Subscribe() *playback.Subscription
}

// Options configures a Server.
type Options struct {
	// AllowedOrigins lists the browser origins that may connect, e.g.
	// "http://localhost:5173". Empty allows any origin.
	AllowedOrigins []string
	Logger         *slog.Logger

	SendBuf      int // per-client queue (default 32)
	BroadcastBuf int // hub queue (default 128)
}

// Server owns the hub and turns engine notifications into frames.
type Server struct {
	session  Session
	sub      *playback.Subscription
	hub      *hub
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// New creates a server and subscribes to the engine. Call Run to start
// broadcasting.
func New(session Session, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "wsbridge")

	s := &Server{
		session: session,
		sub:     session.Subscribe(),
		hub:     newHub(log, opts.SendBuf, opts.BroadcastBuf),
		log:     log,
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: originChecker(opts.AllowedOrigins)}
	return s
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if len(allowed) == 0 || origin == "" {
			return true
		}
		return slices.Contains(allowed, origin)
	}
}

// Handler returns the HTTP handler serving the websocket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run drives the hub and the broadcaster until ctx is canceled or the
// engine closes.
func (s *Server) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.hub.run(ctx)
	s.broadcast(ctx, s.sub)
}

// ListenAndServe listens on addr and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves Handler on ln and runs the server until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("websocket bridge listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade failed", "err", err)
		return
	}

	// state_init is queued before the client joins the hub, so it is
	// always the first frame the client reads.
	ctx, cancel := context.WithTimeout(r.Context(), snapshotTimeout)
	defer cancel()
	snap, err := s.session.Snapshot(ctx)
	if err != nil {
		s.log.Warn("ws snapshot failed", "remote_addr", r.RemoteAddr, "err", err)
		_ = conn.Close()
		return
	}
	msg, err := encode(TypeStateInit, toSnapshotData(snap), time.Now())
	if err != nil {
		s.log.Warn("ws encode failed", "type", TypeStateInit, "err", err)
		_ = conn.Close()
		return
	}

	c := newClient(s.hub, conn, r.RemoteAddr)
	c.send <- msg
	s.hub.register <- c

	// The pumps outlive the request; the hub and socket errors end them.
	go c.writePump()
	go c.readPump(s.handleCommand)
}

// handleCommand runs an inbound command on the engine. Malformed frames get
// an error frame back; engine failures reach every client as events.
func (s *Server) handleCommand(c *client, raw []byte) {
	typ, fn, err := parseCommand(raw)
	if err != nil {
		s.log.Debug("ws bad command", "remote_addr", c.remoteAddr, "err", err)
		if msg, encErr := encode(TypeError, errorData{Operation: typ, Index: -1, Message: err.Error()}, time.Now()); encErr == nil {
			c.enqueue(msg)
		}
		return
	}
	s.log.Debug("ws command", "remote_addr", c.remoteAddr, "type", typ)
	s.session.Post(fn)
}

// broadcast forwards notifications from sub to every client until ctx is
// canceled or the engine closes.
func (s *Server) broadcast(ctx context.Context, sub *playback.Subscription) {
	for {
		var (
			typ  string
			data any
		)
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case ev := <-sub.PageChanged:
			typ, data = TypePageChanged, pageChangedData{Previous: ev.Previous, Index: ev.Index, Page: toPageData(ev.Page)}
		case ev := <-sub.PlayStateChanged:
			typ, data = TypePlayState, playStateData{Playing: ev.Playing}
		case ev := <-sub.StatusChanged:
			typ, data = TypeStatus, statusData{Previous: ev.Previous.String(), Current: ev.Current.String()}
		case ev := <-sub.ProgressChanged:
			typ, data = TypeProgress, progressData{PositionMS: ev.Position.Milliseconds(), DurationMS: ev.Duration.Milliseconds()}
		case ev := <-sub.RepeatModeChanged:
			typ, data = TypeRepeatMode, repeatData{Mode: repeatName(ev.Mode)}
		case ev := <-sub.SpeedChanged:
			typ, data = TypeSpeed, speedData{Speed: ev.Speed}
		case ev := <-sub.VolumeChanged:
			typ, data = TypeVolume, volumeData{Volume: ev.Volume, Muted: ev.Muted}
		case ev := <-sub.Error:
			msg := ""
			if ev.Err != nil {
				msg = ev.Err.Error()
			}
			typ, data = TypeError, errorData{Operation: ev.Operation, Index: ev.Index, Message: msg}
		}

		msg, err := encode(typ, data, time.Now())
		if err != nil {
			s.log.Warn("ws encode failed", "type", typ, "err", err)
			continue
		}
		s.hub.broadcastBytes(msg)
	}
}
