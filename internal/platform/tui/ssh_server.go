package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/siege-arcade/internal/core"
	"github.com/vovakirdan/siege-arcade/internal/logging"
	"github.com/vovakirdan/siege-arcade/internal/multiplayer"
	"github.com/vovakirdan/siege-arcade/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the multi-user SSH arcade.
type SSHServerConfig struct {
	Address     string        // listen address, e.g. ":23234"
	HostKeyPath string        // generated on first start; empty means ~/.arcade/host_key
	DBPath      string        // shared scores and per-user progress
	IdleTimeout time.Duration // idle connections are dropped after this
	TickRate    int

	// Assets is shared read-only by every session. Nil draws fallback shapes.
	Assets core.AssetSource

	// Logger receives server and session events. Nil logs to stderr.
	Logger *log.Logger
}

// SSHServer serves one independent arcade session per SSH connection.
// Sessions share the score database and the asset library, nothing else.
type SSHServer struct {
	cfg      SSHServerConfig
	srv      *ssh.Server
	store    *storage.Store
	logger   *log.Logger
	sessions *multiplayer.SessionRegistry
}

// NewSSHServer prepares the server. A database that cannot be opened is
// logged and the server runs without persistence.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	s := &SSHServer{
		cfg:      cfg,
		logger:   cfg.Logger,
		sessions: multiplayer.NewSessionRegistry(),
	}
	if s.logger == nil {
		s.logger = logging.New(os.Stderr, logging.Options{Prefix: "arcade-ssh"})
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	if store, err := storage.Open(cfg.DBPath); err != nil {
		s.logger.Warn("scores disabled", "db", cfg.DBPath, "error", err)
	} else {
		s.store = store
	}

	// Middlewares run last to first: track the session, reject non-PTY
	// clients, then hand the terminal to Bubble Tea.
	s.srv, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			activeterm.Middleware(),
			s.track,
		),
	)
	if err != nil {
		s.store.Close()
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}
	return s, nil
}

func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot locate home directory: %w", err)
		}
		path = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return path, nil
}

// Serve accepts connections until ctx is cancelled, then drains sessions
// for a short grace period.
func (s *SSHServer) Serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()
	s.logger.Info("listening", "address", s.cfg.Address)

	select {
	case err := <-errc:
		s.store.Close()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "active", s.sessions.Count())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	err := s.srv.Shutdown(shutdownCtx)
	s.store.Close()
	return err
}

type sessionIDKey struct{}

// track registers the connection for its lifetime and logs it.
func (s *SSHServer) track(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		id := multiplayer.NewSessionID(sess.User())
		sess.Context().SetValue(sessionIDKey{}, id)
		s.sessions.Register(multiplayer.SessionInfo{ID: id, Username: sess.User()})
		defer s.sessions.Unregister(id)

		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String(), "session", id)
		l.Info("session started", "active", s.sessions.Count())
		start := time.Now()
		next(sess)
		l.Info("session ended", "duration", time.Since(start).Round(time.Second))
	}
}

// newSession builds the Bubble Tea program for one connection. Every session
// gets its own renderer so colors match the client terminal.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	id, ok := sess.Context().Value(sessionIDKey{}).(multiplayer.SessionID)
	if !ok {
		id = multiplayer.NewSessionID(sess.User())
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.cfg.TickRate,
		Seed:     time.Now().UnixNano(),
		Assets:   s.cfg.Assets,
		Profile:  sess.User(),
	}
	if s.store != nil {
		cfg.Store = s.store
	}
	opts := Options{
		Store:   s.store,
		Logger:  s.logger.With("user", sess.User()),
		Painter: NewPainter(bubbletea.MakeRenderer(sess)),
	}
	return NewSessionModel(cfg, opts, id, s.sessions), programOptions()
}
