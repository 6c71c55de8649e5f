package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/charmbracelet/wish/recover"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/galactic/internal/config"
	"github.com/tomz197/galactic/internal/draw"
	"github.com/tomz197/galactic/internal/game"
	"github.com/tomz197/galactic/internal/loop"
	"github.com/tomz197/galactic/internal/loop/client"
	"github.com/tomz197/galactic/internal/platform"
	"github.com/tomz197/galactic/internal/spawn"
)

const (
	defaultHost        = "::"
	defaultPort        = 2222
	defaultHostKeyPath = "/app/keys/host_key"
	shutdownTimeout    = 15 * time.Second
)

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port, err := config.Port("SSH_PORT", defaultPort)
	if err != nil {
		logger.Fatal("bad SSH port", "err", err)
	}
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	dataDir := config.DataDir()

	profile := config.ScaleProfile()
	tiers, err := config.LoadTiers()
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "data", dataDir)

	h := &handler{logger: logger, dataDir: dataDir, tiers: tiers, profile: profile}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			recover.MiddlewareWithLogger(logger,
				h.middleware,
				activeterm.Middleware(),
				logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
			),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting SSH server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		h.stopAll()

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// handler runs one game session per SSH connection.
type handler struct {
	logger  *log.Logger
	dataDir string
	tiers   spawn.Tiers
	profile string

	mu       sync.Mutex
	sessions map[string]context.CancelFunc
}

// middleware handles SSH sessions and runs the game client.
func (h *handler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		id := uuid.NewString()
		logger := h.logger.With("session", id, "user", sess.User())

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		out := draw.NewLockedWriter(sess)
		sharer := platform.NewClipboardSharer(out, false)
		deps, err := game.ForPlayer(h.dataDir, sess.User(), sharer, h.tiers, h.profile, uint64(time.Now().UnixNano()))
		if err != nil {
			logger.Error("failed to open save", "err", err)
			fmt.Fprintln(sess, "Error: could not load your save data.")
			return
		}
		deps.Logger = logger

		ctx, cancel := context.WithCancel(sess.Context())
		h.track(id, cancel)
		defer h.untrack(id)

		env := append(sess.Environ(), "TERM="+pty.Term)
		opts := client.ClientOptions{
			TermSizeFunc:       sizeTracker.getSize,
			Profile:            draw.ProfileFor(sess, env),
			DisconnectInactive: true,
		}
		if err := loop.Run(ctx, sess, out, deps, opts); err != nil {
			logger.Error("game error", "err", err)
		}
		next(sess)
	}
}

func (h *handler) track(id string, cancel context.CancelFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions == nil {
		h.sessions = make(map[string]context.CancelFunc)
	}
	h.sessions[id] = cancel
}

func (h *handler) untrack(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cancel, ok := h.sessions[id]; ok {
		cancel()
		delete(h.sessions, id)
	}
}

// stopAll ends every running game so players see their session close
// before the listener goes away.
func (h *handler) stopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cancel := range h.sessions {
		cancel()
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
