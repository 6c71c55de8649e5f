package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/tomz197/galactic/internal/config"
	"github.com/tomz197/galactic/internal/store"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = 8080
)

//go:embed index.html
var htmlPage string

func main() {
	logger := config.NewLogger(os.Stderr, "web")
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port, err := config.Port("WEB_PORT", defaultPort)
	if err != nil {
		logger.Fatal("bad web port", "err", err)
	}
	sshPort, err := config.Port("SSH_PORT", 2222)
	if err != nil {
		logger.Fatal("bad SSH port", "err", err)
	}
	page := strings.NewReplacer(
		"{{.SSHHost}}", config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		"{{.SSHPort}}", sshPort,
	).Replace(htmlPage)

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newRouter(page, config.DataDir(), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("Starting web server", "addr", "http://"+srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", "err", err)
	}
}

// scoreResponse is the JSON body of /api/scores/{player}.
type scoreResponse struct {
	Player string `json:"player"`
	Best   int    `json:"best"`
	Last   int    `json:"last"`
	Rate   int    `json:"rate"`
}

func newRouter(page, dataDir string, logger *log.Logger) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/scores/{player}", func(w http.ResponseWriter, req *http.Request) {
		player := mux.Vars(req)["player"]
		path := store.PathFor(dataDir, player)
		if _, err := os.Stat(path); err != nil {
			http.Error(w, "unknown player", http.StatusNotFound)
			return
		}
		st, err := store.Open(path)
		if err != nil {
			logger.Error("failed to open store", "player", player, "err", err)
			http.Error(w, "store unavailable", http.StatusInternalServerError)
			return
		}
		resp := scoreResponse{Player: player, Rate: 1}
		resp.Best, _ = store.GetOr(st, store.KeyBest, 0)
		resp.Last, _ = store.GetOr(st, store.KeyScore, 0)
		resp.Rate, _ = store.GetOr(st, store.KeyScoreRate, 1)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Warn("failed to write response", "err", err)
		}
	}).Methods(http.MethodGet)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			logger.Debug("request", "method", req.Method, "path", req.URL.Path, "duration", time.Since(start))
		})
	})
	return r
}
