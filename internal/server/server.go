package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"sagrada/internal/config"
)

const shutdownTimeout = 5 * time.Second

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	port     int
	static   embed.FS
	log      *zap.Logger
}

// New builds a server. store may be nil when no archive is configured.
func New(cfg config.Config, static embed.FS, store ResultStore, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		handlers: NewHandlers(cfg, store, log),
		port:     cfg.Port,
		static:   static,
		log:      log,
	}
}

// Routes returns the HTTP handler serving the API, WebSocket and static files.
func (s *Server) Routes() (http.Handler, error) {
	mux := http.NewServeMux()

	// Static files from embedded FS
	sub, err := fs.Sub(s.static, "web/static")
	if err != nil {
		return nil, fmt.Errorf("static fs: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	// API routes
	mux.HandleFunc("/api/create", s.handlers.HandleCreateGame)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/api/player-id", s.handlers.HandlePlayerID)
	mux.HandleFunc("/api/results", s.handlers.HandleResults)
	mux.HandleFunc("/ws", s.handlers.HandleWS)
	return mux, nil
}

// Start serves until ctx is cancelled, then stops every hub and drains
// open HTTP requests.
func (s *Server) Start(ctx context.Context) error {
	handler, err := s.Routes()
	if err != nil {
		return err
	}
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("sagrada server starting", zap.String("addr", "http://localhost"+addr))
	s.log.Info("create a game", zap.String("url", "http://localhost"+addr+"/api/create"))

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		s.handlers.Shutdown()
		return err
	case <-ctx.Done():
	}
	s.log.Info("shutting down")
	s.handlers.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
