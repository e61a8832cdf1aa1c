package hud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mathfall/core"
	"github.com/lixenwraith/mathfall/engine"
	"github.com/lixenwraith/mathfall/logger"
	"github.com/lixenwraith/mathfall/status"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server exposes the spectator feed at /ws, registry metrics at /metrics and /health
type Server struct {
	hub      *Broadcaster
	reg      *status.Registry
	interval time.Duration
	log      *logrus.Entry

	httpServer *http.Server
	listener   net.Listener
	stopChan   chan struct{}
	stopOnce   sync.Once
}

// NewServer creates a feed server; interval <= 0 disables the periodic metrics frames
func NewServer(reg *status.Registry, interval time.Duration) *Server {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Server{
		hub:      NewBroadcaster(),
		reg:      reg,
		interval: interval,
		log:      logger.Component("hud"),
		stopChan: make(chan struct{}),
	}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/metrics", enableCORS(s.handleMetrics))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	return mux
}

// Start listens on addr and serves in the background
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("hud listen %s: %w", addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	core.Go(func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Warn("hud server stopped")
		}
	})
	if s.interval > 0 {
		core.Go(s.metricsPump)
	}

	s.log.WithField("addr", ln.Addr().String()).Info("spectator feed listening")
	return nil
}

// Addr returns the bound address, empty before Start
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Publish broadcasts a session snapshot; never blocks the caller
func (s *Server) Publish(snap engine.Snapshot) {
	snap.Equations = nil
	s.hub.Broadcast(Message{Type: TypeSnapshot, Time: time.Now(), Snapshot: &snap})
}

// Spectators returns the number of connected spectators
func (s *Server) Spectators() int {
	return s.hub.Len()
}

// Shutdown stops the listener and disconnects every spectator
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.hub.Close()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) metricsPump() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.hub.Broadcast(Message{Type: TypeMetrics, Time: time.Now(), Metrics: s.reg.Export()})
		}
	}
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}

// handleWS upgrades a spectator connection and starts its pumps
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	id, send := s.hub.Register()
	c := &client{
		id:   id,
		conn: conn,
		send: send,
		hub:  s.hub,
		log:  s.log.WithFields(logrus.Fields{"spectator": id, "remote": r.RemoteAddr}),
	}
	c.log.Info("spectator connected")

	core.Go(c.writePump)
	core.Go(c.readPump)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.reg.Export()); err != nil {
		s.log.WithError(err).Debug("metrics encode failed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
