package net

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"GestureBoard/internal/engine"
	"GestureBoard/internal/logging"
	"GestureBoard/internal/session"
)

const writeWait = 5 * time.Second

// Peer is one connected client and the session it owns.
type Peer struct {
	ID   string
	Conn *websocket.Conn
	mu   sync.Mutex // serializes writes
}

// Send writes one message to the peer.
func (p *Peer) Send(msg NetworkMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return p.Conn.WriteJSON(msg)
}

// PeerManager tracks the live connections by session id. It is the output
// collaborator of the engine.
type PeerManager struct {
	peers map[string]*Peer
	mu    sync.RWMutex
	log   *slog.Logger
}

// NewPeerManager creates a new manager.
func NewPeerManager(log *slog.Logger) *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
		log:   logging.OrNop(log),
	}
}

// Add registers a peer under its session id.
func (pm *PeerManager) Add(p *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peers[p.ID] = p
	pm.log.Info("transport: client connected", "session", p.ID, "remote", p.Conn.RemoteAddr().String())
}

// Remove forgets the peer of a session.
func (pm *PeerManager) Remove(id string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.peers, id)
}

// EmitFrame sends a canvas frame to the peer owning session id.
func (pm *PeerManager) EmitFrame(id string, f engine.Frame) error {
	pm.mu.RLock()
	p, ok := pm.peers[id]
	pm.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no peer for session %s", id)
	}
	return p.Send(NetworkMessage{Type: TypeCanvasFrame, Seq: f.Seq, Image: f.Image})
}

// CloseAll sends a going-away close frame to every peer and closes the
// connections, which ends their read loops.
func (pm *PeerManager) CloseAll() {
	pm.mu.RLock()
	peers := make([]*Peer, 0, len(pm.peers))
	for _, p := range pm.peers {
		peers = append(peers, p)
	}
	pm.mu.RUnlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, p := range peers {
		_ = p.Conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		if err := p.Conn.Close(); err != nil {
			pm.log.Debug("transport: close failed", "session", p.ID, "error", err)
		}
	}
}

// ServerOptions configures a Server.
type ServerOptions struct {
	WSPath         string
	AllowedOrigins []string // empty = any origin
	ReadLimit      int64
}

// Server accepts WebSocket clients and runs one session per connection.
type Server struct {
	engine   *engine.Engine
	peers    *PeerManager
	opts     ServerOptions
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewServer creates a server feeding e. peers must be the Emitter e was
// built with.
func NewServer(e *engine.Engine, peers *PeerManager, opts ServerOptions, log *slog.Logger) *Server {
	if opts.WSPath == "" {
		opts.WSPath = "/ws"
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = 64 << 10
	}
	s := &Server{engine: e, peers: peers, opts: opts, log: logging.OrNop(log)}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 64 << 10,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.opts.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.opts.AllowedOrigins {
		if o == origin {
			return true
		}
	}
	return false
}

// Handler returns the HTTP routes: the WebSocket endpoint and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.opts.WSPath, s)
	mux.HandleFunc("/healthz", s.health)
	return mux
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.engine.Sessions(),
	})
}

// ServeHTTP upgrades the request and runs the session until the client
// disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("transport: upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	s.serve(conn)
}

// Shutdown disconnects every client.
func (s *Server) Shutdown() {
	s.peers.CloseAll()
}

func (s *Server) serve(conn *websocket.Conn) {
	peer := &Peer{ID: uuid.NewString(), Conn: conn}
	s.peers.Add(peer)
	defer s.peers.Remove(peer.ID)
	defer conn.Close()

	conn.SetReadLimit(s.opts.ReadLimit)
	if err := s.engine.Open(peer.ID); err != nil {
		_ = peer.Send(NetworkMessage{Type: TypeError, Message: "Failed to initialize session"})
		return
	}
	defer s.engine.Close(peer.ID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("transport: connection lost", "session", peer.ID, "error", err)
			} else {
				s.log.Info("transport: client disconnected", "session", peer.ID)
			}
			return
		}
		s.dispatch(peer, data)
	}
}

func (s *Server) dispatch(peer *Peer, data []byte) {
	msg, err := DecodeMessage(data)
	if err != nil {
		s.log.Warn("transport: dropping message", "session", peer.ID, "error", err)
		return
	}
	switch msg.Type {
	case TypeLandmarks:
		sample, err := msg.Sample()
		if err != nil {
			s.log.Warn("transport: dropping frame", "session", peer.ID, "error", err)
			return
		}
		// Failures are logged by the engine and never end the session.
		_ = s.engine.ProcessFrame(peer.ID, sample)
	case TypeSaveCanvas:
		s.save(peer, msg.Format)
	}
}

func (s *Server) save(peer *Peer, format string) {
	status := NetworkMessage{Type: TypeSaveStatus}
	name, err := s.engine.SaveCanvas(peer.ID, format)
	switch {
	case err == nil:
		status.OK = true
		status.Filename = name
		status.Message = "Canvas saved as " + name
	case errors.Is(err, session.ErrNotFound):
		status.Message = "Error: User session not found"
	default:
		status.Message = "Error: Failed to save canvas"
	}
	if err := peer.Send(status); err != nil {
		s.log.Warn("transport: save status not delivered", "session", peer.ID, "error", err)
	}
}
