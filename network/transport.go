package network

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/tubby-terrors/status"
)

// Transport serves the websocket bridge and its health and status endpoints
type Transport struct {
	config   *Config
	registry *status.Registry
	peers    *PeerManager
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	sinkMu sync.RWMutex
	sink   Sink

	server   *http.Server
	listener net.Listener
	running  atomic.Bool
	wg       sync.WaitGroup
}

// NewTransport creates a transport with the given configuration
func NewTransport(cfg *Config, reg *status.Registry) *Transport {
	if reg == nil {
		reg = status.NewRegistry()
	}
	t := &Transport{
		config:   cfg,
		registry: reg,
		peers:    NewPeerManager(cfg),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			// Local play from any page; no credentials cross this socket
			CheckOrigin: func(*http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	t.mux.HandleFunc("GET /ws", t.handleWS)
	t.mux.HandleFunc("GET /health", handleHealth)
	t.mux.HandleFunc("GET /debug/status", t.handleStatus)
	return t
}

// SetHandlers configures connection callbacks
func (t *Transport) SetHandlers(onConnect, onDisconnect func(PeerID)) {
	t.peers.SetHandlers(onConnect, onDisconnect)
}

// SetSink routes decoded client input; connections are refused until set
func (t *Transport) SetSink(sink Sink) {
	t.sinkMu.Lock()
	t.sink = sink
	t.sinkMu.Unlock()
}

// Handler exposes the routes for embedding or tests
func (t *Transport) Handler() http.Handler {
	return t.mux
}

// Start binds the listener and serves in the background
func (t *Transport) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return nil
	}

	ln, err := net.Listen("tcp", t.config.Address)
	if err != nil {
		t.running.Store(false)
		return err
	}
	t.listener = ln
	t.server = &http.Server{
		Handler:           t.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if err := t.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("web bridge stopped: %v", err)
		}
	}()

	log.Printf("web bridge listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address, nil before Start
func (t *Transport) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

// Stop closes every peer and shuts the server down
func (t *Transport) Stop() error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}

	t.peers.Close()

	ctx, cancel := context.WithTimeout(context.Background(), t.config.WriteTimeout)
	defer cancel()
	err := t.server.Shutdown(ctx)
	t.wg.Wait()
	return err
}

// Broadcast sends to all peers
func (t *Transport) Broadcast(data []byte) {
	t.peers.Broadcast(data)
}

// PeerCount returns connected peer count
func (t *Transport) PeerCount() int {
	return t.peers.Count()
}

// IsRunning returns transport state
func (t *Transport) IsRunning() bool {
	return t.running.Load()
}

func (t *Transport) handleWS(w http.ResponseWriter, r *http.Request) {
	t.sinkMu.RLock()
	sink := t.sink
	t.sinkMu.RUnlock()
	if sink.Events == nil || sink.Intents == nil {
		http.Error(w, "game not attached", http.StatusServiceUnavailable)
		return
	}

	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	if _, err := t.peers.Add(conn, sink); err != nil {
		log.Printf("rejected %s: %v", r.RemoteAddr, err)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("OK"))
}

func (t *Transport) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(t.registry.Export()); err != nil {
		log.Printf("status encode: %v", err)
	}
}
