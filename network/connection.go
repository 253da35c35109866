package network

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/tubby-terrors/input"
)

var ErrMaxPeers = errors.New("max peers reached")

// PeerID uniquely identifies a connected browser
type PeerID = uuid.UUID

// Sink receives decoded client input; the frame loop owns both channels
type Sink struct {
	Events  chan<- input.Event
	Intents chan<- input.Intent
}

// Peer is one websocket client
type Peer struct {
	ID       PeerID
	Addr     string
	LastSeen atomic.Int64 // UnixNano

	conn   *websocket.Conn
	config *Config

	// Snapshot frames; full queue drops the frame for this peer only
	sendCh chan []byte

	// Keys this peer holds down, released on disconnect
	held map[input.KeyCode]bool
	ptr  bool

	closeCh   chan struct{}
	closeOnce sync.Once
}

func newPeer(conn *websocket.Conn, cfg *Config) *Peer {
	p := &Peer{
		ID:      uuid.New(),
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		config:  cfg,
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		held:    make(map[input.KeyCode]bool),
		closeCh: make(chan struct{}),
	}
	p.LastSeen.Store(time.Now().UnixNano())
	return p
}

// Send queues a frame; returns false if closed or backed up
func (p *Peer) Send(data []byte) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}
	select {
	case p.sendCh <- data:
		return true
	default:
		return false
	}
}

// Close tears down the connection once
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		p.conn.Close()
	})
}

// Done is closed when the peer disconnects
func (p *Peer) Done() <-chan struct{} {
	return p.closeCh
}

// readLoop decodes client frames into sink until the connection fails
func (p *Peer) readLoop(sink Sink) {
	defer p.Close()
	defer p.release(sink)

	p.conn.SetReadLimit(p.config.ReadLimit)
	p.conn.SetReadDeadline(time.Now().Add(p.config.PongTimeout))
	p.conn.SetPongHandler(func(string) error {
		p.LastSeen.Store(time.Now().UnixNano())
		return p.conn.SetReadDeadline(time.Now().Add(p.config.PongTimeout))
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("peer %s read: %v", p.ID, err)
			}
			return
		}
		p.LastSeen.Store(time.Now().UnixNano())
		p.conn.SetReadDeadline(time.Now().Add(p.config.PongTimeout))

		cmd, err := Decode(data)
		if err != nil {
			log.Printf("peer %s: discarding message: %v", p.ID, err)
			continue
		}
		if !p.forward(sink, cmd) {
			return
		}
	}
}

// forward hands a command to the frame loop, tracking held controls
func (p *Peer) forward(sink Sink, cmd Command) bool {
	if cmd.Event != nil {
		ev := *cmd.Event
		switch ev.Kind {
		case input.EventKeyDown:
			p.held[ev.Code] = true
		case input.EventKeyUp:
			delete(p.held, ev.Code)
		case input.EventPointerDown:
			p.ptr = true
		case input.EventPointerUp:
			p.ptr = false
		}
		select {
		case sink.Events <- ev:
		case <-p.closeCh:
			return false
		}
	}
	if cmd.Intent != nil {
		select {
		case sink.Intents <- *cmd.Intent:
		case <-p.closeCh:
			return false
		}
	}
	return true
}

// release lifts every key the peer left pressed
func (p *Peer) release(sink Sink) {
	ups := make([]input.Event, 0, len(p.held)+1)
	for code := range p.held {
		ups = append(ups, input.Event{Kind: input.EventKeyUp, Code: code})
	}
	if p.ptr {
		ups = append(ups, input.Event{Kind: input.EventPointerUp})
	}
	for _, ev := range ups {
		select {
		case sink.Events <- ev:
		default:
			log.Printf("peer %s: input queue full, dropped release of %q", p.ID, ev.Code)
		}
	}
	clear(p.held)
	p.ptr = false
}

// writeLoop sends queued frames and keepalive pings
func (p *Peer) writeLoop() {
	defer p.Close()

	ping := time.NewTicker(p.config.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-p.closeCh:
			return
		case data := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("peer %s write: %v", p.ID, err)
				return
			}
		case <-ping.C:
			deadline := time.Now().Add(p.config.WriteTimeout)
			if err := p.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

// PeerManager tracks connected browsers
type PeerManager struct {
	mu     sync.RWMutex
	peers  map[PeerID]*Peer
	config *Config

	onConnect    func(PeerID)
	onDisconnect func(PeerID)
}

// NewPeerManager creates a peer manager
func NewPeerManager(cfg *Config) *PeerManager {
	return &PeerManager{
		peers:  make(map[PeerID]*Peer),
		config: cfg,
	}
}

// SetHandlers configures connection callbacks
func (pm *PeerManager) SetHandlers(onConnect, onDisconnect func(PeerID)) {
	pm.onConnect = onConnect
	pm.onDisconnect = onDisconnect
}

// Add registers an upgraded connection and starts its I/O loops
func (pm *PeerManager) Add(conn *websocket.Conn, sink Sink) (*Peer, error) {
	pm.mu.Lock()
	if len(pm.peers) >= pm.config.MaxClients {
		pm.mu.Unlock()
		msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, ErrMaxPeers.Error())
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(pm.config.WriteTimeout))
		conn.Close()
		return nil, ErrMaxPeers
	}
	peer := newPeer(conn, pm.config)
	pm.peers[peer.ID] = peer
	pm.mu.Unlock()

	go peer.readLoop(sink)
	go peer.writeLoop()
	go pm.monitor(peer)

	if pm.onConnect != nil {
		pm.onConnect(peer.ID)
	}
	return peer, nil
}

// monitor removes the peer once it disconnects
func (pm *PeerManager) monitor(peer *Peer) {
	<-peer.closeCh

	pm.mu.Lock()
	_, ok := pm.peers[peer.ID]
	delete(pm.peers, peer.ID)
	pm.mu.Unlock()

	if ok && pm.onDisconnect != nil {
		pm.onDisconnect(peer.ID)
	}
}

// Broadcast queues data for every peer
func (pm *PeerManager) Broadcast(data []byte) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	for _, peer := range pm.peers {
		peer.Send(data)
	}
}

// Get retrieves a peer by ID
func (pm *PeerManager) Get(id PeerID) (*Peer, bool) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	p, ok := pm.peers[id]
	return p, ok
}

// Count returns connected peer count
func (pm *PeerManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Close disconnects all peers
func (pm *PeerManager) Close() {
	pm.mu.RLock()
	peers := make([]*Peer, 0, len(pm.peers))
	for _, p := range pm.peers {
		peers = append(peers, p)
	}
	pm.mu.RUnlock()

	for _, p := range peers {
		p.Close()
	}
}
