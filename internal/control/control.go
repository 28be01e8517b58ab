// Package control exposes the engine process's development and monitoring
// surface: a small HTTP+WebSocket server with /health, /frames, /control
// and /diag routes, grounded on ledcube/internal/ws/state.go and the route
// wiring in ledcube/cmd/ledcube/main.go.
//
// The /control route accepts JSON-encoded messages shaped like
// LightChangeIntent: either {"power_off": true} or a "state" object naming
// the subset of fields to change, e.g.
//
//	{"state": {"brightness": 200, "color": {"r": 255, "g": 0, "b": 0}}}
//
// Unlike the teacher's ad-hoc map[string]any decode, this wire format is
// new in this expansion (the core engine has no JSON dependency) and is
// decoded directly into an intent.LightChangeIntent.
package control

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ledcube-engine/internal/bounds"
	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/coreman2200/ledcube-engine/internal/diagnostics"
	"github.com/coreman2200/ledcube-engine/internal/intent"
)

// frameThrottle caps how often a rendered frame is rebroadcast to /frames
// clients, independent of the render loop's own frame rate. Matches the
// teacher's preview driver throttle.
const frameThrottle = 50 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server is the control surface's shared state: the set of connected
// websocket clients and the sender half of the engine's intent channel.
type Server struct {
	sender       intent.Sender
	channelCap   int
	pixelCount   int
	startTime    time.Time

	mu           sync.RWMutex
	frameClients map[*websocket.Conn]bool
	diagClients  map[*websocket.Conn]bool
	lastEmit     time.Time
	frameID      uint64
}

// NewServer constructs a Server that forwards accepted control messages to
// sender. channelCap is the intent channel's capacity, reported in
// ChannelFull diagnostics; pixelCount is reported on /health.
func NewServer(sender intent.Sender, channelCap, pixelCount int) *Server {
	return &Server{
		sender:       sender,
		channelCap:   channelCap,
		pixelCount:   pixelCount,
		startTime:    time.Now(),
		frameClients: map[*websocket.Conn]bool{},
		diagClients:  map[*websocket.Conn]bool{},
	}
}

// Handler returns the control surface's HTTP route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/frames", s.handleFrames)
	mux.HandleFunc("/control", s.handleControl)
	mux.HandleFunc("/diag", s.handleDiag)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := map[string]any{
		"frame_id":    s.frameID,
		"uptime_s":    time.Since(s.startTime).Seconds(),
		"pixel_count": s.pixelCount,
	}
	s.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("control: frames upgrade failed")
		return
	}
	s.mu.Lock()
	s.frameClients[conn] = true
	s.mu.Unlock()
	log.Debug().Msg("control: frame client connected")

	go s.drainUntilClosed(conn, s.frameClients)
}

func (s *Server) handleDiag(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("control: diag upgrade failed")
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	log.Debug().Msg("control: diag client connected")

	go s.drainUntilClosed(conn, s.diagClients)
}

// drainUntilClosed reads (and discards) incoming messages until the
// connection errors or closes, then removes conn from clients. Frame and
// diagnostic streams are server-to-client only; this loop exists purely to
// notice disconnects, matching the teacher's pattern.
func (s *Server) drainUntilClosed(conn *websocket.Conn, clients map[*websocket.Conn]bool) {
	defer func() {
		s.mu.Lock()
		delete(clients, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("control: control upgrade failed")
		return
	}
	defer conn.Close()
	log.Debug().Msg("control: control client connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		in, err := decodeIntent(data)
		if err != nil {
			log.Warn().Err(err).Msg("control: malformed control message")
			continue
		}
		if !s.sender.TrySend(in) {
			s.PushDiagnostic(diagnostics.ChannelFull(s.channelCap))
		}
	}
}

// wireMessage is the JSON shape accepted on /control.
type wireMessage struct {
	PowerOff bool          `json:"power_off"`
	State    *wireState    `json:"state"`
}

type wireState struct {
	Brightness       *uint8        `json:"brightness"`
	Color            *wireColor    `json:"color"`
	ColorTemperature *uint16       `json:"color_temperature"`
	Effect           *string       `json:"effect"`
	Powered          *bool         `json:"powered"`
	Bounds           *wireBounds   `json:"bounds"`
	FilterConfig     *wireFilters  `json:"filter_config"`
}

type wireColor struct {
	R, G, B uint8
}

type wireBounds struct {
	Start, End uint16
}

type wireFilters struct {
	MinBrightness   uint8     `json:"min_brightness"`
	Scale           uint8     `json:"scale"`
	ColorCorrection wireColor `json:"color_correction"`
}

func decodeIntent(data []byte) (intent.LightChangeIntent, error) {
	var msg wireMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return intent.LightChangeIntent{}, err
	}
	if msg.PowerOff {
		return intent.NewPowerOff(), nil
	}
	if msg.State == nil {
		return intent.LightChangeIntent{State: &intent.StateIntent{}}, nil
	}

	var s intent.StateIntent
	s.Brightness = msg.State.Brightness
	s.ColorTemperature = msg.State.ColorTemperature
	s.Powered = msg.State.Powered
	if msg.State.Color != nil {
		c := color.Rgb{R: msg.State.Color.R, G: msg.State.Color.G, B: msg.State.Color.B}
		s.Color = &c
	}
	if msg.State.Effect != nil {
		if id, ok := intent.ParseEffectID(*msg.State.Effect); ok {
			s.Effect = &id
		}
	}
	if msg.State.Bounds != nil {
		b := bounds.RenderingBounds{Start: msg.State.Bounds.Start, End: msg.State.Bounds.End}
		s.Bounds = &b
	}
	if msg.State.FilterConfig != nil {
		fc := intent.FilterConfig{
			MinBrightness: msg.State.FilterConfig.MinBrightness,
			Scale:         msg.State.FilterConfig.Scale,
			ColorCorrection: color.Rgb{
				R: msg.State.FilterConfig.ColorCorrection.R,
				G: msg.State.FilterConfig.ColorCorrection.G,
				B: msg.State.FilterConfig.ColorCorrection.B,
			},
		}
		s.FilterConfig = &fc
	}
	return intent.NewState(s), nil
}

// BroadcastFrame pushes frame to every connected /frames client, throttled
// to frameThrottle regardless of how often the caller invokes it. Callers
// pass the renderer's output directly; BroadcastFrame copies what it needs
// before returning, since the renderer's slice is only valid until the
// next Render call.
func (s *Server) BroadcastFrame(frame []color.Rgb) {
	s.mu.Lock()
	now := time.Now()
	if s.lastEmit.Add(frameThrottle).After(now) {
		s.mu.Unlock()
		return
	}
	s.lastEmit = now
	s.frameID++
	frameID := s.frameID
	clients := make([]*websocket.Conn, 0, len(s.frameClients))
	for c := range s.frameClients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	if len(clients) == 0 {
		return
	}

	rgb := make([]byte, len(frame)*3)
	for i, px := range frame {
		rgb[i*3+0] = px.R
		rgb[i*3+1] = px.G
		rgb[i*3+2] = px.B
	}
	payload := struct {
		T       int64  `json:"t"`
		FrameID uint64 `json:"frame_id"`
		RGB     []byte `json:"rgb"`
	}{T: now.UnixNano(), FrameID: frameID, RGB: rgb}
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}

	for _, c := range clients {
		_ = c.SetWriteDeadline(now.Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("control: frame write failed")
		}
	}
}

// PushDiagnostic sends d to every connected /diag client.
func (s *Server) PushDiagnostic(d diagnostics.Diagnostic) {
	b, err := json.Marshal(d)
	if err != nil {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.diagClients {
		_ = c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("control: diag write failed")
		}
	}
}
