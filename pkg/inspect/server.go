package inspect

import (
	"encoding/json"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/go-drift/gantry/pkg/contain"
	"github.com/go-drift/gantry/pkg/raster"
	"github.com/go-drift/gantry/pkg/surface"
)

// defaultPreviewMax bounds /preview.png when no size is requested.
const defaultPreviewMax = 512

// upgrader accepts any origin: the inspector is a development tool meant to
// be served on a loopback address.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Server exposes the inspector over HTTP:
//
//	GET /ws           websocket stream of lifecycle frames
//	GET /status       connected clients and registered handles
//	GET /preview.png  rendered thumbnail of the surface tree
type Server struct {
	hub      *Hub
	registry *contain.Registry
	root     func() *surface.Surface
	mux      *http.ServeMux
}

// NewServer wires the handler set. root supplies the surface tree rendered
// by /preview.png; it may be nil when no preview is available. Panics if
// hub or registry is nil.
func NewServer(hub *Hub, registry *contain.Registry, root func() *surface.Surface) *Server {
	if hub == nil {
		panic("inspect: nil hub")
	}
	if registry == nil {
		panic("inspect: nil registry")
	}
	s := &Server{hub: hub, registry: registry, root: root, mux: http.NewServeMux()}
	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.HandleFunc("/status", s.handleStatus)
	s.mux.HandleFunc("/preview.png", s.handlePreview)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{hub: s.hub, conn: conn, send: make(chan []byte, 256)}
	select {
	case s.hub.register <- c:
	case <-s.hub.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

type statusDoc struct {
	Clients int    `json:"clients"`
	Handles int    `json:"handles"`
	At      string `json:"at"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statusDoc{
		Clients: s.hub.Clients(),
		Handles: s.registry.Len(),
		At:      time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if s.root == nil {
		http.Error(w, "no surface tree attached", http.StatusNotFound)
		return
	}
	tree := s.root()
	if tree == nil {
		http.Error(w, "no surface tree attached", http.StatusNotFound)
		return
	}

	max := defaultPreviewMax
	if q := r.URL.Query().Get("max"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			http.Error(w, "invalid max", http.StatusBadRequest)
			return
		}
		max = n
	}

	img := raster.Thumbnail(tree, max, max)
	w.Header().Set("Content-Type", "image/png")
	png.Encode(w, img)
}
