package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"condenser_calc/condenser"
	"condenser_calc/property"
)

// Msg is the websocket message exchanged with clients.
type Msg struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
}

const (
	msgCalc   = "calc"
	msgResult = "result"
	msgError  = "error"
)

// Server answers calculation requests over websockets, sharing one property service.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	svc      property.Service
}

// NewServer accepts connections from any origin.
func NewServer(addr string, svc property.Service) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		svc: svc,
	}
}

// Handler routes /ws to the calculation socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

// Serve listens on the configured address until the listener fails.
func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("serving /ws")
	return http.ListenAndServe(s.addr, s.Handler())
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("upgrade failed")
		return
	}
	defer conn.Close()

	entry := log.WithField("remote", conn.RemoteAddr().String())
	entry.Info("client connected")

	hub := NewHub(s.svc, conn)
	go hub.handleRequest()
	go hub.handleResponse()

	for {
		var msg Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				entry.WithError(err).Warn("read failed")
			}
			break
		}
		hub.msg <- msg
	}
	close(hub.msg)
	<-hub.done
	entry.Info("client disconnected")
}

// Hub serves the messages of one connection in arrival order.
type Hub struct {
	svc  property.Service
	conn *websocket.Conn
	// request
	msg chan Msg
	// response
	reply chan Msg
	done  chan struct{}
}

// NewHub returns the hub for one websocket connection.
func NewHub(svc property.Service, conn *websocket.Conn) *Hub {
	return &Hub{
		svc:   svc,
		conn:  conn,
		msg:   make(chan Msg, 10),
		reply: make(chan Msg, 10),
		done:  make(chan struct{}),
	}
}

func (h *Hub) handleRequest() {
	defer close(h.reply)
	for msg := range h.msg {
		h.reply <- h.answer(msg)
	}
}

func (h *Hub) handleResponse() {
	defer close(h.done)
	for reply := range h.reply {
		if err := h.conn.WriteJSON(&reply); err != nil {
			log.WithError(err).Warn("write failed")
		}
	}
}

// answer runs one calculation request. Failures are reported to the client, never fatal.
func (h *Hub) answer(msg Msg) Msg {
	switch msg.Type {
	case msgCalc:
		c := DefaultCase()
		if len(msg.Content) > 0 {
			if err := json.Unmarshal(msg.Content, &c); err != nil {
				return errorMsg(err)
			}
		}
		if err := c.normalize(); err != nil {
			return errorMsg(err)
		}
		res, err := condenser.Calculate(c.Input, c.Options, h.svc)
		if err != nil {
			log.WithError(err).Info("calculation rejected")
			return errorMsg(err)
		}
		data, err := json.Marshal(res)
		if err != nil {
			return errorMsg(err)
		}
		return Msg{Type: msgResult, Content: data}
	default:
		return errorMsg(fmt.Errorf("no such type %q", msg.Type))
	}
}

func errorMsg(err error) Msg {
	data, _ := json.Marshal(err.Error())
	return Msg{Type: msgError, Content: data}
}
