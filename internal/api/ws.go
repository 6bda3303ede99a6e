package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/meur/pokedex/internal/controller"
	"github.com/meur/pokedex/internal/i18n"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024

	// Buffer size for outbound frames
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Lookup actions a client can request
const (
	actionRandom   = "random"
	actionFeatured = "featured"
	actionSearch   = "search"
	actionDetail   = "detail"
)

// lookupRequest is a client message
type lookupRequest struct {
	Action string `json:"action"`
	Query  string `json:"query,omitempty"`
	ID     string `json:"id,omitempty"`
}

// Frame types sent to the client
const (
	frameHello  = "hello"
	frameState  = "state"
	frameResult = "result"
	frameError  = "error"
)

// lookupFrame is a server message. A run streams its state changes first,
// then one result or error frame.
type lookupFrame struct {
	Type    string             `json:"type"`
	Session string             `json:"session,omitempty"`
	Action  string             `json:"action,omitempty"`
	Change  *controller.Change `json:"change,omitempty"`
	Data    interface{}        `json:"data,omitempty"`
	Error   *apiError          `json:"error,omitempty"`
}

// lookupSession is one websocket connection
type lookupSession struct {
	id     string
	conn   *websocket.Conn
	send   chan lookupFrame
	srv    *Server
	loc    *i18n.Localizer
	logger *zap.Logger
}

// handleLookupSocket upgrades to a websocket that runs lookups on request and
// streams every controller transition
func (s *Server) handleLookupSocket(w http.ResponseWriter, r *http.Request) {
	loc := s.localizer(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	sess := &lookupSession{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan lookupFrame, sendBufferSize),
		srv:  s,
		loc:  loc,
	}
	sess.logger = s.logger.With(zap.String("session", sess.id))
	sess.logger.Debug("WebSocket session opened")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		sess.writePump(ctx)
	}()

	sess.trySend(lookupFrame{Type: frameHello, Session: sess.id})
	sess.readPump(ctx)

	cancel()
	<-done
	sess.logger.Debug("WebSocket session closed")
}

// readPump reads requests until the peer goes away. Runs are handled one at a time.
func (c *lookupSession) readPump(ctx context.Context) {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var req lookupRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info("WebSocket closed unexpectedly", zap.Error(err))
			}
			return
		}
		c.handle(ctx, req)
	}
}

// writePump writes queued frames and keeps the connection alive with pings
func (c *lookupSession) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(frame); err != nil {
				c.logger.Debug("WebSocket write failed", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// trySend queues a frame without blocking; a full buffer drops it
func (c *lookupSession) trySend(f lookupFrame) bool {
	select {
	case c.send <- f:
		return true
	default:
		c.logger.Warn("WebSocket buffer full, dropping frame", zap.String("type", f.Type))
		return false
	}
}

func (c *lookupSession) handle(ctx context.Context, req lookupRequest) {
	observe := func(ch controller.Change) {
		c.trySend(lookupFrame{Type: frameState, Action: req.Action, Change: &ch})
	}

	var data interface{}
	var err error

	deps := c.srv.deps
	switch req.Action {
	case actionRandom:
		ctrl := controller.NewRandomLookup(deps)
		ctrl.Observe(observe)
		data, err = ctrl.Run(ctx)
	case actionFeatured:
		ctrl := controller.NewFeaturedBatch(deps)
		ctrl.Observe(observe)
		data, err = ctrl.Run(ctx)
	case actionSearch:
		ctrl := controller.NewSearchResolve(deps)
		ctrl.Observe(observe)
		data, err = ctrl.Run(ctx, req.Query)
	case actionDetail:
		ctrl := controller.NewDetailPage(deps, c.loc.Lang())
		ctrl.Observe(observe)
		data, err = ctrl.Load(ctx, req.ID)
	default:
		c.trySend(lookupFrame{Type: frameError, Action: req.Action, Error: &apiError{Error: "unknown action", Kind: "request"}})
		return
	}

	if err != nil {
		e := &apiError{Error: failureMessage(c.loc, err)}
		if f, ok := controller.AsFailure(err); ok {
			e.Kind = f.Kind.String()
		}
		c.trySend(lookupFrame{Type: frameError, Action: req.Action, Error: e})
		return
	}
	c.trySend(lookupFrame{Type: frameResult, Action: req.Action, Data: data})
}
