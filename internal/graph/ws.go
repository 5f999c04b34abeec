package graph

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/graph-gophers/graphql-go"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/TwigBush/shopgraph/internal/auth"
)

// Two sub-protocols are spoken:
//   - graphql-ws, the original Apollo subscriptions-transport-ws protocol
//   - graphql-transport-ws, its successor, which also carries queries and mutations
const (
	protoLegacy = "graphql-ws"
	protoModern = "graphql-transport-ws"
)

const (
	initTimeout     = 10 * time.Second
	legacyKeepAlive = 20 * time.Second
)

type wsMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wsRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// WSHandler upgrades to a websocket and runs GraphQL operations over it.
type WSHandler struct {
	Schema   *graphql.Schema
	Logger   *slog.Logger
	Upgrader websocket.Upgrader
}

func NewWSHandler(s *graphql.Schema, log *slog.Logger) *WSHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WSHandler{
		Schema: s,
		Logger: log,
		Upgrader: websocket.Upgrader{
			CheckOrigin:  func(*http.Request) bool { return true },
			Subprotocols: []string{protoModern, protoLegacy},
		},
	}
}

type wsConn struct {
	h      *WSHandler
	conn   *websocket.Conn
	modern bool

	wmu sync.Mutex // serialises writes

	mu   sync.Mutex
	ops  map[string]context.CancelFunc
	done sync.WaitGroup
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn("ws_upgrade", "err", err)
		return
	}
	c := &wsConn{h: h, conn: conn, modern: conn.Subprotocol() == protoModern, ops: map[string]context.CancelFunc{}}
	ctx, cancel := context.WithCancel(r.Context())
	defer func() {
		cancel()
		c.done.Wait()
		_ = conn.Close()
	}()

	ctx, ok := c.handshake(ctx)
	if !ok {
		return
	}
	if !c.modern {
		go c.keepAlive(ctx)
	}

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.Logger.Debug("ws_read", "err", err)
			}
			return
		}
		switch msg.Type {
		case "subscribe", "start":
			c.start(ctx, msg)
		case "complete", "stop":
			c.stop(msg.ID)
		case "ping":
			c.send(wsMessage{Type: "pong"})
		case "pong":
		case "connection_terminate":
			return
		default:
			h.Logger.Warn("ws_unexpected_message", "type", msg.Type)
			c.closeWith(4400, "unexpected message type "+msg.Type)
			return
		}
	}
}

// handshake waits for connection_init. An Authorization entry in its
// payload overrides the upgrade request's header for every operation on
// this connection.
func (c *wsConn) handshake(ctx context.Context) (context.Context, bool) {
	_ = c.conn.SetReadDeadline(time.Now().Add(initTimeout))
	var msg wsMessage
	if err := c.conn.ReadJSON(&msg); err != nil || msg.Type != "connection_init" {
		c.closeWith(4408, "connection initialisation timeout")
		return ctx, false
	}
	_ = c.conn.SetReadDeadline(time.Time{})

	if len(msg.Payload) > 0 {
		var params map[string]any
		if err := json.Unmarshal(msg.Payload, &params); err == nil {
			for _, k := range []string{"Authorization", "authorization", "authToken"} {
				if v, ok := params[k].(string); ok && v != "" {
					if k == "authToken" {
						v = "Bearer " + v
					}
					ctx = auth.WithHeader(ctx, v)
					break
				}
			}
		}
	}
	c.send(wsMessage{Type: "connection_ack"})
	if !c.modern {
		c.send(wsMessage{Type: "ka"})
	}
	return ctx, true
}

func (c *wsConn) keepAlive(ctx context.Context) {
	t := time.NewTicker(legacyKeepAlive)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.send(wsMessage{Type: "ka"})
		}
	}
}

func (c *wsConn) start(ctx context.Context, msg wsMessage) {
	var req wsRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil || msg.ID == "" {
		c.sendError(msg.ID, "invalid subscribe message")
		return
	}

	c.mu.Lock()
	if _, dup := c.ops[msg.ID]; dup {
		c.mu.Unlock()
		c.closeWith(4409, "Subscriber for "+msg.ID+" already exists")
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	c.ops[msg.ID] = cancel
	c.mu.Unlock()

	c.done.Add(1)
	go func() {
		defer c.done.Done()
		defer c.forget(msg.ID)
		c.run(ctx, msg.ID, req)
	}()
}

func (c *wsConn) run(ctx context.Context, id string, req wsRequest) {
	if !isSubscription(req) {
		resp := c.h.Schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
		c.next(id, resp)
		c.complete(id)
		return
	}

	stream, err := c.h.Schema.Subscribe(ctx, req.Query, req.OperationName, req.Variables)
	if err != nil {
		c.sendError(id, err.Error())
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-stream:
			if !ok {
				c.complete(id)
				return
			}
			resp, _ := v.(*graphql.Response)
			if resp == nil {
				continue
			}
			if len(resp.Errors) > 0 && len(resp.Data) == 0 {
				b, _ := json.Marshal(resp.Errors)
				c.sendRaw(id, b)
				return
			}
			c.next(id, resp)
		}
	}
}

func isSubscription(req wsRequest) bool {
	doc, err := parser.ParseQuery(&ast.Source{Input: req.Query})
	if err != nil {
		// let the executor report the syntax error
		return false
	}
	op := doc.Operations.ForName(req.OperationName)
	return op != nil && op.Operation == ast.Subscription
}

func (c *wsConn) next(id string, resp *graphql.Response) {
	b, err := json.Marshal(resp)
	if err != nil {
		c.h.Logger.Error("ws_marshal", "err", err)
		return
	}
	typ := "next"
	if !c.modern {
		typ = "data"
	}
	c.send(wsMessage{Type: typ, ID: id, Payload: b})
}

func (c *wsConn) complete(id string) {
	c.send(wsMessage{Type: "complete", ID: id})
}

func (c *wsConn) sendError(id, message string) {
	b, _ := json.Marshal([]map[string]string{{"message": message}})
	c.sendRaw(id, b)
}

// sendRaw sends an error message whose payload is a list of GraphQL errors.
// The legacy protocol wants a single error object.
func (c *wsConn) sendRaw(id string, errs json.RawMessage) {
	if !c.modern {
		var list []json.RawMessage
		if json.Unmarshal(errs, &list) == nil && len(list) > 0 {
			errs = list[0]
		}
	}
	c.send(wsMessage{Type: "error", ID: id, Payload: errs})
}

func (c *wsConn) stop(id string) {
	c.mu.Lock()
	cancel, ok := c.ops[id]
	c.mu.Unlock()
	if ok {
		cancel()
	}
	if !c.modern && ok {
		c.complete(id)
	}
}

func (c *wsConn) forget(id string) {
	c.mu.Lock()
	if cancel, ok := c.ops[id]; ok {
		cancel()
		delete(c.ops, id)
	}
	c.mu.Unlock()
}

func (c *wsConn) send(m wsMessage) {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := c.conn.WriteJSON(m); err != nil {
		c.h.Logger.Debug("ws_write", "err", err)
	}
}

func (c *wsConn) closeWith(code int, reason string) {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	msg := websocket.FormatCloseMessage(code, reason)
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}
