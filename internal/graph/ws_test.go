package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TwigBush/shopgraph/internal/auth"
	"github.com/TwigBush/shopgraph/internal/types"
)

func dialWS(t *testing.T, e *env, proto string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(NewWSHandler(e.schema, nil))
	t.Cleanup(srv.Close)
	d := websocket.Dialer{Subprotocols: []string{proto}, HandshakeTimeout: 2 * time.Second}
	conn, resp, err := d.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMsg(t *testing.T, c *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(3*time.Second)))
	var m wsMessage
	require.NoError(t, c.ReadJSON(&m))
	return m
}

func sendMsg(t *testing.T, c *websocket.Conn, typ, id string, payload any) {
	t.Helper()
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		raw = b
	}
	require.NoError(t, c.WriteJSON(wsMessage{Type: typ, ID: id, Payload: raw}))
}

func TestWSProductSubscription(t *testing.T) {
	e := newEnv(t)
	c := dialWS(t, e, protoModern)

	sendMsg(t, c, "connection_init", "", nil)
	assert.Equal(t, "connection_ack", readMsg(t, c).Type)

	sendMsg(t, c, "subscribe", "1", map[string]any{
		"query": `subscription { product { mutation data { name } } }`,
	})
	require.Eventually(t, func() bool { return e.broker.Subscribers(types.ProductChannel) == 1 },
		2*time.Second, 10*time.Millisecond)

	ctx := auth.WithHeader(context.Background(), "Bearer "+e.adminToken)
	_, err := e.svc.UpdateProduct(ctx, 2, types.ProductPatch{InStock: new(bool)})
	require.NoError(t, err)

	m := readMsg(t, c)
	assert.Equal(t, "next", m.Type)
	assert.Equal(t, "1", m.ID)
	assert.JSONEq(t, `{"data":{"product":{"mutation":"UPDATED","data":{"name":"Yoga Mat"}}}}`, string(m.Payload))

	sendMsg(t, c, "complete", "1", nil)
	require.Eventually(t, func() bool { return e.broker.Subscribers(types.ProductChannel) == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestWSReviewSubscriptionNeedsProduct(t *testing.T) {
	e := newEnv(t)
	c := dialWS(t, e, protoModern)
	sendMsg(t, c, "connection_init", "", nil)
	readMsg(t, c)

	sendMsg(t, c, "subscribe", "r", map[string]any{
		"query": `subscription { review(productID: 999) { mutation } }`,
	})
	m := readMsg(t, c)
	assert.Equal(t, "r", m.ID)
	assert.Contains(t, string(m.Payload), "Product not found")
}

func TestWSMutationUsesInitCredential(t *testing.T) {
	e := newEnv(t)
	c := dialWS(t, e, protoModern)
	sendMsg(t, c, "connection_init", "", map[string]string{"Authorization": "Bearer " + e.adminToken})
	require.Equal(t, "connection_ack", readMsg(t, c).Type)

	sendMsg(t, c, "subscribe", "m", map[string]any{
		"query": `mutation { createCompany(data: {name: "Acme", location: "X", industry: "Y"}) { name location } }`,
	})
	m := readMsg(t, c)
	require.Equal(t, "next", m.Type)
	assert.JSONEq(t, `{"data":{"createCompany":{"name":"Acme","location":"X"}}}`, string(m.Payload))
	assert.Equal(t, "complete", readMsg(t, c).Type)
}

func TestWSLegacyProtocol(t *testing.T) {
	e := newEnv(t)
	c := dialWS(t, e, protoLegacy)
	sendMsg(t, c, "connection_init", "", nil)
	assert.Equal(t, "connection_ack", readMsg(t, c).Type)
	assert.Equal(t, "ka", readMsg(t, c).Type)

	sendMsg(t, c, "start", "7", map[string]any{"query": `subscription { order { mutation } }`})
	require.Eventually(t, func() bool { return e.broker.Subscribers(types.OrderChannel) == 1 },
		2*time.Second, 10*time.Millisecond)

	ctx := auth.WithHeader(context.Background(), "Bearer "+e.adminToken)
	_, err := e.svc.DeleteOrder(ctx, 1)
	require.NoError(t, err)

	m := readMsg(t, c)
	assert.Equal(t, "data", m.Type)
	assert.JSONEq(t, `{"data":{"order":{"mutation":"DELETED"}}}`, string(m.Payload))

	sendMsg(t, c, "stop", "7", nil)
	assert.Equal(t, "complete", readMsg(t, c).Type)
}
