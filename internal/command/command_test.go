package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gofast/internal/resp"
	"gofast/internal/store"
)

func newTestContext() *Context {
	return &Context{Store: store.New(), Client: &ClientState{ID: 1, Addr: "127.0.0.1:0"}}
}

func bulkArgs(ss ...string) []resp.Value {
	out := make([]resp.Value, len(ss))
	for i, s := range ss {
		out[i] = resp.Bulk([]byte(s))
	}
	return out
}

func TestDispatchUnknownCommand(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()
	reply := r.Dispatch(c, bulkArgs("NOPE"))
	assert.Equal(t, resp.KindError, reply.Kind)
}

func TestDispatchArityError(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()
	reply := r.Dispatch(c, bulkArgs("GET"))
	assert.Equal(t, resp.KindError, reply.Kind)
}

func TestSetGetViaDispatch(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()

	reply := r.Dispatch(c, bulkArgs("SET", "k", "v"))
	require.Equal(t, resp.KindSimpleString, reply.Kind)
	assert.Equal(t, "OK", reply.Str)

	reply = r.Dispatch(c, bulkArgs("GET", "k"))
	require.Equal(t, resp.KindBulk, reply.Kind)
	assert.Equal(t, "v", string(reply.Bulk))
}

func TestSetNXSyntax(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()
	reply := r.Dispatch(c, bulkArgs("SET", "k", "v", "NX", "XX"))
	assert.Equal(t, resp.KindError, reply.Kind)
}

func TestSetWithGetOption(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()
	r.Dispatch(c, bulkArgs("SET", "k", "old"))
	reply := r.Dispatch(c, bulkArgs("SET", "k", "new", "GET"))
	require.Equal(t, resp.KindBulk, reply.Kind)
	assert.Equal(t, "old", string(reply.Bulk))
}

func TestWrongTypeReply(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()
	r.Dispatch(c, bulkArgs("LPUSH", "k", "v"))
	reply := r.Dispatch(c, bulkArgs("GET", "k"))
	require.Equal(t, resp.KindError, reply.Kind)
	assert.Contains(t, reply.Err, "WRONGTYPE")
}

func TestPingEcho(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()

	reply := r.Dispatch(c, bulkArgs("PING"))
	assert.Equal(t, "PONG", reply.Str)

	reply = r.Dispatch(c, bulkArgs("ECHO", "hi"))
	assert.Equal(t, "hi", string(reply.Bulk))
}

func TestClientSetGetName(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()

	reply := r.Dispatch(c, bulkArgs("CLIENT", "SETNAME", "worker-1"))
	assert.Equal(t, "OK", reply.Str)

	reply = r.Dispatch(c, bulkArgs("CLIENT", "GETNAME"))
	assert.Equal(t, "worker-1", string(reply.Bulk))
}

func TestSelectZeroOnly(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()

	reply := r.Dispatch(c, bulkArgs("SELECT", "0"))
	assert.Equal(t, "OK", reply.Str)

	reply = r.Dispatch(c, bulkArgs("SELECT", "1"))
	assert.Equal(t, resp.KindError, reply.Kind)
}

func TestHGetAllRoundTrip(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()

	r.Dispatch(c, bulkArgs("HSET", "h", "f1", "v1", "f2", "v2"))
	reply := r.Dispatch(c, bulkArgs("HGETALL", "h"))
	require.Equal(t, resp.KindArray, reply.Kind)
	assert.Len(t, reply.Array, 4)
}

func TestMSetMGetRoundTrip(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()

	reply := r.Dispatch(c, bulkArgs("MSET", "a", "1", "b", "2"))
	assert.Equal(t, "OK", reply.Str)

	reply = r.Dispatch(c, bulkArgs("MGET", "a", "b", "absent"))
	require.Equal(t, resp.KindArray, reply.Kind)
	require.Len(t, reply.Array, 3)
	assert.Equal(t, "1", string(reply.Array[0].Bulk))
	assert.Equal(t, "2", string(reply.Array[1].Bulk))
	assert.True(t, reply.Array[2].IsNull())
}

func TestDecrByMinInt64Overflows(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()

	reply := r.Dispatch(c, bulkArgs("DECRBY", "k", "-9223372036854775808"))
	require.Equal(t, resp.KindError, reply.Kind)
	assert.Contains(t, reply.Err, "overflow")

	_, ok, _ := c.Store.Get("k")
	assert.False(t, ok)
}

func TestInfoReportsSections(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()
	c.Info = &ServerInfo{Version: "9.9.9"}

	reply := r.Dispatch(c, bulkArgs("INFO"))
	require.Equal(t, resp.KindBulk, reply.Kind)
	body := string(reply.Bulk)
	assert.Contains(t, body, "# Server")
	assert.Contains(t, body, "redis_version:9.9.9")
	assert.Contains(t, body, "# Clients")
	assert.Contains(t, body, "# Keyspace")
}

func TestCommandReturnsEmptyArray(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()

	reply := r.Dispatch(c, bulkArgs("COMMAND"))
	require.Equal(t, resp.KindArray, reply.Kind)
	assert.Len(t, reply.Array, 0)
}

func TestClientListFallsBackToCaller(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()

	reply := r.Dispatch(c, bulkArgs("CLIENT", "LIST"))
	require.Equal(t, resp.KindBulk, reply.Kind)
	assert.Contains(t, string(reply.Bulk), "id=1")
}

func TestClientListUsesWiredRegistry(t *testing.T) {
	r := NewRegistry()
	c := newTestContext()
	c.Clients = func() []ClientInfo {
		return []ClientInfo{{ID: 1, Addr: "a"}, {ID: 2, Addr: "b", Name: "worker"}}
	}

	reply := r.Dispatch(c, bulkArgs("CLIENT", "LIST"))
	require.Equal(t, resp.KindBulk, reply.Kind)
	body := string(reply.Bulk)
	assert.Contains(t, body, "id=1 addr=a")
	assert.Contains(t, body, "id=2 addr=b name=worker")
}
