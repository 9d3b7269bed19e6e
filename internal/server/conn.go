package server

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"gofast/internal/command"
	"gofast/internal/metrics"
	"gofast/internal/resp"
	"gofast/internal/store"
)

const readChunkSize = 4096

// clientConn owns one accepted connection's read/decode/dispatch/write
// cycle. Grounded on the teacher's handleConnection loop (server.go),
// generalized from fixed binary framing to RESP2's incremental,
// partial-read-safe decode.
type clientConn struct {
	nc        net.Conn
	log       *logrus.Entry
	registry  *command.Registry
	store     *store.Store
	client    *command.ClientState
	maxBulk   int
	metrics   *metrics.Metrics
	readDead  time.Duration
	writeDead time.Duration

	buf  []byte
	pool *bytePool

	info    *command.ServerInfo
	clients command.ClientLister
}

func (c *clientConn) run() {
	for {
		v, err := c.readRequest()
		if err != nil {
			var perr *resp.ProtocolError
			if errors.As(err, &perr) {
				c.log.WithError(err).Debug("protocol error")
				c.writeReply(resp.Error("ERR", perr.Error()))
				return
			}
			if !errors.Is(err, io.EOF) {
				c.log.WithError(err).Debug("read error")
			}
			return
		}

		reply := c.dispatch(v)

		if err := c.writeReply(reply); err != nil {
			c.log.WithError(err).Debug("write error")
			return
		}

		if c.client.Closing {
			return
		}
	}
}

func (c *clientConn) dispatch(v resp.Value) resp.Value {
	if v.Kind != resp.KindArray {
		return resp.Error("ERR", "expected command array")
	}
	for _, arg := range v.Array {
		if arg.Kind != resp.KindBulk {
			return resp.Error("ERR", "expected bulk string argument")
		}
	}

	ctx := &command.Context{Store: c.store, Client: c.client, Info: c.info, Clients: c.clients}
	name := "unknown"
	if len(v.Array) > 0 {
		name = string(v.Array[0].Bulk)
	}

	reply := c.registry.Dispatch(ctx, v.Array)

	if c.metrics != nil {
		outcome := "ok"
		if reply.Kind == resp.KindError {
			outcome = "error"
		}
		c.metrics.CommandsTotal.With(prometheus.Labels{"command": name, "outcome": outcome}).Inc()
	}
	return reply
}

func (c *clientConn) readRequest() (resp.Value, error) {
	for {
		v, n, err := resp.Decode(c.buf, c.maxBulk)
		if err == nil {
			c.buf = c.buf[n:]
			return v, nil
		}
		if !errors.Is(err, resp.ErrIncomplete) {
			return resp.Value{}, err
		}

		if c.readDead > 0 {
			c.nc.SetReadDeadline(time.Now().Add(c.readDead))
		}
		chunk := c.pool.get()
		n2, rerr := c.nc.Read(chunk)
		if n2 > 0 {
			c.buf = append(c.buf, chunk[:n2]...)
			if c.metrics != nil {
				c.metrics.BytesRead.Add(float64(n2))
			}
		}
		c.pool.put(chunk)
		if rerr != nil {
			return resp.Value{}, rerr
		}
	}
}

func (c *clientConn) writeReply(v resp.Value) error {
	out := resp.Encode(v)
	if c.writeDead > 0 {
		c.nc.SetWriteDeadline(time.Now().Add(c.writeDead))
	}
	_, err := c.nc.Write(out)
	if err == nil && c.metrics != nil {
		c.metrics.BytesWritten.Add(float64(len(out)))
	}
	return err
}
