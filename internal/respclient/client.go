// Package respclient is a minimal RESP2 client used by the gofast-top
// dashboard to poll a running gofastd instance. It shares the wire
// codec with the server (internal/resp) rather than re-implementing
// framing.
package respclient

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"gofast/internal/resp"
)

// Client is a single blocking connection to a gofastd server.
type Client struct {
	conn net.Conn
	r    *bufio.Reader
	buf  []byte
}

// Dial opens a connection with the given timeout.
func Dial(addr string, timeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, r: bufio.NewReader(conn)}, nil
}

func (c *Client) Close() error { return c.conn.Close() }

// Do sends a command (variadic string arguments) and returns the
// decoded reply.
func (c *Client) Do(args ...string) (resp.Value, error) {
	req := make([]resp.Value, len(args))
	for i, a := range args {
		req[i] = resp.Bulk([]byte(a))
	}
	if _, err := c.conn.Write(resp.Encode(resp.Array(req))); err != nil {
		return resp.Value{}, err
	}
	return c.readReply()
}

func (c *Client) readReply() (resp.Value, error) {
	for {
		v, n, err := resp.Decode(c.buf, resp.DefaultMaxBulkLen)
		if err == nil {
			c.buf = c.buf[n:]
			return v, nil
		}
		if err != resp.ErrIncomplete {
			return resp.Value{}, err
		}
		chunk := make([]byte, 4096)
		n2, rerr := c.r.Read(chunk)
		if n2 > 0 {
			c.buf = append(c.buf, chunk[:n2]...)
		}
		if rerr != nil {
			return resp.Value{}, fmt.Errorf("read reply: %w", rerr)
		}
	}
}
