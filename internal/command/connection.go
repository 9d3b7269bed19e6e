package command

import (
	"strconv"
	"strings"
	"time"

	"gofast/internal/resp"
)

func registerConnectionCommands(r *Registry) {
	r.register("PING", 0, cmdPing)
	r.register("ECHO", 1, cmdEcho)
	r.register("QUIT", 0, cmdQuit)
	r.register("CLIENT", 1, cmdClient)
	r.register("INFO", 0, cmdInfo)
	r.register("COMMAND", 0, cmdCommand)
}

func cmdPing(c *Context, args []resp.Value) resp.Value {
	if len(args) == 0 {
		return resp.SimpleString("PONG")
	}
	return resp.Bulk(args[0].Bulk)
}

func cmdEcho(c *Context, args []resp.Value) resp.Value {
	return resp.Bulk(args[0].Bulk)
}

func cmdQuit(c *Context, args []resp.Value) resp.Value {
	c.Client.Closing = true
	return resp.SimpleString("OK")
}

// cmdClient implements the subset of CLIENT used by SPEC_FULL.md's
// supplemented admin surface: GETNAME, SETNAME, ID, and LIST. LIST
// shows every connection known to the server's shared client registry,
// falling back to just the caller when none was wired in (e.g. tests).
func cmdClient(c *Context, args []resp.Value) resp.Value {
	sub := strings.ToUpper(string(args[0].Bulk))
	switch sub {
	case "GETNAME":
		name := c.Client.Name()
		if name == "" {
			return resp.NullBulk()
		}
		return resp.Bulk([]byte(name))
	case "SETNAME":
		if len(args) < 2 {
			return resp.Error("ERR", "wrong number of arguments for 'client|setname' command")
		}
		c.Client.SetName(string(args[1].Bulk))
		return resp.SimpleString("OK")
	case "ID":
		return resp.Integer(int64(c.Client.ID))
	case "LIST":
		clients := clientSnapshot(c)
		var b strings.Builder
		for _, cl := range clients {
			b.WriteString("id=" + strconv.FormatUint(cl.ID, 10) + " addr=" + cl.Addr + " name=" + cl.Name + "\n")
		}
		return resp.Bulk([]byte(b.String()))
	default:
		return resp.Error("ERR", "unsupported CLIENT subcommand '"+sub+"'")
	}
}

func clientSnapshot(c *Context) []ClientInfo {
	if c.Clients != nil {
		return c.Clients()
	}
	return []ClientInfo{{ID: c.Client.ID, Addr: c.Client.Addr, Name: c.Client.Name()}}
}

// cmdInfo implements INFO: a bulk reply of "key:value" lines grouped
// under "# section" headers, per spec.md §6. Falls back to zero values
// for any field the caller's Context didn't wire an Info provider for.
func cmdInfo(c *Context, args []resp.Value) resp.Value {
	version := "0.0.0"
	var uptime int64
	if c.Info != nil {
		if c.Info.Version != "" {
			version = c.Info.Version
		}
		uptime = int64(time.Since(c.Info.StartedAt).Seconds())
	}

	var b strings.Builder
	b.WriteString("# Server\r\n")
	b.WriteString("redis_version:" + version + "\r\n")
	b.WriteString("uptime_in_seconds:" + strconv.FormatInt(uptime, 10) + "\r\n")
	b.WriteString("\r\n# Clients\r\n")
	b.WriteString("connected_clients:" + strconv.Itoa(len(clientSnapshot(c))) + "\r\n")
	b.WriteString("\r\n# Keyspace\r\n")
	b.WriteString("db0:keys=" + strconv.Itoa(c.Store.DBSize()) + "\r\n")
	return resp.Bulk([]byte(b.String()))
}

// cmdCommand implements COMMAND. spec.md §6 permits an empty array
// reply; this server has no per-command metadata table to introspect.
func cmdCommand(c *Context, args []resp.Value) resp.Value {
	return resp.Array([]resp.Value{})
}
