package command

import (
	"strconv"
	"strings"

	"gofast/internal/resp"
)

func registerKeyspaceCommands(r *Registry) {
	r.register("DEL", 1, cmdDel)
	r.register("EXISTS", 1, cmdExists)
	r.register("TYPE", 1, cmdType)
	r.register("EXPIRE", 2, cmdExpire)
	r.register("PEXPIRE", 2, cmdPExpire)
	r.register("TTL", 1, cmdTTL)
	r.register("PTTL", 1, cmdPTTL)
	r.register("PERSIST", 1, cmdPersist)
	r.register("KEYS", 1, cmdKeys)
	r.register("RENAME", 2, cmdRename)
	r.register("RENAMENX", 2, cmdRenameNX)
	r.register("FLUSHDB", 0, cmdFlushDB)
	r.register("FLUSHALL", 0, cmdFlushDB)
	r.register("DBSIZE", 0, cmdDBSize)
	r.register("SELECT", 1, cmdSelect)
	r.register("CONFIG", 1, cmdConfig)
}

func cmdDel(c *Context, args []resp.Value) resp.Value {
	n := c.Store.Del(bulkStrings(args)...)
	return resp.Integer(int64(n))
}

func cmdExists(c *Context, args []resp.Value) resp.Value {
	n := c.Store.Exists(bulkStrings(args)...)
	return resp.Integer(int64(n))
}

func cmdType(c *Context, args []resp.Value) resp.Value {
	return resp.SimpleString(c.Store.TypeOf(string(args[0].Bulk)))
}

func cmdExpire(c *Context, args []resp.Value) resp.Value {
	seconds, perr := strconv.ParseInt(string(args[1].Bulk), 10, 64)
	if perr != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	return resp.Integer(int64(c.Store.Expire(string(args[0].Bulk), seconds)))
}

func cmdPExpire(c *Context, args []resp.Value) resp.Value {
	millis, perr := strconv.ParseInt(string(args[1].Bulk), 10, 64)
	if perr != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	return resp.Integer(int64(c.Store.PExpire(string(args[0].Bulk), millis)))
}

func cmdTTL(c *Context, args []resp.Value) resp.Value {
	return resp.Integer(c.Store.TTL(string(args[0].Bulk)))
}

func cmdPTTL(c *Context, args []resp.Value) resp.Value {
	return resp.Integer(c.Store.PTTL(string(args[0].Bulk)))
}

func cmdPersist(c *Context, args []resp.Value) resp.Value {
	return resp.Integer(int64(c.Store.Persist(string(args[0].Bulk))))
}

func cmdKeys(c *Context, args []resp.Value) resp.Value {
	keys := c.Store.Keys(string(args[0].Bulk))
	out := make([]resp.Value, len(keys))
	for i, k := range keys {
		out[i] = resp.Bulk([]byte(k))
	}
	return resp.Array(out)
}

func cmdRename(c *Context, args []resp.Value) resp.Value {
	if err := c.Store.Rename(string(args[0].Bulk), string(args[1].Bulk)); err != nil {
		return errorReply(err)
	}
	return resp.SimpleString("OK")
}

func cmdRenameNX(c *Context, args []resp.Value) resp.Value {
	ok, err := c.Store.RenameNX(string(args[0].Bulk), string(args[1].Bulk))
	if err != nil {
		return errorReply(err)
	}
	if ok {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

func cmdFlushDB(c *Context, args []resp.Value) resp.Value {
	c.Store.FlushDB()
	return resp.SimpleString("OK")
}

func cmdDBSize(c *Context, args []resp.Value) resp.Value {
	return resp.Integer(int64(c.Store.DBSize()))
}

// cmdSelect: this server has exactly one logical database, so SELECT 0
// is accepted as a no-op and any other index is rejected, per
// SPEC_FULL.md's documented resolution of that Open Question.
func cmdSelect(c *Context, args []resp.Value) resp.Value {
	idx, perr := strconv.Atoi(string(args[0].Bulk))
	if perr != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	if idx != 0 {
		return resp.Error("ERR", "DB index is out of range")
	}
	return resp.SimpleString("OK")
}

// cmdConfig implements CONFIG GET, returning an empty array for any
// unknown parameter per SPEC_FULL.md's documented resolution.
func cmdConfig(c *Context, args []resp.Value) resp.Value {
	sub := strings.ToUpper(string(args[0].Bulk))
	switch sub {
	case "GET":
		return resp.Array([]resp.Value{})
	default:
		return resp.Error("ERR", "unsupported CONFIG subcommand '"+sub+"'")
	}
}
