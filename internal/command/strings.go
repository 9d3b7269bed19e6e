package command

import (
	"math"
	"strconv"
	"strings"

	"gofast/internal/resp"
	"gofast/internal/store"
)

func registerStringCommands(r *Registry) {
	r.register("GET", 1, cmdGet)
	r.register("SET", 2, cmdSet)
	r.register("GETSET", 2, cmdGetSet)
	r.register("APPEND", 2, cmdAppend)
	r.register("STRLEN", 1, cmdStrlen)
	r.register("INCR", 1, cmdIncr)
	r.register("DECR", 1, cmdDecr)
	r.register("INCRBY", 2, cmdIncrBy)
	r.register("DECRBY", 2, cmdDecrBy)
	r.register("MGET", 1, cmdMGet)
	r.register("MSET", 2, cmdMSet)
}

func cmdGet(c *Context, args []resp.Value) resp.Value {
	val, ok, err := c.Store.Get(string(args[0].Bulk))
	if err != nil {
		return errorReply(err)
	}
	return bulkReplyOrNull(val, ok)
}

// cmdSet parses SET key value [NX|XX] [GET] [EX sec|PX ms|KEEPTTL].
func cmdSet(c *Context, args []resp.Value) resp.Value {
	key, val := string(args[0].Bulk), args[1].Bulk
	opts := store.SetOptions{}

	rest := args[2:]
	ttlTok := ""
	for i := 0; i < len(rest); i++ {
		tok := strings.ToUpper(string(rest[i].Bulk))
		switch tok {
		case "NX":
			if opts.XX {
				return resp.Error("ERR", "syntax error")
			}
			opts.NX = true
		case "XX":
			if opts.NX {
				return resp.Error("ERR", "syntax error")
			}
			opts.XX = true
		case "GET":
			opts.GetOld = true
		case "KEEPTTL":
			if opts.TTLMillis != 0 {
				return resp.Error("ERR", "syntax error")
			}
			opts.KeepTTL = true
		case "EX", "PX":
			if opts.KeepTTL || (ttlTok != "" && ttlTok != tok) || i+1 >= len(rest) {
				return resp.Error("ERR", "syntax error")
			}
			ttlTok = tok
			i++
			n, perr := strconv.ParseInt(string(rest[i].Bulk), 10, 64)
			if perr != nil || n <= 0 {
				return resp.Error("ERR", "invalid expire time in 'set' command")
			}
			if tok == "EX" {
				opts.TTLMillis = n * 1000
			} else {
				opts.TTLMillis = n
			}
		default:
			return resp.Error("ERR", "syntax error")
		}
	}

	old, hadOld, applied, err := c.Store.Set(key, val, opts)
	if err != nil {
		return errorReply(err)
	}
	if opts.GetOld {
		return bulkReplyOrNull(old, hadOld)
	}
	if !applied {
		return resp.NullBulk()
	}
	return resp.SimpleString("OK")
}

func cmdGetSet(c *Context, args []resp.Value) resp.Value {
	old, hadOld, err := c.Store.GetSet(string(args[0].Bulk), args[1].Bulk)
	if err != nil {
		return errorReply(err)
	}
	return bulkReplyOrNull(old, hadOld)
}

func cmdAppend(c *Context, args []resp.Value) resp.Value {
	n, err := c.Store.Append(string(args[0].Bulk), args[1].Bulk)
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

func cmdStrlen(c *Context, args []resp.Value) resp.Value {
	n, err := c.Store.Strlen(string(args[0].Bulk))
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

func cmdIncr(c *Context, args []resp.Value) resp.Value {
	return incrByDelta(c, args[0].Bulk, 1)
}

func cmdDecr(c *Context, args []resp.Value) resp.Value {
	return incrByDelta(c, args[0].Bulk, -1)
}

func cmdIncrBy(c *Context, args []resp.Value) resp.Value {
	delta, perr := strconv.ParseInt(string(args[1].Bulk), 10, 64)
	if perr != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	return incrByDelta(c, args[0].Bulk, delta)
}

func cmdDecrBy(c *Context, args []resp.Value) resp.Value {
	delta, perr := strconv.ParseInt(string(args[1].Bulk), 10, 64)
	if perr != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	// -delta would overflow right back to math.MinInt64 in two's
	// complement, masking a real overflow as a no-op DECRBY.
	if delta == math.MinInt64 {
		return errorReply(store.ErrOverflow)
	}
	return incrByDelta(c, args[0].Bulk, -delta)
}

func incrByDelta(c *Context, key []byte, delta int64) resp.Value {
	n, err := c.Store.IncrBy(string(key), delta)
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(n)
}

func cmdMGet(c *Context, args []resp.Value) resp.Value {
	vals := c.Store.MGet(bulkStrings(args))
	return arrayOfBulkOrNull(vals)
}

func cmdMSet(c *Context, args []resp.Value) resp.Value {
	if len(args)%2 != 0 {
		return resp.Error("ERR", "wrong number of arguments for 'mset' command")
	}
	pairs := make([]store.KV, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		pairs = append(pairs, store.KV{Key: string(args[i].Bulk), Val: args[i+1].Bulk})
	}
	c.Store.MSet(pairs)
	return resp.SimpleString("OK")
}
