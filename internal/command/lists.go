package command

import (
	"strconv"

	"gofast/internal/resp"
)

func registerListCommands(r *Registry) {
	r.register("LPUSH", 2, cmdLPush)
	r.register("RPUSH", 2, cmdRPush)
	r.register("LPOP", 1, cmdLPop)
	r.register("RPOP", 1, cmdRPop)
	r.register("LLEN", 1, cmdLLen)
	r.register("LINDEX", 2, cmdLIndex)
	r.register("LRANGE", 3, cmdLRange)
	r.register("LSET", 3, cmdLSet)
}

func cmdLPush(c *Context, args []resp.Value) resp.Value {
	n, err := c.Store.LPush(string(args[0].Bulk), bulkBytes(args[1:])...)
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

func cmdRPush(c *Context, args []resp.Value) resp.Value {
	n, err := c.Store.RPush(string(args[0].Bulk), bulkBytes(args[1:])...)
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

func cmdLPop(c *Context, args []resp.Value) resp.Value {
	v, ok, err := c.Store.LPop(string(args[0].Bulk))
	if err != nil {
		return errorReply(err)
	}
	return bulkReplyOrNull(v, ok)
}

func cmdRPop(c *Context, args []resp.Value) resp.Value {
	v, ok, err := c.Store.RPop(string(args[0].Bulk))
	if err != nil {
		return errorReply(err)
	}
	return bulkReplyOrNull(v, ok)
}

func cmdLLen(c *Context, args []resp.Value) resp.Value {
	n, err := c.Store.LLen(string(args[0].Bulk))
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

func cmdLIndex(c *Context, args []resp.Value) resp.Value {
	i, perr := strconv.Atoi(string(args[1].Bulk))
	if perr != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	v, ok, err := c.Store.LIndex(string(args[0].Bulk), i)
	if err != nil {
		return errorReply(err)
	}
	return bulkReplyOrNull(v, ok)
}

func cmdLRange(c *Context, args []resp.Value) resp.Value {
	start, perr1 := strconv.Atoi(string(args[1].Bulk))
	stop, perr2 := strconv.Atoi(string(args[2].Bulk))
	if perr1 != nil || perr2 != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	vals, err := c.Store.LRange(string(args[0].Bulk), start, stop)
	if err != nil {
		return errorReply(err)
	}
	return arrayOfBulk(vals)
}

func cmdLSet(c *Context, args []resp.Value) resp.Value {
	i, perr := strconv.Atoi(string(args[1].Bulk))
	if perr != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	if err := c.Store.LSet(string(args[0].Bulk), i, args[2].Bulk); err != nil {
		return errorReply(err)
	}
	return resp.SimpleString("OK")
}
