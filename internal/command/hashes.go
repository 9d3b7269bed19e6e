package command

import (
	"strconv"

	"gofast/internal/resp"
	"gofast/internal/store"
)

func registerHashCommands(r *Registry) {
	r.register("HSET", 3, cmdHSet)
	r.register("HMSET", 3, cmdHMSet)
	r.register("HGET", 2, cmdHGet)
	r.register("HMGET", 2, cmdHMGet)
	r.register("HGETALL", 1, cmdHGetAll)
	r.register("HDEL", 2, cmdHDel)
	r.register("HEXISTS", 2, cmdHExists)
	r.register("HLEN", 1, cmdHLen)
	r.register("HKEYS", 1, cmdHKeys)
	r.register("HVALS", 1, cmdHVals)
	r.register("HINCRBY", 3, cmdHIncrBy)
}

func hashFields(args []resp.Value) ([]store.HField, resp.Value) {
	if len(args)%2 != 0 {
		return nil, resp.Error("ERR", "wrong number of arguments for 'hset' command")
	}
	fields := make([]store.HField, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		fields = append(fields, store.HField{Field: args[i].Bulk, Value: args[i+1].Bulk})
	}
	return fields, resp.Value{}
}

func cmdHSet(c *Context, args []resp.Value) resp.Value {
	fields, errVal := hashFields(args[1:])
	if fields == nil {
		return errVal
	}
	n, err := c.Store.HSet(string(args[0].Bulk), fields...)
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

func cmdHMSet(c *Context, args []resp.Value) resp.Value {
	fields, errVal := hashFields(args[1:])
	if fields == nil {
		return errVal
	}
	_, err := c.Store.HSet(string(args[0].Bulk), fields...)
	if err != nil {
		return errorReply(err)
	}
	return resp.SimpleString("OK")
}

func cmdHGet(c *Context, args []resp.Value) resp.Value {
	v, ok, err := c.Store.HGet(string(args[0].Bulk), args[1].Bulk)
	if err != nil {
		return errorReply(err)
	}
	return bulkReplyOrNull(v, ok)
}

func cmdHMGet(c *Context, args []resp.Value) resp.Value {
	vals, err := c.Store.HMGet(string(args[0].Bulk), bulkBytes(args[1:]))
	if err != nil {
		return errorReply(err)
	}
	return arrayOfBulkOrNull(vals)
}

func cmdHGetAll(c *Context, args []resp.Value) resp.Value {
	vals, err := c.Store.HGetAll(string(args[0].Bulk))
	if err != nil {
		return errorReply(err)
	}
	return arrayOfBulk(vals)
}

func cmdHDel(c *Context, args []resp.Value) resp.Value {
	n, err := c.Store.HDel(string(args[0].Bulk), bulkBytes(args[1:]))
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

func cmdHExists(c *Context, args []resp.Value) resp.Value {
	ok, err := c.Store.HExists(string(args[0].Bulk), args[1].Bulk)
	if err != nil {
		return errorReply(err)
	}
	if ok {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

func cmdHLen(c *Context, args []resp.Value) resp.Value {
	n, err := c.Store.HLen(string(args[0].Bulk))
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

func cmdHKeys(c *Context, args []resp.Value) resp.Value {
	vals, err := c.Store.HKeys(string(args[0].Bulk))
	if err != nil {
		return errorReply(err)
	}
	return arrayOfBulk(vals)
}

func cmdHVals(c *Context, args []resp.Value) resp.Value {
	vals, err := c.Store.HVals(string(args[0].Bulk))
	if err != nil {
		return errorReply(err)
	}
	return arrayOfBulk(vals)
}

func cmdHIncrBy(c *Context, args []resp.Value) resp.Value {
	delta, perr := strconv.ParseInt(string(args[2].Bulk), 10, 64)
	if perr != nil {
		return resp.Error("ERR", "value is not an integer or out of range")
	}
	n, err := c.Store.HIncrBy(string(args[0].Bulk), args[1].Bulk, delta)
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(n)
}
