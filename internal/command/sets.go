package command

import "gofast/internal/resp"

func registerSetCommands(r *Registry) {
	r.register("SADD", 2, cmdSAdd)
	r.register("SREM", 2, cmdSRem)
	r.register("SMEMBERS", 1, cmdSMembers)
	r.register("SISMEMBER", 2, cmdSIsMember)
	r.register("SCARD", 1, cmdSCard)
}

func cmdSAdd(c *Context, args []resp.Value) resp.Value {
	n, err := c.Store.SAdd(string(args[0].Bulk), bulkBytes(args[1:])...)
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

func cmdSRem(c *Context, args []resp.Value) resp.Value {
	n, err := c.Store.SRem(string(args[0].Bulk), bulkBytes(args[1:])...)
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}

func cmdSMembers(c *Context, args []resp.Value) resp.Value {
	vals, err := c.Store.SMembers(string(args[0].Bulk))
	if err != nil {
		return errorReply(err)
	}
	return arrayOfBulk(vals)
}

func cmdSIsMember(c *Context, args []resp.Value) resp.Value {
	ok, err := c.Store.SIsMember(string(args[0].Bulk), args[1].Bulk)
	if err != nil {
		return errorReply(err)
	}
	if ok {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

func cmdSCard(c *Context, args []resp.Value) resp.Value {
	n, err := c.Store.SCard(string(args[0].Bulk))
	if err != nil {
		return errorReply(err)
	}
	return resp.Integer(int64(n))
}
