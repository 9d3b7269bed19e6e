package server

import "sync"

// bytePool recycles the fixed-size chunks each connection reads into,
// adapted from the teacher's memory.go BytePool (there used to hand
// out binary-frame header buffers; here sized to readChunkSize and
// reused across every Read call on a connection).
type bytePool struct {
	pool sync.Pool
}

func newBytePool(size int) *bytePool {
	return &bytePool{
		pool: sync.Pool{
			New: func() any {
				return make([]byte, size)
			},
		},
	}
}

func (bp *bytePool) get() []byte {
	return bp.pool.Get().([]byte)
}

func (bp *bytePool) put(buf []byte) {
	bp.pool.Put(buf) //nolint:staticcheck // fixed-size buffers, no need to reslice
}
