package grammar

import "sync"

// bufferPool holds []byte scratch buffers for decoding and encoding fields.
var bufferPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 64)
		return &b
	},
}

// getBuffer gets an empty buffer from the pool.
func getBuffer() []byte {
	p := bufferPool.Get().(*[]byte)
	return (*p)[:0]
}

// putBuffer returns buf to the pool unless it grew too large to keep.
func putBuffer(buf []byte) {
	const maxCapacity = 4096
	if cap(buf) > maxCapacity {
		return
	}
	buf = buf[:0]
	bufferPool.Put(&buf)
}
