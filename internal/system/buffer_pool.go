package system

import (
	"bytes"
	"sync"
)

// maxPooledBuffer keeps oversized buffers out of the pool so one huge
// document does not pin its memory forever.
const maxPooledBuffer = 1 << 20

// BufferPool reuses the byte buffers that documents are serialized into,
// reducing GC pressure when the worker pool encodes many stickers.
type BufferPool struct {
	pool sync.Pool
}

var globalPool = NewBufferPool()

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}

// GetBuffer returns an empty buffer from the shared pool.
func GetBuffer() *bytes.Buffer {
	return globalPool.Get()
}

// PutBuffer hands a buffer back to the shared pool.
func PutBuffer(buf *bytes.Buffer) {
	globalPool.Put(buf)
}

func (p *BufferPool) Get() *bytes.Buffer {
	buf := p.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (p *BufferPool) Put(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	p.pool.Put(buf)
}
