package generator

import (
	"bytes"
	"sync"
)

// Rough per-entry output sizes used to presize the output buffer.
const (
	bytesPerOperation = 256
	bytesPerType      = 192

	// maxPooledBuffer bounds the capacity of buffers returned to the pool.
	maxPooledBuffer = 1 << 20
)

var outputBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, len(preamble)+8*1024))
	},
}

// estimateOutputSize guesses the module size for ops operations and types
// exported types.
func estimateOutputSize(ops, types int) int {
	return len(preamble) + ops*bytesPerOperation + types*bytesPerType
}

// getOutputBuffer returns an empty pooled buffer with room for at least
// size bytes.
func getOutputBuffer(size int) *bytes.Buffer {
	buf := outputBufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.Grow(size)
	return buf
}

// putOutputBuffer returns buf to the pool unless it grew too large.
func putOutputBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	outputBufferPool.Put(buf)
}
