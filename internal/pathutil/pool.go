package pathutil

import "sync"

const (
	defaultPathCap = 8  // Most locations are <8 steps deep
	maxPathCap     = 64 // Don't pool excessively deep builders
)

var pathBuilderPool = sync.Pool{
	New: func() any {
		return &PathBuilder{segments: make([]segment, 0, defaultPathCap)}
	},
}

// Get retrieves an empty PathBuilder from the pool.
func Get() *PathBuilder {
	p := pathBuilderPool.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Put returns p to the pool unless it has grown oversized.
func Put(p *PathBuilder) {
	if p == nil || cap(p.segments) > maxPathCap {
		return
	}
	pathBuilderPool.Put(p)
}
