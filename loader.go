package ggview

import (
	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/internal/decode"
	"github.com/gogpu/ggview/internal/parallel"
)

// loadResult is what a loader goroutine delivers: a finished image set
// or the error that prevented one.
type loadResult struct {
	set *ImageSet
	err error
}

// PendingLoad tracks one in-flight image load. Every navigation starts
// a fresh load with a higher generation number; whichever generation is
// highest when results arrive wins, and anything older is discarded.
//
// The channel is buffered so the loader goroutine delivers its single
// result and exits without waiting for the UI goroutine.
type PendingLoad struct {
	Gen  uint64
	Path string
	ch   chan loadResult
}

// poll receives the result without blocking. It reports false while the
// load is still running.
func (p *PendingLoad) poll() (loadResult, bool) {
	select {
	case r := <-p.ch:
		return r, true
	default:
		return loadResult{}, false
	}
}

// beginLoad decodes and tiles path on a new goroutine. The goroutine
// touches only its own channel, the texture factory, and the worker
// pool, all of which tolerate concurrent use.
func beginLoad(gen uint64, path string, limit int, f backend.TextureFactory, pool *parallel.Pool) *PendingLoad {
	p := &PendingLoad{Gen: gen, Path: path, ch: make(chan loadResult, 1)}
	go func() {
		set, err := loadImageSet(path, limit, f, pool)
		p.ch <- loadResult{set: set, err: err}
	}()
	return p
}

// loadImageSet is the synchronous decode-and-tile pipeline shared by
// the startup load and the loader goroutines.
func loadImageSet(path string, limit int, f backend.TextureFactory, pool *parallel.Pool) (*ImageSet, error) {
	r, err := decode.File(path)
	if err != nil {
		return nil, err
	}
	return BuildImageSet(r, path, limit, f, pool)
}
