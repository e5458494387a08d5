// Package vfs provides uniform access to a named blob of bytes, whether it
// lives in a preloaded virtual file table or on the host filesystem. It is
// the same "try the archive, fall back to loose files" facade the
// reference engine uses when it reads client assets, generalized to a
// small interface the mesh pipeline can depend on without knowing what
// backs it.
package vfs

import (
	"errors"
	"os"
)

// ErrNotFound is returned when no configured Source has the requested path.
var ErrNotFound = errors.New("vfs: not found")

// ErrEmpty is returned when a Source resolves a path to zero bytes.
var ErrEmpty = errors.New("vfs: empty file")

// Blob is a byte range returned by a Source. Owned is true when the caller
// holds the only reference to Data and is free to mutate or release it;
// Owned is false when Data is borrowed from a Source's internal storage
// (an in-memory preloaded file) and must be treated as read-only and never
// retained past the call that produced it.
type Blob struct {
	Data  []byte
	Owned bool
}

// Source resolves a path to a Blob.
type Source interface {
	// Open returns the blob named by path, or ErrNotFound/ErrEmpty.
	Open(path string) (Blob, error)
}

// MemSource is an in-memory table of preloaded virtual files. Blobs it
// returns are always borrowed (Owned == false).
type MemSource struct {
	files map[string][]byte
}

// NewMemSource builds a MemSource from a path -> contents table.
func NewMemSource(files map[string][]byte) *MemSource {
	return &MemSource{files: files}
}

// Open implements Source.
func (m *MemSource) Open(path string) (Blob, error) {
	data, ok := m.files[path]
	if !ok {
		return Blob{}, ErrNotFound
	}
	if len(data) == 0 {
		return Blob{}, ErrEmpty
	}
	return Blob{Data: data, Owned: false}, nil
}

// OSSource reads from the host filesystem. Blobs it returns are always
// owned (Owned == true).
type OSSource struct{}

// Open implements Source.
func (OSSource) Open(path string) (Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Blob{}, ErrNotFound
		}
		return Blob{}, err
	}
	if len(data) == 0 {
		return Blob{}, ErrEmpty
	}
	return Blob{Data: data, Owned: true}, nil
}

// Chain tries each Source in order and returns the first hit, mirroring
// the reference engine's "archive first, loose files second" asset
// resolution.
type Chain []Source

// Open implements Source.
func (c Chain) Open(path string) (Blob, error) {
	for _, src := range c {
		blob, err := src.Open(path)
		if err == nil {
			return blob, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Blob{}, err
		}
	}
	return Blob{}, ErrNotFound
}

// Default returns a Chain that tries mem first, then the OS filesystem —
// the standard resolution order for a mesh's source path.
func Default(mem *MemSource) Chain {
	if mem == nil {
		return Chain{OSSource{}}
	}
	return Chain{mem, OSSource{}}
}
