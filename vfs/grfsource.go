package vfs

import (
	"fmt"

	"github.com/Faultbox/meshcompile/pkg/grf"
)

// GRFSource resolves paths against an open GRF archive, the packed asset
// container the reference client ships meshes and skins inside rather
// than as loose files. It lets a Chain try the archive before falling
// back to the OS filesystem, the same resolution order the reference
// client uses for every other asset type.
type GRFSource struct {
	archive *grf.Archive
}

// OpenGRF opens the archive at path for reading.
func OpenGRF(path string) (*GRFSource, error) {
	archive, err := grf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening GRF archive: %w", err)
	}
	return &GRFSource{archive: archive}, nil
}

// Open implements Source. Blobs it returns are always owned, since
// grf.Archive.Read decompresses into a fresh buffer per call.
func (g *GRFSource) Open(path string) (Blob, error) {
	data, err := g.archive.Read(path)
	if err != nil {
		if !g.archive.Contains(path) {
			return Blob{}, ErrNotFound
		}
		return Blob{}, err
	}
	if len(data) == 0 {
		return Blob{}, ErrEmpty
	}
	return Blob{Data: data, Owned: true}, nil
}

// Close closes the underlying archive.
func (g *GRFSource) Close() error {
	return g.archive.Close()
}
