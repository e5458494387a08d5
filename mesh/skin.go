package mesh

import (
	"path/filepath"

	pkgerrors "github.com/pkg/errors"

	"github.com/Faultbox/meshcompile/internal/mesherr"
	"github.com/Faultbox/meshcompile/internal/meshio"
	"github.com/Faultbox/meshcompile/internal/skin"
	"github.com/Faultbox/meshcompile/vfs"
)

// Skin is a skin staged from a loaded SKN file, then frozen by Compile
// (spec.md §3's Skin data model, §4.6's compiler).
type Skin struct {
	Name         string
	FilePath     string
	MaterialName string

	compiled *skin.Skin
}

// Compile loads and compiles the skin through cat, the model's body and
// material name resolver. It may run at most once.
func (s *Skin) Compile(src vfs.Source, cat skin.Catalog, opts Options) error {
	if s.compiled != nil {
		return mesherr.New(mesherr.AlreadyCompiled, s.Name, "Compile already ran for this skin")
	}

	path := s.FilePath
	if opts.StripPath {
		path = filepath.Base(path)
	}

	blob, err := src.Open(s.FilePath)
	if err != nil {
		return pkgerrors.Wrapf(err, "skin %q", s.Name)
	}

	st, err := meshio.LoadSKN(s.Name, blob.Data)
	if err != nil {
		return pkgerrors.Wrapf(err, "skin %q (%s)", s.Name, path)
	}

	compiled, err := skin.Compile(s.Name, st, s.MaterialName, cat)
	if err != nil {
		return pkgerrors.Wrapf(err, "skin %q", s.Name)
	}

	s.compiled = compiled
	return nil
}

// Compiled reports whether Compile has run and frozen this skin.
func (s *Skin) Compiled() bool { return s.compiled != nil }

// Bones returns the compiled skin's resolved bones, or NotCompiled if
// Compile hasn't run.
func (s *Skin) Bones() ([]skin.Bone, error) {
	if s.compiled == nil {
		return nil, mesherr.New(mesherr.NotCompiled, s.Name, "Compile has not run for this skin")
	}
	return s.compiled.Bones, nil
}

// MaterialID returns the compiled skin's resolved material id, or -1 if
// no material name was given.
func (s *Skin) MaterialID() (int32, error) {
	if s.compiled == nil {
		return 0, mesherr.New(mesherr.NotCompiled, s.Name, "Compile has not run for this skin")
	}
	return s.compiled.MaterialID, nil
}
