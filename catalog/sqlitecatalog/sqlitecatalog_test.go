package sqlitecatalog

import (
	"testing"

	"github.com/Faultbox/meshcompile/internal/skin"
)

func openMemory(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { cat.Close() })
	return cat
}

func TestRegisterAndFindBody(t *testing.T) {
	cat := openMemory(t)
	if err := cat.RegisterBody("root", 1); err != nil {
		t.Fatalf("RegisterBody: %v", err)
	}
	id, ok := cat.FindObject(skin.ObjectBody, "root")
	if !ok || id != 1 {
		t.Fatalf("FindObject(body, root) = (%d, %v), want (1, true)", id, ok)
	}
	if _, ok := cat.FindObject(skin.ObjectBody, "missing"); ok {
		t.Fatal("expected missing body to be unresolved")
	}
}

func TestRegisterAndFindMaterial(t *testing.T) {
	cat := openMemory(t)
	if err := cat.RegisterMaterial("chrome", 5); err != nil {
		t.Fatalf("RegisterMaterial: %v", err)
	}
	id, ok := cat.FindObject(skin.ObjectMaterial, "chrome")
	if !ok || id != 5 {
		t.Fatalf("FindObject(material, chrome) = (%d, %v), want (5, true)", id, ok)
	}
}

func TestReopenPreservesRegistrations(t *testing.T) {
	// A file-backed catalog's registrations must survive a fresh Open
	// against the same path, since loadFromDB is how the cache is
	// populated on every open, not just the first.
	path := t.TempDir() + "/catalog.db"

	cat, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := cat.RegisterBody("torso", 3); err != nil {
		t.Fatalf("RegisterBody: %v", err)
	}
	if err := cat.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	id, ok := reopened.FindObject(skin.ObjectBody, "torso")
	if !ok || id != 3 {
		t.Fatalf("FindObject after reopen = (%d, %v), want (3, true)", id, ok)
	}
}

func TestFindObjectUnknownKind(t *testing.T) {
	cat := openMemory(t)
	if _, ok := cat.FindObject(skin.ObjectKind(99), "anything"); ok {
		t.Fatal("expected an unrecognized object kind to never resolve")
	}
}
