package vfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemSourceBorrowed(t *testing.T) {
	mem := NewMemSource(map[string][]byte{"a.bin": {1, 2, 3}})
	blob, err := mem.Open("a.bin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blob.Owned {
		t.Fatalf("MemSource blobs must be borrowed")
	}

	if _, err := mem.Open("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemSourceEmpty(t *testing.T) {
	mem := NewMemSource(map[string][]byte{"empty.bin": {}})
	if _, err := mem.Open("empty.bin"); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestOSSourceOwned(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.bin")
	if err := os.WriteFile(path, []byte{9, 9}, 0o644); err != nil {
		t.Fatal(err)
	}

	blob, err := OSSource{}.Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !blob.Owned {
		t.Fatalf("OSSource blobs must be owned")
	}

	if _, err := (OSSource{}).Open(filepath.Join(dir, "missing.bin")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChainPrefersMemOverOS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.bin")
	if err := os.WriteFile(path, []byte{0xAA}, 0o644); err != nil {
		t.Fatal(err)
	}

	mem := NewMemSource(map[string][]byte{path: {0xBB}})
	chain := Default(mem)

	blob, err := chain.Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blob.Owned || blob.Data[0] != 0xBB {
		t.Fatalf("expected the borrowed mem blob to win, got %+v", blob)
	}

	other := filepath.Join(dir, "other.bin")
	if err := os.WriteFile(other, []byte{0xCC}, 0o644); err != nil {
		t.Fatal(err)
	}
	blob, err = chain.Open(other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !blob.Owned || blob.Data[0] != 0xCC {
		t.Fatalf("expected the owned OS blob as fallback, got %+v", blob)
	}
}
