package mesh

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/meshcompile/internal/logx"
	"github.com/Faultbox/meshcompile/vfs"
)

// buildGRFWithFile writes a minimal single-entry GRF archive containing
// name -> content, exercising the same binary layout vfs.GRFSource reads
// through pkg/grf, and returns the archive's path on disk.
func buildGRFWithFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	w.Write(content)
	w.Close()

	aligned := uint32(compressed.Len())
	if aligned%8 != 0 {
		aligned += 8 - aligned%8
	}

	var table bytes.Buffer
	table.Write([]byte(name))
	table.WriteByte(0)
	binary.Write(&table, binary.LittleEndian, uint32(compressed.Len()))
	binary.Write(&table, binary.LittleEndian, aligned)
	binary.Write(&table, binary.LittleEndian, uint32(len(content)))
	table.WriteByte(0x01)
	binary.Write(&table, binary.LittleEndian, uint32(0))

	var compressedTable bytes.Buffer
	tw := zlib.NewWriter(&compressedTable)
	tw.Write(table.Bytes())
	tw.Close()

	header := make([]byte, 46)
	copy(header[0:15], "Master of Magic")
	binary.LittleEndian.PutUint32(header[30:], aligned) // TableOffset
	binary.LittleEndian.PutUint32(header[38:], 1+7)      // FileCount
	binary.LittleEndian.PutUint32(header[42:], 0x200)    // Version

	var out bytes.Buffer
	out.Write(header)
	out.Write(compressed.Bytes())
	out.Write(make([]byte, aligned-uint32(compressed.Len())))
	binary.Write(&out, binary.LittleEndian, uint32(compressedTable.Len()))
	binary.Write(&out, binary.LittleEndian, uint32(table.Len()))
	out.Write(compressedTable.Bytes())

	path := filepath.Join(t.TempDir(), "assets.grf")
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileSTLFromGRFArchive(t *testing.T) {
	archivePath := buildGRFWithFile(t, "data/model/cube.stl", buildSTLCube())

	src, err := vfs.OpenGRF(archivePath)
	if err != nil {
		t.Fatalf("OpenGRF: %v", err)
	}
	defer src.Close()

	m := New("cube")
	m.FilePath = "data/model/cube.stl"
	if err := m.Compile(src, DefaultOptions(), logx.Nop{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	vol, err := m.Volume()
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	if !approxEqual(vol, 1.0, 1e-4) {
		t.Fatalf("volume = %v, want 1 (unit cube)", vol)
	}
}
