package xrarchive

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildArchiveRoundTripsThroughUnpack(t *testing.T) {
	srcDir := t.TempDir()
	files := map[string]string{
		"gamedata/scripts/readme.txt": "plain text, small enough to skip compression",
		"gamedata/textures/wood.dds":  stringsRepeat("xray-archive-entry-", 64),
	}
	for rel, content := range files {
		full := filepath.Join(srcDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	archive, err := BuildArchive(srcDir, `gamedata`)
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	metadataPayload, descriptorPayload, headerLen, err := ReadHeaderChunks(archive)
	if err != nil {
		t.Fatalf("ReadHeaderChunks: %v", err)
	}
	meta, err := ParseMetadata(metadataPayload)
	if err != nil {
		t.Fatalf("ParseMetadata: %v", err)
	}
	if meta.EntryPoint != "gamedata" {
		t.Fatalf("entry point = %q, want gamedata", meta.EntryPoint)
	}
	table, err := ReadDescriptorTable(descriptorPayload)
	if err != nil {
		t.Fatalf("ReadDescriptorTable: %v", err)
	}
	if len(table) != len(files) {
		t.Fatalf("got %d descriptors, want %d", len(table), len(files))
	}
	for _, d := range table {
		if d.Offset < uint32(headerLen) {
			t.Fatalf("descriptor %s offset %d precedes header region (%d bytes)", d.Name, d.Offset, headerLen)
		}
	}

	destDir := t.TempDir()
	src := bytes.NewReader(archive)
	if err := UnpackSerial(src, table, destDir); err != nil {
		t.Fatalf("UnpackSerial: %v", err)
	}
	for rel, content := range files {
		got, err := os.ReadFile(filepath.Join(destDir, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("ReadFile %s: %v", rel, err)
		}
		if string(got) != content {
			t.Fatalf("content mismatch for %s: got %q want %q", rel, got, content)
		}
	}
}

func stringsRepeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for range n {
		out = append(out, s...)
	}
	return string(out)
}
