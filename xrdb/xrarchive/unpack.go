package xrarchive

import (
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"sync"

	"xrf/compress"
	"xrf/xrerr"
)

// streamWindow is the maximum chunk size used when copying an
// uncompressed entry's bytes, per spec §4.2 "stream in fixed-size
// (≤256 KiB) windows".
const streamWindow = 256 * 1024

// Source is a seekable archive byte source; *os.File satisfies it.
type Source interface {
	io.ReaderAt
}

// MakeDirectories creates every distinct parent directory the table's
// entries will be written under, before any file is written, tolerating
// directories that already exist (spec §4.2 "Directories are
// materialized once... before writing begins").
func MakeDirectories(destRoot string, table []Descriptor) error {
	seen := make(map[string]bool)
	for _, d := range table {
		dir := filepath.Dir(filepath.Join(destRoot, d.Name))
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return xrerr.IoError("mkdir "+dir, err)
		}
	}
	return nil
}

// UnpackOne extracts a single descriptor's bytes from src to
// destRoot/d.Name, decompressing via LZO and verifying its CRC-32 when
// size_real != size_compressed, or streaming raw bytes otherwise.
func UnpackOne(src Source, d Descriptor, destRoot string) error {
	if d.SizeReal == 0 {
		return nil
	}
	outPath := filepath.Join(destRoot, d.Name)
	out, err := os.Create(outPath)
	if err != nil {
		return xrerr.IoError("create "+outPath, err)
	}
	defer out.Close()

	if d.SizeReal != d.SizeCompressed {
		raw := make([]byte, d.SizeCompressed)
		if _, err := src.ReadAt(raw, int64(d.Offset)); err != nil {
			return xrerr.IoError("read "+d.Name, err)
		}
		var lzo compress.LZO
		decoded, err := lzo.Decompress(raw, int(d.SizeReal))
		if err != nil {
			return xrerr.Wrap(xrerr.CompressionFailed, "decompress "+d.Name, err)
		}
		if crc32.ChecksumIEEE(decoded) != d.CRC32 {
			return xrerr.New(xrerr.CrcMismatch, "archive entry "+d.Name+": crc32 mismatch")
		}
		if _, err := out.Write(decoded); err != nil {
			return xrerr.IoError("write "+outPath, err)
		}
		return nil
	}

	section := io.NewSectionReader(src, int64(d.Offset), int64(d.SizeReal))
	buf := make([]byte, streamWindow)
	if _, err := io.CopyBuffer(out, section, buf); err != nil {
		return xrerr.IoError("stream "+d.Name, err)
	}
	return nil
}

// UnpackSerial extracts every descriptor in table in stream order.
func UnpackSerial(src Source, table []Descriptor, destRoot string) error {
	if err := MakeDirectories(destRoot, table); err != nil {
		return err
	}
	return Walk(table, func(d Descriptor) error {
		return UnpackOne(src, d, destRoot)
	})
}

// UnpackPool extracts table's descriptors using up to workers
// goroutines. A failing entry does not stop the pool: every started
// worker runs to completion, and the first error recorded is returned.
func UnpackPool(src Source, table []Descriptor, destRoot string, workers int) error {
	if workers < 1 {
		workers = 1
	}
	if err := MakeDirectories(destRoot, table); err != nil {
		return err
	}
	for _, d := range table {
		if !isSafePath(d.Name) {
			return &unsafePathError{name: d.Name}
		}
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, d := range table {
		d := d
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if err := UnpackOne(src, d, destRoot); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return firstErr
}
