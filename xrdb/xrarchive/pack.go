package xrarchive

import (
	"bytes"
	"hash/crc32"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"xrf/compress"
	"xrf/xrerr"
)

// packEntry is one file collected by walkSourceTree before its final,
// header-relative Offset is known.
type packEntry struct {
	descriptor Descriptor // Offset is relative to the start of the data region
	body       []byte     // bytes to append to the data region: compressed or raw
}

// walkSourceTree collects every regular file under root, compressing each
// with LZO and falling back to storing it raw when compression does not
// shrink it, mirroring UnpackOne's own raw-vs-compressed branching in
// reverse. Names are recorded with '/' separators normalized to '\', the
// separator ReadDescriptor/Write round-trip through Windows-1251.
func walkSourceTree(root string) ([]packEntry, error) {
	var entries []packEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return xrerr.IoError("relativize "+path, err)
		}
		original, err := os.ReadFile(path)
		if err != nil {
			return xrerr.IoError("read "+path, err)
		}

		name := strings.ReplaceAll(rel, string(filepath.Separator), `\`)
		var lzo compress.LZO
		compressed, cerr := lzo.Compress(original)
		if cerr == nil && len(compressed) < len(original) {
			entries = append(entries, packEntry{
				descriptor: Descriptor{
					Name:           name,
					SizeReal:       uint32(len(original)),
					SizeCompressed: uint32(len(compressed)),
					CRC32:          crc32.ChecksumIEEE(original),
				},
				body: compressed,
			})
			return nil
		}
		entries = append(entries, packEntry{
			descriptor: Descriptor{
				Name:           name,
				SizeReal:       uint32(len(original)),
				SizeCompressed: uint32(len(original)),
			},
			body: original,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].descriptor.Name < entries[j].descriptor.Name })
	return entries, nil
}

// BuildArchive walks srcRoot and assembles a complete archive file:
// metadata chunk, descriptor-table chunk, then the concatenated data
// region, in that order (the layout ReadHeaderChunks/UnpackOne expect).
// entryPoint is stored in the metadata chunk as $ROOT$\-prefixed, per
// ParseMetadata/FormatMetadata.
func BuildArchive(srcRoot, entryPoint string) ([]byte, error) {
	entries, err := walkSourceTree(srcRoot)
	if err != nil {
		return nil, err
	}

	var data bytes.Buffer
	table := make([]Descriptor, len(entries))
	for i, e := range entries {
		d := e.descriptor
		d.Offset = uint32(data.Len())
		table[i] = d
		data.Write(e.body)
	}

	descriptorPayload, err := WriteDescriptorTable(table)
	if err != nil {
		return nil, err
	}
	metadataPayload := FormatMetadata(Metadata{EntryPoint: entryPoint})
	header := WriteHeaderChunks(metadataPayload, descriptorPayload)

	// Descriptor offsets above are relative to the data region; shift
	// them by the header's length now that it is known, and re-encode.
	headerLen := uint32(len(header))
	for i := range table {
		table[i].Offset += headerLen
	}
	descriptorPayload, err = WriteDescriptorTable(table)
	if err != nil {
		return nil, err
	}
	header = WriteHeaderChunks(metadataPayload, descriptorPayload)

	out := make([]byte, 0, len(header)+data.Len())
	out = append(out, header...)
	out = append(out, data.Bytes()...)
	return out, nil
}
