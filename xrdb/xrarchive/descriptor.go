// Package xrarchive implements the binary codec and unpack/pack
// orchestration for .db/.xdb archive files: a metadata chunk naming the
// logical root, and a file-descriptor table locating each entry's
// bytes, per spec §3 "Archive" domain object and §4.2 "Archive reader"
// / "Archive unpacker".
package xrarchive

import (
	"golang.org/x/text/encoding/charmap"

	"xrf/xrbyte"
	"xrf/xrerr"
)

// MetadataChunkIDs are the two logical ids the metadata ("header")
// chunk has been observed under across engine builds.
var MetadataChunkIDs = []uint32{666, 1337}

// DescriptorChunkIDs are the two logical ids the file-descriptor table
// chunk has been observed under.
var DescriptorChunkIDs = []uint32{0x1, 0x86}

// descriptorFixedSize is the byte size of a Descriptor's fields other
// than its name: size_real, size_compressed, crc32, offset (4 each).
const descriptorFixedSize = 16

// Descriptor locates one archived file's bytes within the archive.
type Descriptor struct {
	Name           string
	SizeReal       uint32
	SizeCompressed uint32
	CRC32          uint32
	Offset         uint32
}

// ReadDescriptor decodes one descriptor record: a u16 header_size
// (the byte count of everything that follows, including name_bytes
// but excluding header_size itself) followed by the fixed fields, a
// name of length header_size-16, and the trailing offset.
func ReadDescriptor(r *xrbyte.Reader) (Descriptor, error) {
	var d Descriptor
	headerSize, err := r.ReadU16()
	if err != nil {
		return d, err
	}
	if int(headerSize) < descriptorFixedSize {
		return d, xrerr.Truncatef("archive descriptor header_size %d smaller than fixed fields", headerSize)
	}
	if d.SizeReal, err = r.ReadU32(); err != nil {
		return d, err
	}
	if d.SizeCompressed, err = r.ReadU32(); err != nil {
		return d, err
	}
	if d.CRC32, err = r.ReadU32(); err != nil {
		return d, err
	}
	nameLen := int(headerSize) - descriptorFixedSize
	nameBytes, err := r.ReadBytes(nameLen)
	if err != nil {
		return d, err
	}
	name, err := charmap.Windows1251.NewDecoder().Bytes(nameBytes)
	if err != nil {
		return d, xrerr.Wrap(xrerr.EncodingFailed, "archive descriptor name", err)
	}
	d.Name = string(name)
	if d.Offset, err = r.ReadU32(); err != nil {
		return d, err
	}
	return d, nil
}

// Write encodes one descriptor record.
func (d Descriptor) Write(w *xrbyte.Writer) error {
	nameBytes, err := charmap.Windows1251.NewEncoder().Bytes([]byte(d.Name))
	if err != nil {
		return xrerr.Wrap(xrerr.EncodingFailed, "archive descriptor name", err)
	}
	headerSize := descriptorFixedSize + len(nameBytes)
	if headerSize > 0xFFFF {
		return xrerr.New(xrerr.FormatMagic, "archive descriptor name too long")
	}
	w.WriteU16(uint16(headerSize))
	w.WriteU32(d.SizeReal)
	w.WriteU32(d.SizeCompressed)
	w.WriteU32(d.CRC32)
	w.WriteBytes(nameBytes)
	w.WriteU32(d.Offset)
	return nil
}

// ReadDescriptorTable decodes every descriptor in payload in sequence
// until the buffer is exhausted.
func ReadDescriptorTable(payload []byte) ([]Descriptor, error) {
	r := xrbyte.NewReader(payload)
	var out []Descriptor
	for !r.IsEnded() {
		d, err := ReadDescriptor(r)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// WriteDescriptorTable encodes every descriptor in sequence.
func WriteDescriptorTable(descriptors []Descriptor) ([]byte, error) {
	w := xrbyte.NewWriter()
	for _, d := range descriptors {
		if err := d.Write(w); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}
