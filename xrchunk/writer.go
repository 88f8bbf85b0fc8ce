package xrchunk

import (
	"bytes"
	"encoding/binary"

	"xrf/compress"
	"xrf/xrerr"
)

// Writer buffers a chunk's payload (or a sequence of sibling chunks) for
// later framing. Nested chunks are built by writing into a fresh inner
// Writer and flushing it into the parent, mirroring the teacher's
// container.Pack entity-then-index assembly.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the buffered payload.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len reports the number of buffered bytes.
func (w *Writer) Len() int { return w.buf.Len() }

// WriteBytes appends raw bytes, e.g. a typed record already serialized by
// an xrbyte.Writer.
func (w *Writer) WriteBytes(b []byte) { w.buf.Write(b) }

// WriteChunk appends a fully-framed, uncompressed chunk.
func (w *Writer) WriteChunk(id uint32, payload []byte) {
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], id&idMask)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(payload)))
	w.buf.Write(hdr[:])
	w.buf.Write(payload)
}

// WriteCompressedChunk compresses payload and appends it with the
// compression flag set on id, preceded by the u32 decoded length.
func (w *Writer) WriteCompressedChunk(id uint32, payload []byte, c compress.Compressor) error {
	compressed, err := c.Compress(payload)
	if err != nil {
		return xrerr.Wrap(xrerr.CompressionFailed, "chunk compress", err)
	}

	var body bytes.Buffer
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	body.Write(lenBuf[:])
	body.Write(compressed)

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], (id&idMask)|compressedFlag)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(body.Len()))
	w.buf.Write(hdr[:])
	w.buf.Write(body.Bytes())
	return nil
}

// FlushChunkInto writes w's buffered bytes into dst as a single chunk
// framed under id. This is how a nested chunk writer is composed into its
// parent.
func (w *Writer) FlushChunkInto(dst *Writer, id uint32) {
	dst.WriteChunk(id, w.Bytes())
}
