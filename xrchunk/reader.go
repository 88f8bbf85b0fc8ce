package xrchunk

import (
	"encoding/binary"

	"xrf/compress"
	"xrf/xrbyte"
	"xrf/xrerr"
)

// Chunk is one decoded (id, payload) pair. Payload has already been
// decompressed if the header's compression flag was set.
type Chunk struct {
	Header  Header
	Payload []byte
}

// Reader wraps a chunk's payload for typed-record reading. It embeds
// xrbyte.Reader so every primitive codec (ReadU32, ReadW1251String, ...)
// is available directly, and adds the chunk-level AssertRead contract.
type Reader struct {
	*xrbyte.Reader
}

// NewReader wraps a chunk payload for typed-record reading.
func NewReader(payload []byte) *Reader {
	return &Reader{xrbyte.NewReader(payload)}
}

// AssertRead fails unless the cursor has consumed the entire payload.
// Every typed-record reader must call this immediately before returning,
// per spec §4.2.
func (r *Reader) AssertRead(msg string) error {
	if !r.IsEnded() {
		return xrerr.Truncatef("%s: %d bytes unconsumed", msg, r.Remaining())
	}
	return nil
}

// ReadChildren decodes every sibling chunk present in payload, in stream
// order, decompressing any chunk whose id has the compression flag set.
// A nil decompressor defaults to compress.LZH1{}.
func ReadChildren(payload []byte, decompressor compress.Decompressor) ([]Chunk, error) {
	if decompressor == nil {
		decompressor = compress.LZH1{}
	}

	var out []Chunk
	pos := 0
	for pos < len(payload) {
		if pos+headerSize > len(payload) {
			return nil, xrerr.Truncatef("chunk header at offset %d: only %d bytes remain", pos, len(payload)-pos)
		}
		rawID := binary.LittleEndian.Uint32(payload[pos : pos+4])
		size := binary.LittleEndian.Uint32(payload[pos+4 : pos+8])
		pos += headerSize

		if pos+int(size) > len(payload) {
			return nil, xrerr.Truncatef("chunk %d payload: declared size %d exceeds remaining %d", rawID&idMask, size, len(payload)-pos)
		}
		raw := payload[pos : pos+int(size)]
		pos += int(size)

		h := decodeHeader(rawID, size)
		body := raw
		if h.Compressed {
			decoded, err := decompressPayload(raw, decompressor)
			if err != nil {
				return nil, err
			}
			body = decoded
		}
		out = append(out, Chunk{Header: h, Payload: body})
	}
	return out, nil
}

func decompressPayload(raw []byte, d compress.Decompressor) ([]byte, error) {
	if len(raw) < 4 {
		return nil, xrerr.Truncatef("compressed chunk payload: missing decoded-length prefix")
	}
	decodedLen := binary.LittleEndian.Uint32(raw[:4])
	out, err := d.Decompress(raw[4:], int(decodedLen))
	if err != nil {
		return nil, xrerr.Wrap(xrerr.CompressionFailed, "chunk decompress", err)
	}
	return out, nil
}

// FindRequired returns the chunk with the given logical id, failing fatally
// (no silent recovery, per §4.2 Failure semantics) when absent.
func FindRequired(chunks []Chunk, id uint32) (Chunk, error) {
	c, ok := FindOptional(chunks, id)
	if !ok {
		return Chunk{}, xrerr.Truncatef("required chunk id %d not found", id)
	}
	return c, nil
}

// FindOptional returns the chunk with the given logical id, or ok=false
// when absent; absence is not an error at this layer.
func FindOptional(chunks []Chunk, id uint32) (Chunk, bool) {
	for _, c := range chunks {
		if c.Header.LogicalID == id {
			return c, true
		}
	}
	return Chunk{}, false
}

// ReadChildByIndex consumes through the i-th child chunk (0-based, in
// stream order) and returns it by value.
func ReadChildByIndex(payload []byte, i int, decompressor compress.Decompressor) (Chunk, error) {
	chunks, err := ReadChildren(payload, decompressor)
	if err != nil {
		return Chunk{}, err
	}
	if i < 0 || i >= len(chunks) {
		return Chunk{}, xrerr.Truncatef("child index %d out of range (%d children)", i, len(chunks))
	}
	return chunks[i], nil
}
