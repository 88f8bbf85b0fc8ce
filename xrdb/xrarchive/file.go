package xrarchive

import (
	"encoding/binary"

	"xrf/compress"
	"xrf/xrchunk"
	"xrf/xrerr"
)

// An archive file opens with two sibling header chunks - metadata then
// descriptor table - followed immediately by the unframed data region
// the descriptor table's Offset fields address directly. xrchunk.ReadChildren
// cannot be reused to read this prefix: it requires every byte of the
// buffer it is given to be chunk-framed, but the data region that
// follows the header chunks is not. ReadHeaderChunks implements its own
// minimal two-chunk scan using the same (id, size) framing instead.
const (
	chunkHeaderSize     = 8
	chunkCompressedFlag uint32 = 0x8000_0000
	chunkLogicalIDMask  uint32 = 0x7FFF_FFFF
)

func idIn(id uint32, ids []uint32) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// ReadHeaderChunks scans data from offset 0 looking for the metadata and
// descriptor-table chunks, stopping as soon as both have been found. It
// returns each chunk's decoded payload plus headerLen, the byte offset
// at which the scan stopped - the point where the archive's raw data
// region begins and against which every Descriptor.Offset is absolute.
func ReadHeaderChunks(data []byte) (metadataPayload, descriptorPayload []byte, headerLen int, err error) {
	pos := 0
	for pos < len(data) {
		if metadataPayload != nil && descriptorPayload != nil {
			break
		}
		if pos+chunkHeaderSize > len(data) {
			return nil, nil, 0, xrerr.Truncatef("archive header chunk at offset %d: only %d bytes remain", pos, len(data)-pos)
		}
		rawID := binary.LittleEndian.Uint32(data[pos : pos+4])
		size := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
		pos += chunkHeaderSize

		if pos+int(size) > len(data) {
			return nil, nil, 0, xrerr.Truncatef("archive header chunk %d: declared size %d exceeds remaining %d", rawID&chunkLogicalIDMask, size, len(data)-pos)
		}
		raw := data[pos : pos+int(size)]
		pos += int(size)

		logicalID := rawID & chunkLogicalIDMask
		body := raw
		if rawID&chunkCompressedFlag != 0 {
			if len(raw) < 4 {
				return nil, nil, 0, xrerr.Truncatef("archive header chunk %d: missing decoded-length prefix", logicalID)
			}
			decodedLen := binary.LittleEndian.Uint32(raw[:4])
			var lzh compress.LZH1
			decoded, derr := lzh.Decompress(raw[4:], int(decodedLen))
			if derr != nil {
				return nil, nil, 0, xrerr.Wrap(xrerr.CompressionFailed, "archive header chunk decompress", derr)
			}
			body = decoded
		}

		switch {
		case idIn(logicalID, MetadataChunkIDs):
			metadataPayload = body
		case idIn(logicalID, DescriptorChunkIDs):
			descriptorPayload = body
		}
	}
	if metadataPayload == nil {
		return nil, nil, 0, xrerr.Truncatef("archive: metadata chunk not found")
	}
	if descriptorPayload == nil {
		return nil, nil, 0, xrerr.Truncatef("archive: descriptor chunk not found")
	}
	return metadataPayload, descriptorPayload, pos, nil
}

// WriteHeaderChunks frames the metadata and descriptor-table chunks in
// that order, uncompressed, using the first id each was observed under.
// The returned bytes are the archive's header region; a caller appends
// the data region - built against len(result) as the base offset - right
// after it.
func WriteHeaderChunks(metadataPayload, descriptorPayload []byte) []byte {
	w := xrchunk.NewWriter()
	w.WriteChunk(MetadataChunkIDs[0], metadataPayload)
	w.WriteChunk(DescriptorChunkIDs[0], descriptorPayload)
	return w.Bytes()
}
