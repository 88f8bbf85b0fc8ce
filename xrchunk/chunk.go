// Package xrchunk implements the recursive TLV-like container format that
// wraps every X-Ray binary asset: a chunk is (id, size, payload), the top
// bit of id flags LZH-1 compression, and a chunk's payload may itself be a
// sequence of child chunks. Modeled after the header/index-table framing
// in the teacher's convert/kfx/container package.
package xrchunk

const (
	// compressedFlag is the top bit of a chunk's raw id.
	compressedFlag uint32 = 0x8000_0000
	// idMask extracts the logical id from a raw id.
	idMask uint32 = 0x7FFF_FFFF

	headerSize = 8 // two little-endian u32s: raw_id, size
)

// Header is the decoded form of a chunk's 8-byte header.
type Header struct {
	RawID      uint32
	Size       uint32
	LogicalID  uint32
	Compressed bool
}

func decodeHeader(rawID, size uint32) Header {
	return Header{
		RawID:      rawID,
		Size:       size,
		LogicalID:  rawID & idMask,
		Compressed: rawID&compressedFlag != 0,
	}
}
