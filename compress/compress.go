// Package compress defines the compression collaborators the chunk and
// archive layers dispatch to. Per spec, the core only frames and
// dispatches to these algorithms; it does not own their internals beyond
// what's needed to invoke them correctly. Two concrete codecs are
// provided: LZH-1 (chunk payload compression) and LZO1X (archive file
// payload compression).
package compress

// Decompressor turns compressed bytes of a known decoded length back into
// their original form.
type Decompressor interface {
	Decompress(src []byte, decodedLen int) ([]byte, error)
}

// Compressor is the write-side counterpart of Decompressor.
type Compressor interface {
	Compress(src []byte) ([]byte, error)
}

// Codec bundles both directions for one algorithm.
type Codec interface {
	Decompressor
	Compressor
}
