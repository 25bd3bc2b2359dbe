// Package compression defines the BodyCompressor contract implemented by the
// snappy and lz4 sub-packages, used by the frame codec to honor the
// HeaderFlagCompressed frame flag.
package compression

import "io"

// BodyCompressor compresses and decompresses a frame body, reading from
// source and writing the result to dest.
type BodyCompressor interface {
	Algorithm() string
	Compress(source io.Reader, dest io.Writer) error
	Decompress(source io.Reader, dest io.Writer) error
}
