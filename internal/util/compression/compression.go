// Package compression provides the content codecs used for post bodies at rest.
package compression

// Compressor is a symmetric byte codec.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}
