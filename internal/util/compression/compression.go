// Package compression wraps the codecs used for stored collection values.
package compression

import "fmt"

type Compressor interface {
	// Name is the codec name accepted by ByName.
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// NoneCompressor stores values as-is.
type NoneCompressor struct{}

func (NoneCompressor) Name() string                           { return "none" }
func (NoneCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoneCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }

// ByName returns the compressor registered under name: zstd, gzip or none.
func ByName(name string) (Compressor, error) {
	switch name {
	case "", "zstd":
		return ZstdCompressor{}, nil
	case "gzip":
		return GzipCompressor{}, nil
	case "none":
		return NoneCompressor{}, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
}
