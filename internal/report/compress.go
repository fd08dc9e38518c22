package report

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how attachment data is stored
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// ParseCompression validates a configured compression name
func ParseCompression(name string) (Compression, error) {
	switch Compression(name) {
	case CompressionNone, CompressionZstd, CompressionLZ4:
		return Compression(name), nil
	case "":
		return CompressionNone, nil
	default:
		return "", fmt.Errorf("unknown compression %q", name)
	}
}

// Shared encoder and decoder; both are safe for concurrent EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		panic("report: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		panic("report: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress compresses data with the requested algorithm. The returned tag is
// CompressionNone when compression would not shrink the data.
func Compress(data []byte, compression Compression) ([]byte, Compression, error) {
	var (
		out []byte
		err error
	)

	switch compression {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionZstd:
		out = zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/2))
	case CompressionLZ4:
		out, err = compressLZ4(data)
	default:
		return nil, "", fmt.Errorf("unknown compression %q", compression)
	}
	if err != nil {
		return nil, "", err
	}

	if out == nil || len(out) >= len(data) {
		return data, CompressionNone, nil
	}
	return out, compression, nil
}

// Decompress reverses Compress. size is the uncompressed length.
func Decompress(data []byte, compression Compression, size int) ([]byte, error) {
	switch compression {
	case CompressionNone, "":
		return data, nil
	case CompressionZstd:
		out, err := zstdDecoder.DecodeAll(data, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(out) != size {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, want %d", len(out), size)
		}
		return out, nil
	case CompressionLZ4:
		return decompressLZ4(data, size)
	default:
		return nil, fmt.Errorf("unknown compression %q", compression)
	}
}

// compressLZ4 returns nil when the block is incompressible.
func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if written == 0 {
		return nil, nil
	}
	return destination[:written], nil
}

func decompressLZ4(compressed []byte, size int) ([]byte, error) {
	destination := make([]byte, size)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != size {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, want %d", read, size)
	}
	return destination, nil
}
