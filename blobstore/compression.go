package blobstore

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies the compression of a staged blob.
type Codec uint8

const (
	// CodecNone indicates an uncompressed blob.
	CodecNone Codec = iota
	// CodecGzip indicates a gzip stream.
	CodecGzip
	// CodecZstd indicates a zstd frame.
	CodecZstd
	// CodecLZ4 indicates an lz4 frame (not a raw block).
	CodecLZ4
)

// String returns the conventional file suffix for the codec without the dot.
func (c Codec) String() string {
	switch c {
	case CodecGzip:
		return "gz"
	case CodecZstd:
		return "zst"
	case CodecLZ4:
		return "lz4"
	default:
		return "none"
	}
}

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// codecHeaderSize is the number of leading bytes DetectCodec inspects.
const codecHeaderSize = 4

// DetectCodec identifies the codec from the leading bytes of a blob.
func DetectCodec(header []byte) Codec {
	switch {
	case bytes.HasPrefix(header, magicZstd):
		return CodecZstd
	case bytes.HasPrefix(header, magicLZ4):
		return CodecLZ4
	case bytes.HasPrefix(header, magicGzip):
		return CodecGzip
	default:
		return CodecNone
	}
}

// TrimCodecSuffix strips a compression suffix from a blob name,
// e.g. "obs_seq.final.nc.zst" becomes "obs_seq.final.nc".
func TrimCodecSuffix(name string) string {
	for _, c := range []Codec{CodecGzip, CodecZstd, CodecLZ4} {
		if trimmed, ok := strings.CutSuffix(name, "."+c.String()); ok {
			return trimmed
		}
	}
	return name
}

// NewDecompressor wraps r with a streaming decoder for codec.
func NewDecompressor(codec Codec, r io.Reader) (io.ReadCloser, error) {
	switch codec {
	case CodecNone:
		return io.NopCloser(r), nil
	case CodecGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case CodecZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), nil
	case CodecLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("blobstore: unknown codec %d", codec)
	}
}

func stagedName(name string) string {
	return path.Base(TrimCodecSuffix(name))
}
