package dataset

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload compression of a dataset file.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses zstd (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	}
	return 0, fmt.Errorf("dataset: unknown compression %q", s)
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Block layout: [raw size uint32][stored size uint32][data]. A stored size of
// 0 means the data is not compressed.
const blockHeaderSize = 8

// blockSize is the raw payload size of every block but the last.
const blockSize = 1 << 20

// appendBlock compresses raw and appends the framed block to dst. Blocks that
// do not shrink by at least 10% are stored uncompressed.
func appendBlock(dst, raw []byte, c Compression) ([]byte, error) {
	var packed []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, buf, nil)
		if err != nil {
			return nil, err
		}
		packed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		packed = enc.EncodeAll(raw, nil)
		zstdEncoderPool.Put(enc)
	}

	var hdr [blockHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(len(raw)))
	if len(packed) == 0 || float64(len(packed)) > float64(len(raw))*0.9 {
		dst = append(dst, hdr[:]...)
		return append(dst, raw...), nil
	}
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(packed)))
	dst = append(dst, hdr[:]...)
	return append(dst, packed...), nil
}

// readBlock decodes the block at the start of src into dst, which must have
// exactly the block's raw size, and returns the bytes consumed.
func readBlock(src, dst []byte, c Compression) (int, error) {
	if len(src) < blockHeaderSize {
		return 0, fmt.Errorf("%w: truncated block header", ErrCorrupted)
	}
	rawSize := binary.LittleEndian.Uint32(src[0:])
	storedSize := binary.LittleEndian.Uint32(src[4:])
	if int(rawSize) != len(dst) {
		return 0, fmt.Errorf("%w: block holds %d bytes, want %d", ErrCorrupted, rawSize, len(dst))
	}
	body := src[blockHeaderSize:]

	if storedSize == 0 {
		if len(body) < len(dst) {
			return 0, fmt.Errorf("%w: truncated block", ErrCorrupted)
		}
		copy(dst, body)
		return blockHeaderSize + len(dst), nil
	}

	if len(body) < int(storedSize) {
		return 0, fmt.Errorf("%w: truncated compressed block", ErrCorrupted)
	}
	body = body[:storedSize]

	switch c {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(body, dst)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}
		if n != len(dst) {
			return 0, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupted)
		}
	case CompressionZSTD:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(body, dst[:0])
		zstdDecoderPool.Put(dec)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}
		if len(out) != len(dst) {
			return 0, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupted)
		}
		copy(dst, out)
	default:
		return 0, fmt.Errorf("%w: compressed block in %v file", ErrCorrupted, c)
	}
	return blockHeaderSize + int(storedSize), nil
}
