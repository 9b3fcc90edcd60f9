// Package dataset reads and writes MDFS dataset files.
//
// A file holds either a continuous dataset (one float32 per variable and
// object) or a discretized matrix (one int32 code per variable, trial and
// object), plus the decision vector. The payload is split into blocks of up
// to 1 MiB, each optionally compressed with LZ4 or zstd.
//
// Layout, all integers little-endian:
//
//	header  32 bytes (see Header)
//	payload blocks: [raw size uint32][stored size uint32][data]
//
// The raw payload is the decision vector (int32 per object) followed by the
// values in variable-major order.
package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"math/bits"
	"slices"

	"github.com/ajroetker/go-mdfs/mdfs"
)

const (
	// FormatMagic identifies dataset files (ASCII: "MDF1").
	FormatMagic uint32 = 0x3146444D

	// FormatVersion is the current format version.
	FormatVersion uint16 = 1

	// HeaderSize is the size of the file header in bytes.
	HeaderSize = 32
)

var (
	// ErrInvalidMagic is returned when a file does not start with FormatMagic.
	ErrInvalidMagic = errors.New("dataset: invalid magic number")

	// ErrInvalidVersion is returned for a newer, unsupported format version.
	ErrInvalidVersion = errors.New("dataset: unsupported format version")

	// ErrCorrupted is returned when the payload is truncated or fails its
	// checksum.
	ErrCorrupted = errors.New("dataset: file corrupted")

	// ErrWrongKind is returned when a file holds the other kind of data.
	ErrWrongKind = errors.New("dataset: wrong kind")
)

// Kind tells what a file holds.
type Kind uint8

const (
	KindContinuous  Kind = 1
	KindDiscretized Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindContinuous:
		return "continuous"
	case KindDiscretized:
		return "discretized"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Header is the fixed-size file header.
type Header struct {
	Magic       uint32
	Version     uint16
	Kind        Kind
	Compression Compression
	Variables   uint32
	Trials      uint32 // 0 for continuous files
	Objects     uint32
	Checksum    uint32 // CRC32 (IEEE) of the raw payload
	Reserved    [8]byte
}

// Validate checks the magic, version and kind.
func (h *Header) Validate() error {
	if h.Magic != FormatMagic {
		return ErrInvalidMagic
	}
	if h.Version > FormatVersion {
		return ErrInvalidVersion
	}
	if h.Kind != KindContinuous && h.Kind != KindDiscretized {
		return fmt.Errorf("%w: unknown kind %d", ErrCorrupted, h.Kind)
	}
	if h.Compression > CompressionZSTD {
		return fmt.Errorf("%w: unknown compression %d", ErrCorrupted, h.Compression)
	}
	if h.Variables == 0 || h.Objects == 0 || (h.Kind == KindDiscretized && h.Trials == 0) {
		return fmt.Errorf("%w: empty shape %dx%dx%d", ErrCorrupted, h.Variables, h.Trials, h.Objects)
	}
	return nil
}

// PayloadSize returns the raw payload size in bytes. It fails with
// ErrCorrupted when the shape does not fit in an int.
func (h *Header) PayloadSize() (int, error) {
	values := uint64(h.Variables)
	if h.Kind == KindDiscretized {
		values *= uint64(h.Trials)
	}
	hi, values := bits.Mul64(values, uint64(h.Objects))
	total, carry := bits.Add64(values, uint64(h.Objects), 0)
	if hi != 0 || carry != 0 || total > math.MaxInt/4 {
		return 0, fmt.Errorf("%w: shape %dx%dx%d overflows", ErrCorrupted, h.Variables, h.Trials, h.Objects)
	}
	return 4 * int(total), nil
}

// ReadHeader reads and validates the header at the start of r.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return h, fmt.Errorf("%w: truncated header", ErrCorrupted)
		}
		return h, err
	}
	return h, h.Validate()
}

// File is a decoded dataset file. Exactly one of Dataset and Matrix is set,
// according to Header.Kind.
type File struct {
	Header  Header
	Dataset *mdfs.Dataset
	Matrix  *mdfs.Matrix
}

// WriteDataset writes ds as a continuous file.
func WriteDataset(w io.Writer, ds *mdfs.Dataset, c Compression) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	raw := make([]byte, 0, 4*(len(ds.Decision)+len(ds.Values)))
	raw = appendInt32s(raw, ds.Decision)
	for _, v := range ds.Values {
		raw = binary.LittleEndian.AppendUint32(raw, math.Float32bits(v))
	}
	h := Header{
		Kind:      KindContinuous,
		Variables: uint32(ds.Variables),
		Objects:   uint32(ds.Objects),
	}
	return write(w, h, raw, c)
}

// WriteMatrix writes m as a discretized file.
func WriteMatrix(w io.Writer, m *mdfs.Matrix, c Compression) error {
	if len(m.Data) != m.Variables*m.Trials*m.Objects || len(m.Decision) != m.Objects {
		return fmt.Errorf("%w: matrix buffers do not match %dx%dx%d", mdfs.ErrShapeMismatch, m.Variables, m.Trials, m.Objects)
	}
	raw := make([]byte, 0, 4*(len(m.Decision)+len(m.Data)))
	raw = appendInt32s(raw, m.Decision)
	raw = appendInt32s(raw, m.Data)
	h := Header{
		Kind:      KindDiscretized,
		Variables: uint32(m.Variables),
		Trials:    uint32(m.Trials),
		Objects:   uint32(m.Objects),
	}
	return write(w, h, raw, c)
}

func write(w io.Writer, h Header, raw []byte, c Compression) error {
	h.Magic = FormatMagic
	h.Version = FormatVersion
	h.Compression = c
	h.Checksum = crc32.ChecksumIEEE(raw)
	if err := h.Validate(); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}

	var out []byte
	for off := 0; off < len(raw); off += blockSize {
		var err error
		out, err = appendBlock(out[:0], raw[off:min(off+blockSize, len(raw))], c)
		if err != nil {
			return err
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes a whole file from r.
func Read(r io.Reader) (*File, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	size, err := h.PayloadSize()
	if err != nil {
		return nil, err
	}

	// The buffer grows one block at a time so a forged header cannot make
	// Read allocate more than the body can fill.
	var raw []byte
	for len(raw) < size {
		off := len(raw)
		n := min(blockSize, size-off)
		raw = slices.Grow(raw, n)[:off+n]
		consumed, err := readBlock(body, raw[off:], h.Compression)
		if err != nil {
			return nil, err
		}
		body = body[consumed:]
	}
	if len(body) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupted, len(body))
	}
	if crc32.ChecksumIEEE(raw) != h.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupted)
	}

	f := &File{Header: h}
	objects := int(h.Objects)
	decision := readInt32s(raw[:4*objects])
	values := raw[4*objects:]

	switch h.Kind {
	case KindContinuous:
		ds := &mdfs.Dataset{
			Variables: int(h.Variables),
			Objects:   objects,
			Values:    make([]float32, len(values)/4),
			Decision:  decision,
		}
		for i := range ds.Values {
			ds.Values[i] = math.Float32frombits(binary.LittleEndian.Uint32(values[4*i:]))
		}
		f.Dataset = ds
	case KindDiscretized:
		f.Matrix = &mdfs.Matrix{
			Variables: int(h.Variables),
			Trials:    int(h.Trials),
			Objects:   objects,
			Data:      readInt32s(values),
			Decision:  decision,
		}
	}
	return f, nil
}

// ReadDataset decodes a continuous file.
func ReadDataset(r io.Reader) (*mdfs.Dataset, error) {
	f, err := Read(r)
	if err != nil {
		return nil, err
	}
	if f.Dataset == nil {
		return nil, fmt.Errorf("%w: %v file, want %v", ErrWrongKind, f.Header.Kind, KindContinuous)
	}
	return f.Dataset, nil
}

func appendInt32s(dst []byte, src []int32) []byte {
	for _, v := range src {
		dst = binary.LittleEndian.AppendUint32(dst, uint32(v))
	}
	return dst
}

func readInt32s(src []byte) []int32 {
	out := make([]int32, len(src)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(src[4*i:]))
	}
	return out
}
