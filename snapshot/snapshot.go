package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/meshgo/codec"
	"github.com/hupe1980/meshgo/internal/hash"
)

const (
	// Magic identifies snapshot frames.
	Magic = "MSHS"
	// Version is the current frame version.
	Version uint16 = 1

	// MaxPayload bounds the payload size accepted by Decode.
	MaxPayload = 1 << 32

	fixedHeaderSize = 4 + 2 + 1 + 1
	sizesSize       = 8 + 8 + 4
)

var (
	// ErrCorrupt is returned for truncated frames, bad magic, length
	// mismatches or checksum failures.
	ErrCorrupt = errors.New("snapshot: corrupt frame")
	// ErrIncompatibleFormat is returned for unsupported versions, codecs or
	// compression algorithms.
	ErrIncompatibleFormat = errors.New("snapshot: incompatible format")
)

// Header describes a decoded frame.
type Header struct {
	Version     uint16
	Compression Compression
	Codec       string
	RawSize     uint64
	StoredSize  uint64
	Checksum    uint32
}

// Size returns the encoded size of the frame including the payload.
func (h Header) Size() int64 {
	return int64(fixedHeaderSize+len(h.Codec)+sizesSize) + int64(h.StoredSize) //nolint:gosec // bounded by MaxPayload
}

type options struct {
	codec       codec.Codec
	compression Compression
}

// Option configures Encode.
type Option func(*options)

// WithCodec selects the payload codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression selects the payload compression. Defaults to zstd.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// Encode writes v as a snapshot frame to w.
func Encode(w io.Writer, v any, opts ...Option) (Header, error) {
	o := options{codec: codec.Default, compression: CompressionZSTD}
	for _, opt := range opts {
		opt(&o)
	}
	name := o.codec.Name()
	if len(name) == 0 || len(name) > 255 {
		return Header{}, fmt.Errorf("%w: codec name %q", ErrIncompatibleFormat, name)
	}

	raw, err := o.codec.Marshal(v)
	if err != nil {
		return Header{}, fmt.Errorf("snapshot: encode payload: %w", err)
	}
	stored, used, err := compress(raw, o.compression)
	if err != nil {
		return Header{}, fmt.Errorf("snapshot: compress payload: %w", err)
	}

	h := Header{
		Version:     Version,
		Compression: used,
		Codec:       name,
		RawSize:     uint64(len(raw)),
		StoredSize:  uint64(len(stored)),
		Checksum:    hash.CRC32C(stored),
	}

	buf := make([]byte, 0, fixedHeaderSize+len(name)+sizesSize)
	buf = append(buf, Magic...)
	buf = binary.LittleEndian.AppendUint16(buf, h.Version)
	buf = append(buf, byte(h.Compression), byte(len(name)))
	buf = append(buf, name...)
	buf = binary.LittleEndian.AppendUint64(buf, h.RawSize)
	buf = binary.LittleEndian.AppendUint64(buf, h.StoredSize)
	buf = binary.LittleEndian.AppendUint32(buf, h.Checksum)

	if _, err := w.Write(buf); err != nil {
		return Header{}, err
	}
	if _, err := w.Write(stored); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Decode reads one snapshot frame from r into v.
func Decode(r io.Reader, v any) (Header, error) {
	var fixed [fixedHeaderSize]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return Header{}, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if string(fixed[:4]) != Magic {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrCorrupt, fixed[:4])
	}
	h := Header{
		Version:     binary.LittleEndian.Uint16(fixed[4:6]),
		Compression: Compression(fixed[6]),
	}
	if h.Version == 0 || h.Version > Version {
		return Header{}, fmt.Errorf("%w: version %d", ErrIncompatibleFormat, h.Version)
	}

	rest := make([]byte, int(fixed[7])+sizesSize)
	if _, err := io.ReadFull(r, rest); err != nil {
		return Header{}, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	n := int(fixed[7])
	h.Codec = string(rest[:n])
	h.RawSize = binary.LittleEndian.Uint64(rest[n:])
	h.StoredSize = binary.LittleEndian.Uint64(rest[n+8:])
	h.Checksum = binary.LittleEndian.Uint32(rest[n+16:])

	c, ok := codec.ByName(h.Codec)
	if !ok {
		return Header{}, fmt.Errorf("%w: codec %q", ErrIncompatibleFormat, h.Codec)
	}
	if h.Compression > CompressionZSTD {
		return Header{}, fmt.Errorf("%w: %s", ErrIncompatibleFormat, h.Compression)
	}
	if h.RawSize > MaxPayload || h.StoredSize > MaxPayload {
		return Header{}, fmt.Errorf("%w: payload of %d bytes exceeds limit", ErrCorrupt, max(h.RawSize, h.StoredSize))
	}
	if h.Compression == CompressionNone && h.RawSize != h.StoredSize {
		return Header{}, fmt.Errorf("%w: raw size %d != stored size %d", ErrCorrupt, h.RawSize, h.StoredSize)
	}

	stored := make([]byte, h.StoredSize)
	if _, err := io.ReadFull(r, stored); err != nil {
		return Header{}, fmt.Errorf("%w: payload: %w", ErrCorrupt, err)
	}
	if sum := hash.CRC32C(stored); sum != h.Checksum {
		return Header{}, fmt.Errorf("%w: checksum %08x, want %08x", ErrCorrupt, sum, h.Checksum)
	}

	raw, err := decompress(stored, h.Compression, h.RawSize)
	if err != nil {
		return Header{}, err
	}
	if uint64(len(raw)) != h.RawSize {
		return Header{}, fmt.Errorf("%w: decompressed %d bytes, want %d", ErrCorrupt, len(raw), h.RawSize)
	}
	if err := c.Unmarshal(raw, v); err != nil {
		return Header{}, fmt.Errorf("%w: decode payload: %w", ErrCorrupt, err)
	}
	return h, nil
}

// Marshal encodes v into a new frame.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Encode(&buf, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a frame produced by Marshal. Trailing bytes are an
// error.
func Unmarshal(data []byte, v any) (Header, error) {
	r := bytes.NewReader(data)
	h, err := Decode(r, v)
	if err != nil {
		return Header{}, err
	}
	if r.Len() != 0 {
		return Header{}, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, r.Len())
	}
	return h, nil
}
