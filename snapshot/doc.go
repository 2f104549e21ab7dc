// Package snapshot implements the framed snapshot container used to persist
// a meshgo.System.
//
// # Frame
//
//	[4]  magic "MSHS"
//	[2]  version, little endian
//	[1]  compression (0 none, 1 lz4, 2 zstd)
//	[1]  codec name length N
//	[N]  codec name
//	[8]  uncompressed payload length
//	[8]  stored payload length
//	[4]  CRC32C of the stored payload
//	[..] payload
//
// The payload is the codec encoding of the snapshot document, optionally
// compressed. When compression does not pay off the payload is stored raw
// and the frame records CompressionNone.
//
// Decoding validates every header field and the checksum. Structural
// damage yields ErrCorrupt; a frame written by a newer version or with an
// unknown codec or compression yields ErrIncompatibleFormat.
package snapshot
