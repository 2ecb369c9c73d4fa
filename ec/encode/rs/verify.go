package rs

import (
	"crypto/subtle"
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// ChunkVerifier provides verification functionality for Reed-Solomon chunks
type ChunkVerifier interface {
	// Verify checks if the chunk is valid
	Verify(chunk *Chunk) bool

	// GenerateExtra generates verification data for a chunk
	GenerateExtra(chunk *Chunk) ([]byte, error)
}

// DigestVerifier authenticates chunks with a BLAKE2b-256 digest over the
// chunk header and data, keyed when a key is given.
type DigestVerifier struct {
	key []byte
}

// NewDigestVerifier creates a verifier. key may be nil for a plain digest
// and must be at most 64 bytes.
func NewDigestVerifier(key []byte) (*DigestVerifier, error) {
	if _, err := blake2b.New256(key); err != nil {
		return nil, err
	}
	return &DigestVerifier{key: append([]byte(nil), key...)}, nil
}

// GenerateExtra returns the digest of chunk
func (v *DigestVerifier) GenerateExtra(chunk *Chunk) ([]byte, error) {
	h, err := blake2b.New256(v.key)
	if err != nil {
		return nil, err
	}
	writeChunk(h, chunk)
	return h.Sum(nil), nil
}

// Verify reports whether chunk.Extra is the digest of chunk
func (v *DigestVerifier) Verify(chunk *Chunk) bool {
	if len(chunk.Extra) != blake2b.Size256 {
		return false
	}
	expected, err := v.GenerateExtra(chunk)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(expected, chunk.Extra) == 1
}

// writeChunk feeds everything but Extra into h
func writeChunk(h hash.Hash, chunk *Chunk) {
	var header [16]byte
	binary.BigEndian.PutUint32(header[0:], uint32(chunk.Index))
	binary.BigEndian.PutUint32(header[4:], uint32(chunk.DataCount))
	binary.BigEndian.PutUint32(header[8:], uint32(chunk.ParityCount))
	binary.BigEndian.PutUint32(header[12:], uint32(chunk.MessageSize))

	var idLen [4]byte
	binary.BigEndian.PutUint32(idLen[:], uint32(len(chunk.MessageID)))
	h.Write(idLen[:])
	h.Write([]byte(chunk.MessageID))
	h.Write(header[:])
	h.Write(chunk.ChunkData)
}
