package rs

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/ppopth/gf-erasure/ec/encode"
	"github.com/ppopth/gf-erasure/ec/field"
	"github.com/ppopth/gf-erasure/pb"

	"github.com/gogo/protobuf/proto"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrEmptyMessage     = errors.New("message is empty")
	ErrInvalidChunk     = errors.New("invalid chunk")
	ErrMissingDataChunk = errors.New("missing data chunk")
)

var _ encode.Chunk = Chunk{}

// Chunk is one fragment of a message striped across the codeword
type Chunk struct {
	MessageID   string // The ID of the message this chunk belongs to
	Index       int    // The index of this chunk (0 to DataCount+ParityCount-1)
	ChunkData   []byte // The shard bytes
	DataCount   int    // Number of data chunks for this message
	ParityCount int    // Number of parity chunks for this message
	MessageSize int    // Message length before padding
	Extra       []byte // Optional verification data
}

// Data returns the chunk's data bytes (implements encode.Chunk interface)
func (c Chunk) Data() []byte {
	return c.ChunkData
}

// IsParity reports whether the chunk holds parity rather than message bytes
func (c Chunk) IsParity() bool {
	return c.Index >= c.DataCount
}

// validate checks the header fields against each other
func (c Chunk) validate() error {
	if c.DataCount <= 0 || c.ParityCount < 0 || c.DataCount+c.ParityCount > math.MaxInt32 {
		return fmt.Errorf("%w: counts %d data, %d parity", ErrInvalidChunk, c.DataCount, c.ParityCount)
	}
	if c.Index < 0 || c.Index >= c.DataCount+c.ParityCount {
		return fmt.Errorf("%w: index %d out of range", ErrInvalidChunk, c.Index)
	}
	if c.MessageSize < 0 || c.MessageSize > math.MaxInt32 {
		return fmt.Errorf("%w: message size %d out of range", ErrInvalidChunk, c.MessageSize)
	}
	return nil
}

// Marshal serializes the chunk as a pb.RsChunk
func (c Chunk) Marshal() ([]byte, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	msg := &pb.RsChunk{
		MessageId:   c.MessageID,
		Index:       uint32(c.Index),
		DataCount:   uint32(c.DataCount),
		ParityCount: uint32(c.ParityCount),
		MessageSize: uint64(c.MessageSize),
		Data:        c.ChunkData,
		Extra:       c.Extra,
	}
	return proto.Marshal(msg)
}

// UnmarshalChunk parses a chunk produced by Marshal
func UnmarshalChunk(data []byte) (Chunk, error) {
	var msg pb.RsChunk
	if err := proto.Unmarshal(data, &msg); err != nil {
		return Chunk{}, fmt.Errorf("%w: %v", ErrInvalidChunk, err)
	}
	if len(msg.XXX_unrecognized) > 0 {
		return Chunk{}, fmt.Errorf("%w: %d bytes of unknown fields", ErrInvalidChunk, len(msg.XXX_unrecognized))
	}
	if msg.Index > math.MaxInt32 || msg.DataCount > math.MaxInt32 ||
		msg.ParityCount > math.MaxInt32 || msg.MessageSize > math.MaxInt32 {
		return Chunk{}, fmt.Errorf("%w: header value too large", ErrInvalidChunk)
	}

	c := Chunk{
		MessageID:   msg.GetMessageId(),
		Index:       int(msg.GetIndex()),
		ChunkData:   msg.GetData(),
		DataCount:   int(msg.GetDataCount()),
		ParityCount: int(msg.GetParityCount()),
		MessageSize: int(msg.GetMessageSize()),
		Extra:       msg.GetExtra(),
	}
	if len(c.Extra) == 0 {
		c.Extra = nil
	}
	if err := c.validate(); err != nil {
		return Chunk{}, err
	}
	return c, nil
}

// MessageID returns the hex BLAKE2b-256 digest of message
func MessageID(message []byte) string {
	sum := blake2b.Sum256(message)
	return hex.EncodeToString(sum[:])
}

// Split pads message with zeros to a multiple of DataFragments, stripes it
// over the data shards and returns one chunk per fragment. An empty
// messageID is replaced by MessageID(message).
func (r *ReedSolomon) Split(messageID string, message []byte) ([]Chunk, error) {
	if len(message) == 0 {
		return nil, ErrEmptyMessage
	}
	if messageID == "" {
		messageID = MessageID(message)
	}

	d := r.DataFragments()
	shardSize := (len(message) + d - 1) / d
	padded := make([]byte, shardSize*d)
	copy(padded, message)

	shards := make([][]byte, d)
	for i := range shards {
		shards[i] = padded[i*shardSize : (i+1)*shardSize]
	}

	encoded, err := r.EncodeShards(shards)
	if err != nil {
		return nil, err
	}

	chunks := make([]Chunk, len(encoded))
	for i, shard := range encoded {
		chunks[i] = Chunk{
			MessageID:   messageID,
			Index:       i,
			ChunkData:   shard,
			DataCount:   d,
			ParityCount: r.ParityFragments(),
			MessageSize: len(message),
		}

		if r.config.ChunkVerifier != nil {
			extra, err := r.config.ChunkVerifier.GenerateExtra(&chunks[i])
			if err != nil {
				return nil, fmt.Errorf("failed to generate verification data for chunk %d: %w", i, err)
			}
			chunks[i].Extra = extra
		}
	}

	log.Debugf("split message %s (%d bytes) into %d chunks of %d bytes", messageID, len(message), len(chunks), shardSize)
	return chunks, nil
}

// Join concatenates the data chunks of one message and strips the padding.
// Every data chunk must be present; parity chunks are checked for
// consistency and otherwise ignored.
func (r *ReedSolomon) Join(chunks []Chunk) ([]byte, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks", ErrMissingDataChunk)
	}

	ref := chunks[0]
	if ref.DataCount != r.DataFragments() || ref.ParityCount != r.ParityFragments() {
		return nil, fmt.Errorf("%w: chunks are for %d+%d fragments, encoder has %d+%d",
			field.ErrSizeMismatch, ref.DataCount, ref.ParityCount, r.DataFragments(), r.ParityFragments())
	}

	data := make([][]byte, r.DataFragments())
	for i := range chunks {
		c := &chunks[i]
		if err := c.validate(); err != nil {
			return nil, err
		}
		if c.MessageID != ref.MessageID || c.DataCount != ref.DataCount ||
			c.ParityCount != ref.ParityCount || c.MessageSize != ref.MessageSize {
			return nil, fmt.Errorf("%w: chunk %d does not belong to message %s", ErrInvalidChunk, c.Index, ref.MessageID)
		}
		if r.config.ChunkVerifier != nil && !r.config.ChunkVerifier.Verify(c) {
			log.Warnf("chunk %d of message %s failed verification", c.Index, c.MessageID)
			return nil, fmt.Errorf("%w: chunk %d failed verification", ErrInvalidChunk, c.Index)
		}
		if !c.IsParity() && data[c.Index] == nil {
			data[c.Index] = c.ChunkData
		}
	}

	shardSize := len(data[0])
	message := make([]byte, 0, shardSize*len(data))
	for i, shard := range data {
		if shard == nil {
			return nil, fmt.Errorf("%w: chunk %d of message %s", ErrMissingDataChunk, i, ref.MessageID)
		}
		if len(shard) != shardSize {
			return nil, fmt.Errorf("%w: chunk %d has %d bytes, chunk 0 has %d", field.ErrSizeMismatch, i, len(shard), shardSize)
		}
		message = append(message, shard...)
	}

	if ref.MessageSize > len(message) {
		return nil, fmt.Errorf("%w: message size %d exceeds %d joined bytes", ErrInvalidChunk, ref.MessageSize, len(message))
	}
	return message[:ref.MessageSize], nil
}
