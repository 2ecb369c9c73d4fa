package encode

// Chunk represents one encoded fragment of a message
type Chunk interface {
	Data() []byte
	Marshal() ([]byte, error)
}

// Encoder defines the interface for erasure coding algorithms
type Encoder interface {
	// Encode turns one data symbol per data fragment into a full codeword
	Encode(data []byte) ([]byte, error)
	// EncodeShards encodes equal-length data shards position by position
	EncodeShards(shards [][]byte) ([][]byte, error)

	// DataFragments returns the number of data fragments per codeword
	DataFragments() int
	// ParityFragments returns the number of parity fragments per codeword
	ParityFragments() int
}
