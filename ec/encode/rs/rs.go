package rs

import (
	"bytes"
	"fmt"

	"github.com/ppopth/gf-erasure/ec/encode"
	"github.com/ppopth/gf-erasure/ec/field"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("rs")

var _ encode.Encoder = (*ReedSolomon)(nil)

// Config contains configuration for the Reed-Solomon encoder
type Config struct {
	// Number of data fragments per codeword
	DataFragments int
	// Number of parity fragments per codeword
	ParityFragments int
	// Optional chunk verifier; when set, Split attaches its extra to every
	// chunk and Join rejects chunks it does not accept
	ChunkVerifier ChunkVerifier
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		DataFragments:   10,
		ParityFragments: 2,
	}
}

// ReedSolomon is a systematic Reed-Solomon encoder over GF(2^8) with the
// erasure-code polynomial 0x1D.
//
// The generator matrix is the identity stacked above a Cauchy matrix, so the
// first DataFragments symbols of every codeword are the data itself. The
// field and the generator are built once by New and never modified, so a
// ReedSolomon is safe for concurrent use.
type ReedSolomon struct {
	config    Config
	field     *field.BinaryField
	generator *field.Matrix
}

// New creates an encoder with dataNum data and parityNum parity fragments
func New(dataNum, parityNum int) (*ReedSolomon, error) {
	return NewFromConfig(&Config{
		DataFragments:   dataNum,
		ParityFragments: parityNum,
	})
}

// NewFromConfig creates an encoder from config, or from DefaultConfig when nil
func NewFromConfig(config *Config) (*ReedSolomon, error) {
	if config == nil {
		config = DefaultConfig()
	}

	gf, err := field.NewBinaryField(8, field.IrreducibleErasureCode)
	if err != nil {
		return nil, err
	}

	im, err := field.NewIdentityMatrix(config.DataFragments)
	if err != nil {
		return nil, fmt.Errorf("data fragments: %w", err)
	}
	cm, err := field.NewCauchyMatrix(gf, config.ParityFragments, config.DataFragments)
	if err != nil {
		return nil, fmt.Errorf("parity fragments: %w", err)
	}
	gm, err := im.AppendBottom(cm)
	if err != nil {
		return nil, err
	}

	log.Debugf("built generator for %d data and %d parity fragments", config.DataFragments, config.ParityFragments)

	return &ReedSolomon{
		config:    *config,
		field:     gf,
		generator: gm,
	}, nil
}

// DataFragments returns the number of data fragments per codeword
func (r *ReedSolomon) DataFragments() int {
	return r.config.DataFragments
}

// ParityFragments returns the number of parity fragments per codeword
func (r *ReedSolomon) ParityFragments() int {
	return r.config.ParityFragments
}

// TotalFragments returns the codeword length
func (r *ReedSolomon) TotalFragments() int {
	return r.config.DataFragments + r.config.ParityFragments
}

// Field returns the field the encoder computes in
func (r *ReedSolomon) Field() *field.BinaryField {
	return r.field
}

// Generator returns a copy of the generator matrix
func (r *ReedSolomon) Generator() *field.Matrix {
	return r.generator.Clone()
}

// Encode returns the codeword for one byte per data fragment: the data
// followed by ParityFragments parity bytes.
func (r *ReedSolomon) Encode(data []byte) ([]byte, error) {
	if len(data) != r.generator.Cols() {
		return nil, fmt.Errorf("%w: data has %d bytes, expected %d", field.ErrSizeMismatch, len(data), r.generator.Cols())
	}

	dm := field.NewColumnVector(data)

	// MulOverField takes its right-hand operand transposed
	out, err := r.generator.MulOverField(dm.Transpose(), r.field)
	if err != nil {
		return nil, err
	}
	return out.ToVector(), nil
}

// EncodeShards encodes DataFragments equal-length shards and returns
// TotalFragments shards. Byte k of every output shard is the codeword of
// byte k of the input shards. Data shards are copied, not aliased.
func (r *ReedSolomon) EncodeShards(shards [][]byte) ([][]byte, error) {
	shardSize, err := r.checkShards(shards, r.DataFragments())
	if err != nil {
		return nil, err
	}

	out := make([][]byte, r.TotalFragments())
	for i, shard := range shards {
		out[i] = append([]byte(nil), shard...)
	}

	// P[i][k] = Σ(j=0 to DataFragments-1) G[DataFragments+i][j] * D[j][k]
	for i := 0; i < r.ParityFragments(); i++ {
		row := r.generator.Row(r.DataFragments() + i)
		parity := make([]byte, shardSize)
		for j, coef := range row {
			if coef == 0 {
				continue
			}
			for k, v := range shards[j] {
				parity[k] = r.field.Add(parity[k], r.field.Mul(coef, v))
			}
		}
		out[r.DataFragments()+i] = parity
	}

	return out, nil
}

// VerifyShards reports whether the parity shards match the data shards
func (r *ReedSolomon) VerifyShards(shards [][]byte) (bool, error) {
	if _, err := r.checkShards(shards, r.TotalFragments()); err != nil {
		return false, err
	}

	expected, err := r.EncodeShards(shards[:r.DataFragments()])
	if err != nil {
		return false, err
	}
	for i := r.DataFragments(); i < r.TotalFragments(); i++ {
		if !bytes.Equal(expected[i], shards[i]) {
			log.Debugf("parity shard %d does not match", i)
			return false, nil
		}
	}
	return true, nil
}

// checkShards validates the shard count and returns the common shard size
func (r *ReedSolomon) checkShards(shards [][]byte, count int) (int, error) {
	if len(shards) != count {
		return 0, fmt.Errorf("%w: got %d shards, expected %d", field.ErrSizeMismatch, len(shards), count)
	}
	shardSize := len(shards[0])
	for i, shard := range shards {
		if len(shard) != shardSize {
			return 0, fmt.Errorf("%w: shard %d has %d bytes, shard 0 has %d", field.ErrSizeMismatch, i, len(shard), shardSize)
		}
	}
	return shardSize, nil
}
