package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppopth/gf-erasure/ec/encode/rs"

	"github.com/urfave/cli/v2"
)

var rsFlags = []cli.Flag{
	&cli.IntFlag{
		Name:    "data",
		Aliases: []string{"d"},
		Value:   rs.DefaultConfig().DataFragments,
		Usage:   "Number of data fragments",
	},
	&cli.IntFlag{
		Name:    "parity",
		Aliases: []string{"p"},
		Value:   rs.DefaultConfig().ParityFragments,
		Usage:   "Number of parity fragments",
	},
}

var keyFlag = &cli.StringFlag{
	Name:    "key",
	Aliases: []string{"k"},
	Usage:   "Authenticate chunks with a keyed BLAKE2b digest (at most 64 bytes)",
}

// encoderFromFlags builds the encoder named by --data, --parity and --key
func encoderFromFlags(c *cli.Context) (*rs.ReedSolomon, error) {
	config := &rs.Config{
		DataFragments:   c.Int("data"),
		ParityFragments: c.Int("parity"),
	}
	if c.IsSet("key") {
		v, err := rs.NewDigestVerifier([]byte(c.String("key")))
		if err != nil {
			return nil, fmt.Errorf("invalid key: %w", err)
		}
		config.ChunkVerifier = v
	}
	return rs.NewFromConfig(config)
}

var encodeCommand = &cli.Command{
	Name:      "encode",
	Usage:     "Encode one byte per data fragment into a codeword",
	ArgsUsage: "<hex data>",
	Flags:     rsFlags,
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.ShowSubcommandHelp(c)
		}
		data, err := hex.DecodeString(c.Args().First())
		if err != nil {
			return fmt.Errorf("invalid hex data: %w", err)
		}
		encoder, err := encoderFromFlags(c)
		if err != nil {
			return err
		}
		out, err := encoder.Encode(data)
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(out))
		return nil
	},
}

var splitCommand = &cli.Command{
	Name:      "split",
	Usage:     "Split a file into data and parity chunk files",
	ArgsUsage: "<file>",
	Flags: append([]cli.Flag{
		keyFlag,
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Value:   ".",
			Usage:   "Directory for the chunk files",
		},
	}, rsFlags...),
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.ShowSubcommandHelp(c)
		}
		message, err := os.ReadFile(c.Args().First())
		if err != nil {
			return err
		}
		encoder, err := encoderFromFlags(c)
		if err != nil {
			return err
		}
		chunks, err := encoder.Split("", message)
		if err != nil {
			return err
		}

		base := filepath.Base(c.Args().First())
		for _, chunk := range chunks {
			data, err := chunk.Marshal()
			if err != nil {
				return err
			}
			name := filepath.Join(c.String("out"), fmt.Sprintf("%s.%03d.chunk", base, chunk.Index))
			if err := os.WriteFile(name, data, 0o644); err != nil {
				return err
			}
			log.Infof("wrote %s", name)
		}
		fmt.Printf("%s: %d chunks, message id %s\n", base, len(chunks), chunks[0].MessageID)
		return nil
	},
}

var joinCommand = &cli.Command{
	Name:      "join",
	Usage:     "Rebuild a file from its data chunk files",
	ArgsUsage: "<chunk file>...",
	Flags: append([]cli.Flag{
		keyFlag,
		&cli.StringFlag{
			Name:     "out",
			Aliases:  []string{"o"},
			Required: true,
			Usage:    "Output file",
		},
	}, rsFlags...),
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return cli.ShowSubcommandHelp(c)
		}
		chunks := make([]rs.Chunk, 0, c.NArg())
		for _, name := range c.Args().Slice() {
			data, err := os.ReadFile(name)
			if err != nil {
				return err
			}
			chunk, err := rs.UnmarshalChunk(data)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			chunks = append(chunks, chunk)
		}

		encoder, err := encoderFromFlags(c)
		if err != nil {
			return err
		}
		message, err := encoder.Join(chunks)
		if err != nil {
			return err
		}
		if id := rs.MessageID(message); id != chunks[0].MessageID {
			log.Warnf("joined message has id %s, chunks carry %s", id, chunks[0].MessageID)
		}
		return os.WriteFile(c.String("out"), message, 0o644)
	},
}
