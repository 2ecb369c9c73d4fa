package main

import (
	"fmt"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
)

var log = logging.Logger("rscode")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "rscode",
		Usage: "GF(2^w) arithmetic and systematic Reed-Solomon encoding",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "warn",
				Usage:   "Log level for all subsystems (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			lvl, err := logging.LevelFromString(c.String("log-level"))
			if err != nil {
				return err
			}
			logging.SetAllLoggers(lvl)
			return nil
		},
		Commands: []*cli.Command{
			encodeCommand,
			generatorsCommand,
			tablesCommand,
			cauchyCommand,
			splitCommand,
			joinCommand,
		},
	}
}
