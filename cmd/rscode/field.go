package main

import (
	"fmt"
	"strings"

	"github.com/ppopth/gf-erasure/ec/field"

	"github.com/urfave/cli/v2"
)

var fieldFlags = []cli.Flag{
	&cli.IntFlag{
		Name:    "order",
		Aliases: []string{"w"},
		Value:   field.MaxOrder,
		Usage:   "Field order w, the field has 2^w elements",
	},
	&cli.UintFlag{
		Name:    "poly",
		Aliases: []string{"p"},
		Usage:   "Irreducible polynomial without the x^w term (default: the standard one for the order)",
	},
}

// fieldFromFlags builds the field named by --order and --poly
func fieldFromFlags(c *cli.Context) (*field.BinaryField, error) {
	w := c.Int("order")
	poly := field.DefaultIrreducible(w)
	if c.IsSet("poly") {
		if c.Uint("poly") > 0xFF {
			return nil, fmt.Errorf("polynomial 0x%X does not fit in a byte", c.Uint("poly"))
		}
		poly = uint8(c.Uint("poly"))
	}
	if w >= 1 && w <= field.MaxOrder && !field.IsIrreducible(w, poly) {
		log.Warnf("x^%d + 0x%02X is reducible, the result is not a field", w, poly)
	}
	return field.NewBinaryField(w, poly)
}

func hexBytes(values []uint8) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%02X", v)
	}
	return strings.Join(parts, " ")
}

var generatorsCommand = &cli.Command{
	Name:  "generators",
	Usage: "List every generator of the multiplicative group",
	Flags: fieldFlags,
	Action: func(c *cli.Context) error {
		f, err := fieldFromFlags(c)
		if err != nil {
			return err
		}
		gens := f.AllGenerators()
		fmt.Printf("%s: %d generators\n", f, len(gens))
		fmt.Println(hexBytes(gens))
		return nil
	},
}

var tablesCommand = &cli.Command{
	Name:  "tables",
	Usage: "Print the power and log tables",
	Flags: fieldFlags,
	Action: func(c *cli.Context) error {
		f, err := fieldFromFlags(c)
		if err != nil {
			return err
		}
		fmt.Printf("%s generator 0x%02X\n", f, f.Generator())
		fmt.Printf("power: %s\n", hexBytes(f.PowerTable()))
		fmt.Printf("log:   %s\n", hexBytes(f.LogTable()))
		return nil
	},
}

var cauchyCommand = &cli.Command{
	Name:  "cauchy",
	Usage: "Print a Cauchy matrix over the field",
	Flags: append([]cli.Flag{
		&cli.IntFlag{
			Name:  "rows",
			Value: 2,
			Usage: "Number of rows",
		},
		&cli.IntFlag{
			Name:  "cols",
			Value: 10,
			Usage: "Number of columns",
		},
	}, fieldFlags...),
	Action: func(c *cli.Context) error {
		f, err := fieldFromFlags(c)
		if err != nil {
			return err
		}
		m, err := field.NewCauchyMatrix(f, c.Int("rows"), c.Int("cols"))
		if err != nil {
			return err
		}
		fmt.Print(m)
		return nil
	},
}
