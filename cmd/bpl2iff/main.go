package main

import (
	"errors"
	"io/ioutil"
	"log"
	"os"

	"github.com/pawelmat/iffbpl"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "bpl2iff"
	app.Usage = "convert raw bitplane data to an ILBM (IFF) file"
	app.ArgsUsage = "FILE"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:  "x",
			Usage: "horizontal size of the picture in pixels (required)",
		},
		&cli.IntFlag{
			Name:  "y",
			Usage: "vertical size of the picture in pixels (required)",
		},
		&cli.IntFlag{
			Name:  "n",
			Usage: "number of bitplanes, 1..8 (required)",
		},
		&cli.BoolFlag{
			Name:  "i",
			Usage: "input rows are interleaved (default: non-interleaved)",
		},
		&cli.IntFlag{
			Name:  "t",
			Usage: "input is stored in byte-columns of the given width; transpose before conversion",
		},
		&cli.BoolFlag{
			Name:  "r",
			Usage: "compress the BODY chunk using PackBits (RLE)",
		},
		&cli.StringFlag{
			Name:  "o",
			Usage: "output file name, \".iff\" appended if missing (required)",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only report warnings and errors",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}
		if c.Int("x") < 1 || c.Int("y") < 1 || c.Int("n") < 1 || c.String("o") == "" {
			return cli.NewExitError(errors.New("some mandatory parameters missing"), 1)
		}

		logger := log.New(os.Stderr, "", 0)
		if c.Bool("quiet") {
			logger.SetOutput(ioutil.Discard)
		}

		conv := iffbpl.New(logger)

		err := conv.Build(c.Args().First(), c.String("o"), iffbpl.BuildOptions{
			Width:       c.Int("x"),
			Height:      c.Int("y"),
			NumPlanes:   c.Int("n"),
			Interleaved: c.Bool("i"),
			ColumnWidth: c.Int("t"),
			PackBody:    c.Bool("r"),
		})
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
