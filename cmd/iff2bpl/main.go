package main

import (
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

	app.Name = "iff2bpl"
	app.Usage = "convert ILBM (IFF) images to raw bitplane data"
	app.ArgsUsage = "FILE"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "o",
			Usage: "base name for output files (default: input name without extension)",
		},
		&cli.BoolFlag{
			Name:  "c",
			Usage: "also create chunky output (.chk file)",
		},
		&cli.BoolFlag{
			Name:  "cd",
			Usage: "also create chunky output with doubled bits (.chk file)",
		},
		&cli.BoolFlag{
			Name:  "ni",
			Usage: "also create non-interleaved planar output (.bpf file)",
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

		logger := log.New(os.Stderr, "", 0)
		if c.Bool("quiet") {
			logger.SetOutput(ioutil.Discard)
		}

		conv := iffbpl.New(logger)

		err := conv.Extract(c.Args().First(), iffbpl.ExtractOptions{
			OutputBase:     c.String("o"),
			Chunky:         c.Bool("c"),
			ChunkyDoubled:  c.Bool("cd"),
			NonInterleaved: c.Bool("ni"),
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
