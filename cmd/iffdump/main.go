package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/pawelmat/iffbpl/ilbm"
	"github.com/pawelmat/iffbpl/pal"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func printHex(data []byte) {
	for i, b := range data {
		fmt.Printf("%02X ", b)
		if (i+1)%16 == 0 {
			fmt.Println()
		}
	}
	if len(data)%16 != 0 {
		fmt.Println()
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "iffdump"
	app.Usage = "inspect the chunk structure of an ILBM (IFF) file"
	app.ArgsUsage = "FILE"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "body",
			Usage: "hex dump the BODY payload",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		data, err := ioutil.ReadFile(c.Args().First())
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if len(data) < 12 {
			return cli.NewExitError(errors.New("file too small"), 1)
		}

		fmt.Print("bytes 0..11: ")
		printHex(data[:12])
		fmt.Printf("FORM id: %s\n", data[0:4])
		fmt.Printf("FORM size (BE): %d\n", binary.BigEndian.Uint32(data[4:8]))
		fmt.Printf("file size: %d (file size - 8 = %d)\n", len(data), len(data)-8)

		f, err := ilbm.Parse(bytes.NewReader(data))
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		if h := f.Header; h != nil {
			fmt.Printf("BMHD: width %d, height %d, origin %d,%d, planes %d, masking %d, compression %d\n",
				h.Width, h.Height, h.X, h.Y, h.NumPlanes, h.Masking, h.Compression)
			fmt.Printf("      transparent %d, aspect %d:%d, page %dx%d\n",
				h.TransparentColor, h.XAspect, h.YAspect, h.PageWidth, h.PageHeight)
		} else {
			fmt.Println("BMHD chunk not found")
		}

		if f.Palette != nil {
			fmt.Printf("CMAP: %d colours\n", len(f.Palette))
			printHex(pal.AppendWords(nil, f.Palette))
		} else {
			fmt.Println("CMAP chunk not found")
		}

		if f.Body != nil {
			fmt.Printf("BODY: %d bytes\n", len(f.Body))
			if c.Bool("body") {
				printHex(f.Body)
			}
		} else {
			fmt.Println("BODY chunk not found")
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
