package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "cmpt365",
		Usage: "Inspect BMP images and store their pixels in .cmpt365 containers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				Value:   "cmpt365.yaml",
				EnvVars: []string{"CMPT365_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override the configured log level (debug, info, warn, error)",
			},
		},
		Before: setUpEnvironment,
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "Print the file and info headers of a BMP image",
				Action:    inspectBitmap,
				ArgsUsage: "BMP_FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "output format, `text` or `csv`",
						Value: "text",
					},
				},
			},
			{
				Name:      "compress",
				Usage:     "Compress the pixels of an uncompressed BMP image",
				Action:    compressBitmap,
				ArgsUsage: "BMP_FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "algorithm",
						Aliases: []string{"a"},
						Usage:   "`lzw` or `lz77`; defaults to the configured algorithm",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output file; defaults to the input with a .cmpt365 extension",
					},
				},
			},
			{
				Name:      "decompress",
				Usage:     "Expand a container back into raw pixel bytes",
				Action:    decompressContainer,
				ArgsUsage: "CMPT365_FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output file; defaults to the input with a .raw extension",
					},
				},
			},
			{
				Name:      "info",
				Usage:     "Print the header of a container without decompressing it",
				Action:    containerInfo,
				ArgsUsage: "CMPT365_FILE",
			},
		},
	}
}
