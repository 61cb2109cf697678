package main

import (
	"fmt"
	"os"

	"github.com/dargueta/cmpt365/container"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(
			os.Stderr,
			"Expand a .cmpt365 file into raw pixel bytes.\nUsage: %s input-file output-file\n",
			os.Args[0])
		os.Exit(1)
	}

	sourceFilePath := os.Args[1]
	outputFilePath := os.Args[2]

	sourceFile, errSrc := os.Open(sourceFilePath)
	if errSrc != nil {
		fmt.Fprintf(
			os.Stderr, "Failed to open file for reading: `%v`: %s\n", sourceFilePath, errSrc)
		os.Exit(1)
	}
	defer sourceFile.Close()

	img, err := container.Load(sourceFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error expanding file: %s\n", err)
		os.Exit(2)
	}

	outFile, errOut := os.Create(outputFilePath)
	if errOut != nil {
		fmt.Fprintf(
			os.Stderr, "Failed to open file for writing: `%v`: %s\n", outputFilePath, errOut)
		os.Exit(1)
	}
	defer outFile.Close()

	_, err = outFile.Write(img.Pixels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %s\n", err)
		os.Exit(2)
	}

	fmt.Printf(
		"Expanded %d x %d image (%d bpp) to %d bytes.\n",
		img.Width,
		img.Height,
		img.BitsPerPixel,
		len(img.Pixels),
	)
}
