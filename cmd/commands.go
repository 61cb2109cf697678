package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dargueta/cmpt365/bmp"
	"github.com/dargueta/cmpt365/container"
	"github.com/dargueta/cmpt365/utilities/compression"
	"github.com/gocarina/gocsv"
	"github.com/urfave/cli/v2"
)

// headerField is one row of `inspect` output.
type headerField struct {
	Header string `csv:"header"`
	Field  string `csv:"field"`
	Value  string `csv:"value"`
}

func singleArgument(context *cli.Context) (string, error) {
	if context.NArg() != 1 {
		return "", fmt.Errorf(
			"expected exactly one argument, got %d; usage: %s %s",
			context.NArg(),
			context.Command.FullName(),
			context.Command.ArgsUsage,
		)
	}
	return context.Args().First(), nil
}

// replaceExtension swaps the extension of `path` for `extension`, optionally
// moving the file into `directory`.
func replaceExtension(path, extension, directory string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path)) + extension
	if directory == "" {
		return base
	}
	return filepath.Join(directory, filepath.Base(base))
}

func describeBitmap(fileHeader bmp.FileHeader, infoHeader bmp.InfoHeader) []headerField {
	file := func(name string, value any) headerField {
		return headerField{"file", name, fmt.Sprint(value)}
	}
	info := func(name string, value any) headerField {
		return headerField{"info", name, fmt.Sprint(value)}
	}

	return []headerField{
		file("signature", string(fileHeader.Signature[:])),
		file("file_size", fileHeader.FileSize),
		file("reserved1", fileHeader.Reserved1),
		file("reserved2", fileHeader.Reserved2),
		file("data_offset", fileHeader.DataOffset),
		info("header_size", infoHeader.HeaderSize),
		info("width", infoHeader.Width),
		info("height", infoHeader.Height),
		info("planes", infoHeader.Planes),
		info("bits_per_pixel", infoHeader.BitsPerPixel),
		info("compression", infoHeader.Compression),
		info("image_size", infoHeader.ImageSize),
		info("x_pixels_per_meter", infoHeader.XPixelsPerMeter),
		info("y_pixels_per_meter", infoHeader.YPixelsPerMeter),
		info("colors_used", infoHeader.ColorsUsed),
		info("colors_important", infoHeader.ColorsImportant),
	}
}

func inspectBitmap(context *cli.Context) error {
	path, err := singleArgument(context)
	if err != nil {
		return err
	}

	fileHeader, infoHeader, err := bmp.ParseFile(path)
	if err != nil {
		return err
	}
	rows := describeBitmap(fileHeader, infoHeader)

	switch context.String("format") {
	case "csv":
		return gocsv.Marshal(rows, context.App.Writer)
	case "text":
		for _, row := range rows {
			fmt.Fprintf(context.App.Writer, "%-4s  %-18s  %s\n", row.Header, row.Field, row.Value)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", context.String("format"))
	}
}

func compressBitmap(context *cli.Context) error {
	env := getEnvironment(context)
	inputPath, err := singleArgument(context)
	if err != nil {
		return err
	}

	algorithm, err := env.config.CompressionAlgorithm()
	if name := context.String("algorithm"); name != "" {
		algorithm, err = compression.ParseAlgorithm(name)
	}
	if err != nil {
		return err
	}

	outputPath := context.String("output")
	if outputPath == "" {
		outputPath = replaceExtension(
			inputPath, container.FileExtension, env.config.Compression.OutputDir)
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	fileHeader, infoHeader, err := bmp.Parse(file)
	if err != nil {
		return err
	}
	env.logger.Debug(
		"parsed bitmap",
		"path", inputPath,
		"width", infoHeader.Width,
		"height", infoHeader.Height,
		"bits_per_pixel", infoHeader.BitsPerPixel,
		"compression", infoHeader.Compression.String(),
	)

	pixels, err := bmp.ReadPixelData(file, fileHeader, infoHeader)
	if err != nil {
		return err
	}

	img := container.Image{
		Width:        uint32(infoHeader.Width),
		Height:       infoHeader.AbsHeight(),
		BitsPerPixel: uint8(infoHeader.BitsPerPixel),
		Pixels:       pixels,
	}
	stats, err := container.SaveFile(outputPath, img, algorithm)
	if err != nil {
		return err
	}

	ratio := 0.0
	if stats.OriginalSize > 0 {
		ratio = float64(stats.CompressedSize) / float64(stats.OriginalSize)
	}
	env.logger.Info(
		"compressed image",
		"output", outputPath,
		"algorithm", algorithm.String(),
		"original_size", stats.OriginalSize,
		"compressed_size", stats.CompressedSize,
		"ratio", fmt.Sprintf("%.3f", ratio),
		"elapsed", stats.Elapsed,
	)
	return nil
}

func decompressContainer(context *cli.Context) error {
	env := getEnvironment(context)
	inputPath, err := singleArgument(context)
	if err != nil {
		return err
	}

	outputPath := context.String("output")
	if outputPath == "" {
		outputPath = replaceExtension(inputPath, ".raw", "")
	}

	img, err := container.LoadFile(inputPath)
	if err != nil {
		return err
	}

	err = os.WriteFile(outputPath, img.Pixels, 0o644)
	if err != nil {
		return err
	}

	env.logger.Info(
		"decompressed image",
		"output", outputPath,
		"width", img.Width,
		"height", img.Height,
		"bits_per_pixel", img.BitsPerPixel,
		"size", len(img.Pixels),
	)
	return nil
}

func containerInfo(context *cli.Context) error {
	path, err := singleArgument(context)
	if err != nil {
		return err
	}

	header, err := container.ReadHeaderFile(path)
	if err != nil {
		return err
	}

	w := context.App.Writer
	fmt.Fprintf(w, "version:         %d\n", header.Version)
	fmt.Fprintf(w, "algorithm:       %s (%d)\n", header.Algorithm, uint8(header.Algorithm))
	fmt.Fprintf(w, "side info:       %d\n", header.SideInfo)
	fmt.Fprintf(w, "bits per pixel:  %d\n", header.BitsPerPixel)
	fmt.Fprintf(w, "dimensions:      %d x %d\n", header.Width, header.Height)
	fmt.Fprintf(w, "payload length:  %d\n", header.PayloadLength)
	fmt.Fprintf(w, "pixel bytes:     %d\n", header.ExpectedPixelBytes())
	return nil
}
