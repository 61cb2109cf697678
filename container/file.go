package container

import (
	"os"

	"github.com/dargueta/cmpt365"
	"github.com/dargueta/cmpt365/utilities/compression"
)

// SaveFile is [Save] for a file path. An existing file is overwritten.
func SaveFile(path string, img Image, algorithm compression.Algorithm) (SaveStats, error) {
	file, err := os.Create(path)
	if err != nil {
		return SaveStats{}, cmpt365.ErrIO.Wrap(err)
	}

	stats, err := Save(file, img, algorithm)
	closeErr := file.Close()
	if err != nil {
		return SaveStats{}, err
	}
	if closeErr != nil {
		return SaveStats{}, cmpt365.ErrIO.Wrap(closeErr)
	}
	return stats, nil
}

// LoadFile is [Load] for a file path.
func LoadFile(path string) (Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return Image{}, cmpt365.ErrIO.Wrap(err)
	}
	defer file.Close()
	return Load(file)
}

// ReadHeaderFile is [ReadHeader] for a file path.
func ReadHeaderFile(path string) (Header, error) {
	file, err := os.Open(path)
	if err != nil {
		return Header{}, cmpt365.ErrIO.Wrap(err)
	}
	defer file.Close()
	return ReadHeader(file)
}
