package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dargueta/cmpt365"
	"github.com/dargueta/cmpt365/utilities/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, content := range []string{"", "{}\n"} {
		cfg, err := Load(strings.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	}

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "lz77", cfg.Compression.Algorithm)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)

	algorithm, err := cfg.CompressionAlgorithm()
	require.NoError(t, err)
	assert.Equal(t, compression.AlgorithmWindowMatch, algorithm)
}

func TestLoad_PartialConfig(t *testing.T) {
	yamlContent := `
compression:
  algorithm: LZW
logging:
  level: debug
`
	cfg, err := Load(strings.NewReader(yamlContent))
	require.NoError(t, err)

	algorithm, err := cfg.CompressionAlgorithm()
	require.NoError(t, err)
	assert.Equal(t, compression.AlgorithmDictionary, algorithm)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Not overridden
	assert.Equal(t, "", cfg.Compression.OutputDir)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"algorithm":   "compression:\n  algorithm: lzma\n",
		"level":       "logging:\n  level: chatty\n",
		"output":      "logging:\n  output: syslog\n",
		"log file":    "logging:\n  output: file\n",
		"bad yaml":    "compression: [\n",
		"wrong types": "compression: 12\n",
	}

	for name, content := range tests {
		t.Run(
			name,
			func(t *testing.T) {
				cfg, err := Load(strings.NewReader(content))
				assert.Error(t, err)
				assert.Nil(t, cfg)
			},
		)
	}
}

func TestLoad_BadAlgorithmKeepsErrorKind(t *testing.T) {
	_, err := Load(strings.NewReader("compression:\n  algorithm: zip\n"))
	assert.ErrorIs(t, err, cmpt365.ErrUnsupportedFormat)
}

func TestLoadConfig(t *testing.T) {
	directory := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(directory, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(directory, "cmpt365.yaml")
	content := "compression:\n  output_dir: /tmp/out\nlogging:\n  output: none\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.Compression.OutputDir)
	assert.Equal(t, "none", cfg.Logging.Output)
	assert.Equal(t, "lz77", cfg.Compression.Algorithm)
}
