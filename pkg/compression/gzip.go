package compression

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxSize bounds the decompressed size of a single body
const DefaultMaxSize = 32 << 20

// ErrTooLarge is returned when decompressed data exceeds the configured limit
var ErrTooLarge = errors.New("decompressed data exceeds size limit")

// Compressor handles gzip bodies
type Compressor struct {
	compressionLevel int
	maxSize          int64
}

// Option configures a Compressor
type Option func(*Compressor)

// WithLevel sets the gzip compression level
func WithLevel(level int) Option {
	return func(c *Compressor) {
		c.compressionLevel = level
	}
}

// WithMaxSize sets the decompressed size limit; zero or less disables it
func WithMaxSize(n int64) Option {
	return func(c *Compressor) {
		c.maxSize = n
	}
}

// NewCompressor creates a compressor with the default level and size limit
func NewCompressor(opts ...Option) *Compressor {
	c := &Compressor{
		compressionLevel: gzip.DefaultCompression,
		maxSize:          DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compress compresses data using gzip
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	writer, err := gzip.NewWriterLevel(&buf, c.compressionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close gzip writer: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses gzip data, enforcing the size limit
func (c *Compressor) Decompress(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer reader.Close()

	var src io.Reader = reader
	if c.maxSize > 0 {
		src = io.LimitReader(reader, c.maxSize+1)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, src); err != nil {
		return nil, fmt.Errorf("failed to read compressed data: %w", err)
	}
	if c.maxSize > 0 && int64(buf.Len()) > c.maxSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, c.maxSize)
	}

	return buf.Bytes(), nil
}

// IsGzip reports whether data starts with the gzip magic number
func IsGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}
