package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies the compression
// format content was wrapped in.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

	compressionToName = map[Compression]string{
		CompressionNone: "none",
		CompressionGzip: "gzip",
		CompressionZstd: "zstd",
	}
)

func (comp Compression) String() string {
	if name, known := compressionToName[comp]; known {
		return name
	}

	return fmt.Sprintf("COMPRESSION(%d)", uint8(comp))
}

// MIMEType returns the MIME type of the
// compression format, as file(1) reports
// it in compressed-encoding.
func (comp Compression) MIMEType() string {
	switch comp {
	case CompressionGzip:
		return "application/gzip"

	case CompressionZstd:
		return "application/zstd"

	default:
		return "application/octet-stream"
	}
}

// DetectCompression reports the compression
// format data starts with.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip

	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd

	default:
		return CompressionNone
	}
}

// Decompress inflates data, if it is
// compressed, returning at most limit
// bytes of the inflated content.
//
// data is usually only the head of the
// compressed stream so a stream that ends
// early is not an error as long as some
// content was inflated.
func Decompress(data []byte, limit int64) ([]byte, Compression, error) {
	comp := DetectCompression(data)

	var (
		inflated []byte
		err      error
	)

	switch comp {
	case CompressionGzip:
		var reader *gzip.Reader
		if reader, err = gzip.NewReader(bytes.NewReader(data)); err != nil {
			return nil, comp, fmt.Errorf("open gzip stream: %w", err)
		}
		defer reader.Close()

		inflated, err = readInflated(reader, limit)

	case CompressionZstd:
		var decoder *zstd.Decoder
		if decoder, err = zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderConcurrency(1)); err != nil {
			return nil, comp, fmt.Errorf("open zstd stream: %w", err)
		}
		defer decoder.Close()

		inflated, err = readInflated(decoder, limit)

	default:
		return data, comp, nil
	}

	if err != nil {
		return nil, comp, fmt.Errorf("inflate %s stream: %w", comp, err)
	}

	return inflated, comp, nil
}

func readInflated(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer

	_, err := io.Copy(&buf, io.LimitReader(r, limit))
	if errors.Is(err, io.ErrUnexpectedEOF) && buf.Len() > 0 {
		err = nil
	}

	return buf.Bytes(), err
}
