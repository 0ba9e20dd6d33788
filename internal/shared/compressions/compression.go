package compressions

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec identifies how a log file is compressed on disk.
type Codec string

const (
	CodecAuto Codec = "auto"
	CodecNone Codec = "none"
	CodecGzip Codec = "gzip"
	CodecZstd Codec = "zstd"
)

var ErrUnknownCodec = errors.New("unknown compression codec")

// Resolve turns CodecAuto into a concrete codec based on the file extension.
func Resolve(configured Codec, fileName string) (Codec, error) {
	switch configured {
	case CodecNone, CodecGzip, CodecZstd:
		return configured, nil
	case CodecAuto, "":
		switch strings.ToLower(path.Ext(fileName)) {
		case ".gz", ".gzip":
			return CodecGzip, nil
		case ".zst", ".zstd":
			return CodecZstd, nil
		default:
			return CodecNone, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCodec, configured)
}

// NewReader wraps r with a decompressor for codec. Closing the result does not close r.
func NewReader(codec Codec, r io.Reader) (io.ReadCloser, error) {
	switch codec {
	case CodecNone:
		return io.NopCloser(r), nil
	case CodecGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return gz, nil
	case CodecZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return dec.IOReadCloser(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codec)
}

// NewWriter wraps w with a compressor for codec. Close flushes the compressor but not w.
func NewWriter(codec Codec, w io.Writer) (io.WriteCloser, error) {
	switch codec {
	case CodecNone:
		return nopWriteCloser{w}, nil
	case CodecGzip:
		return gzip.NewWriter(w), nil
	case CodecZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codec)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
