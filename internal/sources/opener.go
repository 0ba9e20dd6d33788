package sources

import (
	"context"
	"errors"
	"fmt"

	"log-analyzer/internal/shared/compressions"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/validators"
)

// Options configures how stored log files are decoded.
type Options struct {
	DefaultName string
	Format      string
	Compression compressions.Codec
	ExcludeBots bool
}

type logfileOpener struct {
	storage filestorages.FileStorage
	opts    Options
}

// NewLogfileOpener returns an Opener reading log files out of storage.
func NewLogfileOpener(storage filestorages.FileStorage, opts Options) (Opener, error) {
	if !validators.IsRelPath(opts.DefaultName) {
		return nil, fmt.Errorf("%w: default %q", ErrInvalidSourceName, opts.DefaultName)
	}
	if _, err := NewLineParser(opts.Format, opts.ExcludeBots); err != nil {
		return nil, err
	}
	if _, err := compressions.Resolve(opts.Compression, opts.DefaultName); err != nil {
		return nil, err
	}
	return &logfileOpener{storage: storage, opts: opts}, nil
}

func (o *logfileOpener) DefaultName() string {
	return o.opts.DefaultName
}

func (o *logfileOpener) Open(ctx context.Context, name string) (RecordSource, error) {
	if name == "" {
		name = o.opts.DefaultName
	}
	if !validators.IsRelPath(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSourceName, name)
	}

	codec, err := compressions.Resolve(o.opts.Compression, name)
	if err != nil {
		return nil, err
	}
	// one parser per source; the json parser reuses its buffers between lines
	parser, err := NewLineParser(o.opts.Format, o.opts.ExcludeBots)
	if err != nil {
		return nil, err
	}

	info, err := o.storage.Stat(ctx, name)
	if err != nil {
		return nil, o.wrapOpenError(name, err)
	}
	reader, err := newLogfileReader(ctx, o.storage, name, o.opts.Format, codec, parser)
	if err != nil {
		return nil, o.wrapOpenError(name, err)
	}

	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldSource, name).
		Int64("size", info.Size).
		Str("format", o.opts.Format).
		Str("compression", string(codec)).
		Msg("opened record source")
	return reader, nil
}

func (o *logfileOpener) wrapOpenError(name string, err error) error {
	if errors.Is(err, filestorages.ErrInvalidKey) {
		return fmt.Errorf("%w: %q", ErrInvalidSourceName, name)
	}
	return fmt.Errorf("failed to open log %q: %w", name, err)
}
