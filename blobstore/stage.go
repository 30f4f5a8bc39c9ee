package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/obsview/resource"
)

// DefaultChunkSize is the default size of a single ranged read while staging.
const DefaultChunkSize = 8 << 20

// StageOptions configures Stage.
type StageOptions struct {
	// Dir is the directory for staged files. Empty means os.TempDir().
	Dir string
	// ChunkSize is the size of each ranged read. Zero means DefaultChunkSize.
	ChunkSize int64
	// Controller throttles fetches. Nil means unlimited. Every in-flight chunk
	// reserves its length against the memory limit; stores implementing
	// Downloader manage their own buffers and only see the IO limit.
	Controller *resource.Controller
}

// Staged is a blob made available as a local, uncompressed file.
type Staged struct {
	// Path is the local file to hand to the netCDF reader.
	Path string
	// Codec is the compression detected on the source blob.
	Codec Codec
	// Fetched is the number of bytes read from the store.
	Fetched int64

	temp bool
}

// Remove deletes the staged file if Stage created it.
func (s *Staged) Remove() error {
	if s == nil || !s.temp {
		return nil
	}
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Stage copies the named blob to a local file and decompresses it when the
// payload is gzip, zstd or lz4. Uncompressed local blobs are used in place.
func Stage(ctx context.Context, store BlobStore, name string, opts StageOptions) (*Staged, error) {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	// A chunk larger than the memory limit could never be reserved.
	if limit := opts.Controller.MemoryLimit(); limit > 0 && opts.ChunkSize > limit {
		opts.ChunkSize = limit
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer blob.Close()

	header := make([]byte, codecHeaderSize)
	n, err := blob.ReadAt(ctx, header, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header %s: %w", name, err)
	}
	codec := DetectCodec(header[:n])

	if p, ok := blob.(Pather); ok && codec == CodecNone {
		return &Staged{Path: p.Path(), Codec: codec}, nil
	}

	raw, err := os.CreateTemp(opts.Dir, "obsview-*-"+stagedName(name)+".part")
	if err != nil {
		return nil, err
	}
	rawPath := raw.Name()

	fetched, err := fetch(ctx, store, blob, name, raw, opts)
	if cerr := raw.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(rawPath)
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}

	if codec == CodecNone {
		return &Staged{Path: rawPath, Codec: codec, Fetched: fetched, temp: true}, nil
	}

	path, err := decompressFile(rawPath, codec, opts.Dir, stagedName(name))
	_ = os.Remove(rawPath)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}
	return &Staged{Path: path, Codec: codec, Fetched: fetched, temp: true}, nil
}

func fetch(ctx context.Context, store BlobStore, blob Blob, name string, dst *os.File, opts StageOptions) (int64, error) {
	if d, ok := store.(Downloader); ok {
		return d.Download(ctx, name, &throttledWriterAt{ctx: ctx, w: dst, rc: opts.Controller})
	}

	size := blob.Size()
	if err := dst.Truncate(size); err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Controller.MaxConcurrentFetches())

	for off := int64(0); off < size; off += opts.ChunkSize {
		length := min(opts.ChunkSize, size-off)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := opts.Controller.AcquireFetch(gctx); err != nil {
				return err
			}
			defer opts.Controller.ReleaseFetch()
			return fetchChunk(gctx, blob, dst, off, length, opts.Controller)
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return size, nil
}

func fetchChunk(ctx context.Context, blob Blob, dst *os.File, off, length int64, rc *resource.Controller) error {
	if err := rc.AcquireMemory(ctx, length); err != nil {
		return err
	}
	defer rc.ReleaseMemory(length)

	if rr, ok := blob.(RangeReader); ok {
		body, err := rr.ReadRange(ctx, off, length)
		if err != nil {
			return err
		}
		defer body.Close()

		n, err := io.Copy(io.NewOffsetWriter(dst, off), resource.NewRateLimitedReader(ctx, body, rc))
		if err != nil {
			return err
		}
		if n != length {
			return fmt.Errorf("short range read at %d: got %d of %d bytes", off, n, length)
		}
		return nil
	}

	buf := make([]byte, length)
	n, err := blob.ReadAt(ctx, buf, off)
	if err != nil && !(errors.Is(err, io.EOF) && int64(n) == length) {
		return err
	}
	if err := rc.AcquireIO(ctx, n); err != nil {
		return err
	}
	_, err = dst.WriteAt(buf[:n], off)
	return err
}

func decompressFile(src string, codec Codec, dir, base string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	dec, err := NewDecompressor(codec, in)
	if err != nil {
		return "", err
	}
	defer dec.Close()

	out, err := os.CreateTemp(dir, "obsview-*-"+base)
	if err != nil {
		return "", err
	}
	_, err = io.Copy(out, dec)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(out.Name())
		return "", err
	}
	return out.Name(), nil
}

// throttledWriterAt applies the IO limit to native downloads.
type throttledWriterAt struct {
	ctx context.Context
	w   io.WriterAt
	rc  *resource.Controller
}

func (t *throttledWriterAt) WriteAt(p []byte, off int64) (int, error) {
	if err := t.rc.AcquireIO(t.ctx, len(p)); err != nil {
		return 0, err
	}
	return t.w.WriteAt(p, off)
}
