package obsview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/obsview/blobstore"
	"github.com/hupe1980/obsview/dataset"
	"github.com/hupe1980/obsview/ncfile"
)

// Data is a loaded observation file.
type Data struct {
	Name       string
	Dataset    *dataset.Dataset
	Tree       *dataset.GroupTree
	Attributes map[string]any

	// Codec is the compression detected on the source blob.
	Codec blobstore.Codec
	// Bytes is the size of the decoded file.
	Bytes int64
}

// Load stages the named blob locally and decodes it. The staged copy is
// removed once decoded.
func (e *Engine) Load(ctx context.Context, store blobstore.BlobStore, name string) (data *Data, err error) {
	start := time.Now()
	logger := e.logger.WithDataset(name)
	var size int64
	defer func() {
		e.metrics.RecordLoad(size, time.Since(start), err)
		obs, groups := 0, 0
		if data != nil {
			obs, groups = data.Dataset.Len(), data.Tree.Len()-1
		}
		logger.LogLoad(ctx, obs, groups, err)
	}()

	staged, err := blobstore.Stage(ctx, store, name, blobstore.StageOptions{
		Dir:        e.opts.stagingDir,
		ChunkSize:  e.opts.chunkSize,
		Controller: e.opts.controller,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := staged.Remove(); rerr != nil {
			logger.Warn("failed to remove staged file", "path", staged.Path, "error", rerr)
		}
	}()

	if fi, serr := os.Stat(staged.Path); serr == nil {
		size = fi.Size()
	}

	f, err := ncfile.Read(staged.Path, e.opts.readOptions...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return &Data{
		Name:       name,
		Dataset:    f.Dataset,
		Tree:       f.Tree,
		Attributes: f.Attributes,
		Codec:      staged.Codec,
		Bytes:      size,
	}, nil
}

// OpenFile loads a file from the local filesystem.
func (e *Engine) OpenFile(ctx context.Context, path string) (*Data, error) {
	return e.Load(ctx, blobstore.NewLocalStore(filepath.Dir(path)), filepath.Base(path))
}

// Subset runs req against a loaded file.
func (e *Engine) Subset(d *Data, req SubsetRequest) (*SubsetResult, error) {
	if d == nil {
		return e.ComputeSubset(nil, nil, req)
	}
	return e.ComputeSubset(d.Dataset, d.Tree, req)
}
