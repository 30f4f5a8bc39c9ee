// Package blobstore provides read access to observation files held in local
// directories, memory or object storage, and stages them onto local disk for
// the netCDF reader.
//
// BlobStore is the interface for locating and reading blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with mmap support
//   - MemoryStore: in-memory blobs, used by tests
//   - minio.Store: MinIO and other S3-compatible services
//   - s3.Store: Amazon S3 with range reads and multipart downloads
//
// # Staging
//
// Stage copies a blob to a local file using parallel range reads, throttled by
// a resource.Controller, and transparently decompresses gzip, zstd and lz4
// payloads:
//
//	staged, err := blobstore.Stage(ctx, store, "obs_seq.final.nc.zst", blobstore.StageOptions{})
//	if err != nil { ... }
//	defer staged.Remove()
//	f, err := ncfile.Read(staged.Path)
package blobstore
