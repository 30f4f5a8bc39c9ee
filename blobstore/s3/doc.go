// Package s3 provides a read-only Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil { ... }
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "obs-bucket", "dart/")
//	staged, err := blobstore.Stage(ctx, store, "obs_seq.final.nc.zst", blobstore.StageOptions{})
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart downloads through the transfer manager when staging
//   - Automatic pagination for listing
//   - Configurable key prefix
package s3
