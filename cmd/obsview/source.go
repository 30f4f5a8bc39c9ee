package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/obsview/blobstore"
	miniostore "github.com/hupe1980/obsview/blobstore/minio"
	s3store "github.com/hupe1980/obsview/blobstore/s3"
)

// ErrInvalidSource is returned for a source reference that cannot be resolved.
var ErrInvalidSource = errors.New("invalid source")

// source is a resolved file reference.
type source struct {
	store blobstore.BlobStore
	name  string
}

// parseSource splits ref into scheme, bucket and key. Local paths have an empty
// scheme and the path as key.
func parseSource(ref string) (scheme, bucket, key string, err error) {
	if !strings.Contains(ref, "://") {
		if ref == "" {
			return "", "", "", fmt.Errorf("%w: empty path", ErrInvalidSource)
		}
		return "", "", ref, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	switch u.Scheme {
	case "s3", "minio":
	case "file":
		return "", "", u.Path, nil
	default:
		return "", "", "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidSource, u.Scheme)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", "", fmt.Errorf("%w: %s needs a bucket and key", ErrInvalidSource, ref)
	}
	return u.Scheme, u.Host, key, nil
}

// openSource resolves ref to a blob store and the blob name within it.
func openSource(ctx context.Context, cfg *Config, ref string) (*source, error) {
	scheme, bucket, key, err := parseSource(ref)
	if err != nil {
		return nil, err
	}

	switch scheme {
	case "s3":
		client, err := newS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		st := s3store.NewStore(client, bucket, "")
		st.PartSize = cfg.S3.PartSize
		st.Concurrency = cfg.S3.Concurrency
		return &source{store: st, name: key}, nil
	case "minio":
		client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return &source{store: miniostore.NewStore(client, bucket, ""), name: key}, nil
	default:
		return &source{
			store: blobstore.NewLocalStore(filepath.Dir(key)),
			name:  filepath.Base(key),
		}, nil
	}
}

func newS3Client(ctx context.Context, c S3Config) (*s3.Client, error) {
	var optFns []func(*config.LoadOptions) error
	if c.Region != "" {
		optFns = append(optFns, config.WithRegion(c.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = c.UsePathStyle
	}), nil
}
