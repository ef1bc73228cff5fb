package output

import (
	"context"
	"mime"
	"path"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/config"
	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/logger"
)

// ObjectScheme prefixes object storage targets.
const ObjectScheme = "s3://"

const defaultContentType = "text/plain; charset=utf-8"

// ObjectSink uploads files to an S3-compatible bucket under a key prefix.
type ObjectSink struct {
	client *minio.Client
	bucket string
	prefix string
	log    *zap.SugaredLogger

	checkOnce sync.Once
	checkErr  error
}

// ParseObjectTarget splits s3://bucket/prefix into its bucket and prefix.
func ParseObjectTarget(target string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(target, ObjectScheme) {
		return "", "", errors.NewInvalidRequestError("object target must start with %s: %s", ObjectScheme, target)
	}
	rest := strings.TrimPrefix(target, ObjectScheme)
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", errors.NewInvalidRequestError("object target has no bucket: %s", target)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// NewObjectSink creates a sink for target. Credentials come from storage
// when set, otherwise from the AWS_* or MINIO_* environment.
func NewObjectSink(target string, storage config.StorageConfig, opts ...Option) (*ObjectSink, error) {
	bucket, prefix, err := ParseObjectTarget(target)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimSpace(storage.Endpoint)
	if endpoint == "" {
		endpoint = config.DefaultStorageHost
	}

	var creds *credentials.Credentials
	if storage.AccessKey != "" && storage.SecretKey != "" {
		creds = credentials.NewStaticV4(storage.AccessKey, storage.SecretKey, "")
	} else {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.EnvMinio{},
		})
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  creds,
		Secure: storage.UseSSL,
		Region: storage.Region,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create object storage client for %s", endpoint)
	}

	o := buildOptions(opts)
	return &ObjectSink{client: client, bucket: bucket, prefix: prefix, log: o.log}, nil
}

// Target returns the s3:// URL files are written under.
func (s *ObjectSink) Target() string {
	if s.prefix == "" {
		return ObjectScheme + s.bucket
	}
	return ObjectScheme + s.bucket + "/" + s.prefix
}

// Key returns the object key for an adapter-relative path.
func (s *ObjectSink) Key(rel string) (string, error) {
	clean, err := cleanRelative(rel)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return clean, nil
	}
	return path.Join(s.prefix, clean), nil
}

// Write uploads every file. The bucket must already exist.
func (s *ObjectSink) Write(ctx context.Context, files []adapter.File) error {
	keys := make([]string, len(files))
	for i, f := range files {
		key, err := s.Key(f.Path)
		if err != nil {
			return err
		}
		keys[i] = key
	}

	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		body := strings.NewReader(f.Contents)
		_, err := s.client.PutObject(ctx, s.bucket, keys[i], body, int64(len(f.Contents)), minio.PutObjectOptions{
			ContentType: contentType(f.Path),
		})
		if err != nil {
			return errors.Wrapf(err, "failed to upload %s", keys[i])
		}
	}

	s.log.Debugw("Uploaded files",
		logger.FieldTarget, s.Target(),
		logger.FieldFileCount, len(files))
	return nil
}

func (s *ObjectSink) ensureBucket(ctx context.Context) error {
	s.checkOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.checkErr = errors.Wrapf(err, "failed to check bucket %s", s.bucket)
			return
		}
		if !exists {
			s.checkErr = errors.Wrapf(errors.ErrNotFound, "bucket %s does not exist", s.bucket)
		}
	})
	return s.checkErr
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".ts", ".tsx":
		return "application/typescript"
	case ".vue", ".svelte":
		return defaultContentType
	}
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return defaultContentType
}
