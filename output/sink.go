// Package output writes generated files to their destination and compares
// them against what is already there.
package output

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/config"
	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/logger"
)

// DefaultCacheSize bounds the number of file digests a DirSink remembers.
const DefaultCacheSize = 1024

// Sink receives the files of one generation.
type Sink interface {
	Write(ctx context.Context, files []adapter.File) error
	// Target describes where files go, for log and CLI output.
	Target() string
}

type sinkOptions struct {
	log       *zap.SugaredLogger
	cacheSize int
}

// Option configures a sink.
type Option func(*sinkOptions)

// WithLogger sets the logger used for write traces.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *sinkOptions) { o.log = logger.OrNop(log) }
}

// WithCacheSize sets how many file digests a DirSink keeps.
func WithCacheSize(n int) Option {
	return func(o *sinkOptions) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

func buildOptions(opts []Option) sinkOptions {
	o := sinkOptions{log: zap.NewNop().Sugar(), cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewSink picks a sink for target: s3://bucket/prefix goes to object
// storage, anything else is a local directory.
func NewSink(target string, storage config.StorageConfig, opts ...Option) (Sink, error) {
	if strings.HasPrefix(target, ObjectScheme) {
		return NewObjectSink(target, storage, opts...)
	}
	return NewDirSink(target, opts...)
}

// DirSink writes files beneath a root directory. Files whose contents
// have not changed since the last write are left untouched, so watchers
// downstream only see real edits.
type DirSink struct {
	root    string
	digests *lru.Cache[string, [sha256.Size]byte]
	log     *zap.SugaredLogger
}

// NewDirSink creates a sink rooted at dir. The directory is created on
// the first write.
func NewDirSink(dir string, opts ...Option) (*DirSink, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.NewInvalidRequestError("output directory is required")
	}
	o := buildOptions(opts)
	cache, err := lru.New[string, [sha256.Size]byte](o.cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create digest cache")
	}
	return &DirSink{root: dir, digests: cache, log: o.log}, nil
}

// Target returns the root directory.
func (s *DirSink) Target() string { return s.root }

// Write stores every file. All paths are checked before anything is
// written.
func (s *DirSink) Write(ctx context.Context, files []adapter.File) error {
	targets := make([]string, len(files))
	for i, f := range files {
		full, err := Resolve(s.root, f.Path)
		if err != nil {
			return err
		}
		targets[i] = full
	}

	skipped := 0
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		wrote, err := s.writeFile(targets[i], []byte(f.Contents))
		if err != nil {
			return err
		}
		if !wrote {
			skipped++
		}
	}

	s.log.Debugw("Wrote files",
		logger.FieldTarget, s.root,
		logger.FieldFileCount, len(files)-skipped,
		logger.FieldSkipped, skipped)
	return nil
}

func (s *DirSink) writeFile(path string, data []byte) (bool, error) {
	digest := sha256.Sum256(data)
	if known, ok := s.digests.Get(path); ok && known == digest {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	if existing, err := os.ReadFile(path); err == nil && sha256.Sum256(existing) == digest {
		s.digests.Add(path, digest)
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), config.DefaultDirPermissions); err != nil {
		return false, errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, errors.Wrapf(err, "failed to write %s", path)
	}
	s.digests.Add(path, digest)
	return true, nil
}

// Resolve joins an adapter-relative path onto root. Absolute paths and
// paths that climb out of root are rejected.
func Resolve(root, rel string) (string, error) {
	clean, err := cleanRelative(rel)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(clean)), nil
}

// cleanRelative normalises a slash-separated relative path.
func cleanRelative(rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", errors.NewInvalidRequestError("generated file has an empty path")
	}
	slashed := filepath.ToSlash(rel)
	if strings.HasPrefix(slashed, "/") || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", errors.NewInvalidRequestError("generated file path must be relative: %s", rel)
	}
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(slashed)))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errors.NewInvalidRequestError("generated file path escapes the output root: %s", rel)
	}
	return clean, nil
}
