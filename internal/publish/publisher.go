// Package publish uploads a generated site to an S3-compatible bucket.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"ritdining/internal/logger"
)

// Publish errors.
var (
	ErrMissingBucket      = errors.New("deploy.bucket is required")
	ErrMissingCredentials = errors.New("access key id and secret access key are required")
)

const maxConcurrentUploads = 5

// Object is one file scheduled for upload.
type Object struct {
	Path        string
	Key         string
	ContentType string
}

// Result summarizes a publish run.
type Result struct {
	Uploaded []string
	Errors   []error
}

// Publisher uploads the files of an output directory.
type Publisher struct {
	client Client
	bucket string
	prefix string
	logger *logger.Logger
	dryRun bool
}

// NewPublisher creates a publisher for bucket. Keys are prefixed with prefix.
func NewPublisher(client Client, bucket, prefix string, log *logger.Logger) (*Publisher, error) {
	if bucket == "" {
		return nil, ErrMissingBucket
	}

	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: log,
	}, nil
}

// SetDryRun makes Publish list the objects without uploading them.
func (p *Publisher) SetDryRun(dryRun bool) {
	p.dryRun = dryRun
}

// Collect lists every regular file under root as an upload object.
func (p *Publisher) Collect(root string) ([]Object, error) {
	var objects []Object

	err := filepath.WalkDir(root, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, file)
		if err != nil {
			return err
		}

		objects = append(objects, Object{
			Path:        file,
			Key:         p.Key(filepath.ToSlash(rel)),
			ContentType: ContentType(file),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	return objects, nil
}

// Key returns the object key for a slash separated path relative to the site root.
func (p *Publisher) Key(rel string) string {
	if p.prefix == "" {
		return rel
	}

	return path.Join(p.prefix, rel)
}

// ContentType guesses the MIME type of file from its extension.
func ContentType(file string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(file))); ct != "" {
		return ct
	}

	return "application/octet-stream"
}

// Publish uploads every file under root. Individual failures are collected in
// the result; the returned error is set only when nothing could be listed.
func (p *Publisher) Publish(ctx context.Context, root string) (*Result, error) {
	objects, err := p.Collect(root)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Publishing site", "root", root, "bucket", p.bucket, "objects", len(objects))

	result := &Result{}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sem = make(chan struct{}, maxConcurrentUploads)
	)

	for _, obj := range objects {
		wg.Add(1)

		go func(obj Object) {
			defer wg.Done()

			var err error

			select {
			case <-ctx.Done():
				err = skipped(ctx, obj)
			case sem <- struct{}{}:
				// Both cases can be ready at once; re-check before uploading.
				if ctx.Err() != nil {
					err = skipped(ctx, obj)
				} else {
					err = p.upload(ctx, obj)
				}
				<-sem
			}

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				p.logger.Error("Upload failed", "key", obj.Key, "error", err)
				result.Errors = append(result.Errors, err)

				return
			}

			p.logger.Debug("Uploaded", "key", obj.Key, "type", obj.ContentType)
			result.Uploaded = append(result.Uploaded, obj.Key)
		}(obj)
	}

	wg.Wait()

	return result, nil
}

func skipped(ctx context.Context, obj Object) error {
	return fmt.Errorf("skipped %s: %w", obj.Key, ctx.Err())
}

func (p *Publisher) upload(ctx context.Context, obj Object) error {
	if p.dryRun {
		return nil
	}

	f, err := os.Open(obj.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", obj.Path, err)
	}
	defer f.Close()

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(obj.Key),
		Body:        f,
		ContentType: aws.String(obj.ContentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", obj.Key, err)
	}

	return nil
}
