package storage

import (
	"context"

	gcs "cloud.google.com/go/storage"
	"github.com/pkg/errors"
)

// Bucket is a thin adapter over the app's default storage bucket.
type Bucket struct {
	handle *gcs.BucketHandle
}

func NewBucket(handle *gcs.BucketHandle) *Bucket {
	return &Bucket{handle: handle}
}

func (b *Bucket) DeleteObject(ctx context.Context, path string) error {
	if err := b.handle.Object(path).Delete(ctx); err != nil {
		return errors.Wrapf(err, "failed to delete object %s", path)
	}
	return nil
}
