package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled limits the bandwidth of an underlying store. Writes and reads
// share one token bucket measured in bytes per second.
type Throttled struct {
	inner   BlobStore
	limiter *rate.Limiter
}

// NewThrottled wraps inner with a limit of bytesPerSec. A burst of one
// second's worth of bytes is allowed.
func NewThrottled(inner BlobStore, bytesPerSec int) *Throttled {
	if bytesPerSec <= 0 {
		return &Throttled{inner: inner, limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &Throttled{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec),
	}
}

// Open opens a blob whose reads are throttled.
func (t *Throttled) Open(ctx context.Context, name string) (Blob, error) {
	b, err := t.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &throttledBlob{Blob: b, t: t}, nil
}

// Put waits for len(data) tokens before writing.
func (t *Throttled) Put(ctx context.Context, name string, data []byte) error {
	if err := t.wait(ctx, len(data)); err != nil {
		return err
	}
	return t.inner.Put(ctx, name, data)
}

// Delete removes a blob without throttling.
func (t *Throttled) Delete(ctx context.Context, name string) error {
	return t.inner.Delete(ctx, name)
}

// List lists blobs without throttling.
func (t *Throttled) List(ctx context.Context, prefix string) ([]string, error) {
	return t.inner.List(ctx, prefix)
}

// wait consumes n tokens in chunks no larger than the burst.
func (t *Throttled) wait(ctx context.Context, n int) error {
	if t.limiter.Limit() == rate.Inf {
		return ctx.Err()
	}
	burst := t.limiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := t.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

type throttledBlob struct {
	Blob
	t *Throttled
}

func (b *throttledBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := b.t.wait(ctx, len(p)); err != nil {
		return 0, err
	}
	return b.Blob.ReadAt(ctx, p, off)
}
