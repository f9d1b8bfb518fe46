package corpus

import (
	"context"
	"time"
)

// Supplier delivers new input each time it is polled.
type Supplier interface {
	Poll(ctx context.Context) (Batch, error)
}

// Sources polls several suppliers as one.
type Sources []Supplier

// Poll collects the new input of every supplier. A failing supplier does not
// stop the others; its error is recorded in the batch.
func (s Sources) Poll(ctx context.Context) (Batch, error) {
	var batch Batch
	for _, sup := range s {
		b, err := sup.Poll(ctx)
		batch.Merge(b)
		if err != nil {
			if ctx.Err() != nil {
				return batch, ctx.Err()
			}
			batch.Errors = append(batch.Errors, err)
		}
	}
	return batch, nil
}

// PollInto polls sup once and appends any new lines to c.
func PollInto(ctx context.Context, c *Corpus, sup Supplier) (Batch, error) {
	batch, err := sup.Poll(ctx)
	if !batch.Empty() {
		c.Append(batch.Lines()...)
	}
	return batch, err
}

// Watch polls sup immediately and then every interval until ctx is done.
// Non-empty batches are appended to c before fn is called with them.
// Poll errors are passed to fn as well, so the caller decides what to report.
func Watch(ctx context.Context, c *Corpus, sup Supplier, interval time.Duration, fn func(Batch, error)) error {
	poll := func() {
		batch, err := PollInto(ctx, c, sup)
		if ctx.Err() != nil {
			return
		}
		if !batch.Empty() || len(batch.Errors) > 0 || err != nil {
			fn(batch, err)
		}
	}

	poll()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			poll()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
