package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// maxBatchSize is the per-commit write ceiling. Firestore caps a
// batch at 500 writes; 400 leaves headroom for server transforms.
const maxBatchSize = 400

type batchWrite struct {
	ref     *firestore.DocumentRef
	data    interface{}
	updates []firestore.Update
}

// commitChunked commits writes in order, at most maxBatchSize per
// atomic batch, moving to the next chunk only after the prior commit
// resolves. On error it reports how many writes already committed;
// callers are expected to be safely re-runnable.
func commitChunked(ctx context.Context, client *firestore.Client, writes []batchWrite) (int, error) {
	committed := 0
	for start := 0; start < len(writes); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(writes) {
			end = len(writes)
		}
		batch := client.Batch()
		for _, w := range writes[start:end] {
			if w.updates != nil {
				batch.Update(w.ref, w.updates)
			} else {
				batch.Set(w.ref, w.data)
			}
		}
		if _, err := batch.Commit(ctx); err != nil {
			return committed, fmt.Errorf("batch commit failed after %d writes: %w", committed, err)
		}
		committed += end - start
	}
	return committed, nil
}
