package docstore

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/npsdata/bqfirestoresync/internal/common/retry"
)

// MaxBatchSize is the largest number of mutations Firestore accepts in a single commit.
const MaxBatchSize = 500

// Document is a document waiting to be written: its identifier within the collection and its body.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is the destination document database.
type Store interface {
	// ListDocumentRefs returns a reference to every document currently in collection.
	ListDocumentRefs(ctx context.Context, collection string) ([]*firestore.DocumentRef, error)
	// DeleteBatch deletes refs in a single atomic commit. Either all of them are deleted or none are.
	// At most MaxBatchSize refs may be passed.
	DeleteBatch(ctx context.Context, refs []*firestore.DocumentRef) error
	// BulkWrite upserts every document into collection, retrying failed documents according to policy.
	// It returns once every write has succeeded, or with an error once the policy has given up.
	BulkWrite(ctx context.Context, collection string, docs []Document, policy retry.Policy) error
}
