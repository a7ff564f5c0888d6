package docstore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/npsdata/bqfirestoresync/internal/common/retry"
)

// FirestoreStore is a Store backed by Cloud Firestore. When FIRESTORE_EMULATOR_HOST is set the
// underlying client talks to the emulator instead.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(ctx context.Context, projectId string, opts ...option.ClientOption) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectId, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating firestore client for project %s", projectId)
	}
	return &FirestoreStore{client: client}, nil
}

// ListDocumentRefs includes missing documents, i.e. documents that don't exist themselves but have
// subcollections.
func (s *FirestoreStore) ListDocumentRefs(ctx context.Context, collection string) ([]*firestore.DocumentRef, error) {
	refs, err := s.client.Collection(collection).DocumentRefs(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "error listing documents of collection %s", collection)
	}
	return refs, nil
}

// DeleteBatch commits all deletes in one transaction.
func (s *FirestoreStore) DeleteBatch(ctx context.Context, refs []*firestore.DocumentRef) error {
	if len(refs) > MaxBatchSize {
		return errors.Errorf("cannot delete %d documents in one batch, the maximum is %d", len(refs), MaxBatchSize)
	}
	if len(refs) == 0 {
		return nil
	}
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, ref := range refs {
			if err := tx.Delete(ref); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrapf(err, "error deleting batch of %d documents", len(refs))
}

func (s *FirestoreStore) BulkWrite(ctx context.Context, collection string, docs []Document, policy retry.Policy) error {
	err := WriteWithRetry(ctx, docs, policy, s.writeSession(collection))
	return errors.Wrapf(err, "error writing %d documents to collection %s", len(docs), collection)
}

// writeSession upserts docs through a single BulkWriter, which batches and paces the writes itself.
func (s *FirestoreStore) writeSession(collection string) WriteSession {
	return func(ctx context.Context, docs []Document) ([]Document, error) {
		coll := s.client.Collection(collection)
		writer := s.client.BulkWriter(ctx)
		jobs := make([]*firestore.BulkWriterJob, len(docs))
		errs := make([]error, len(docs))
		for i, doc := range docs {
			job, err := writer.Set(coll.Doc(doc.ID), doc.Data)
			if err != nil {
				errs[i] = errors.Wrapf(err, "error queueing document %s", doc.ID)
				continue
			}
			jobs[i] = job
		}
		// blocks until every queued write has been sent and has a result
		writer.End()

		var failed []Document
		var result *multierror.Error
		for i, job := range jobs {
			if job != nil {
				if _, err := job.Results(); err != nil {
					errs[i] = errors.Wrapf(err, "error writing document %s", docs[i].ID)
				}
			}
			if errs[i] != nil {
				log.WithError(errs[i]).Debugf("Write of document %s failed", docs[i].ID)
				failed = append(failed, docs[i])
				result = multierror.Append(result, errs[i])
			}
		}
		return failed, result.ErrorOrNil()
	}
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
