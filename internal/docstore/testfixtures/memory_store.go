package testfixtures

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/npsdata/bqfirestoresync/internal/common/retry"
	"github.com/npsdata/bqfirestoresync/internal/common/slices"
	"github.com/npsdata/bqfirestoresync/internal/docstore"
)

// MemoryStore is an in-memory docstore.Store. Failures can be injected per operation, and every
// mutating call is recorded so tests can check how the store was driven.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any

	// Returned by ListDocumentRefs if set
	ListErr error
	// Returned by the n-th call (starting at 1) to DeleteBatch, which then deletes nothing
	DeleteErrs map[int]error
	// Number of times a write of the given document id fails with codes.Unavailable before it succeeds
	WriteFailures map[string]int

	// Ids passed to each DeleteBatch call, in call order
	DeleteBatches [][]string
	// Ids passed to each write session, in call order. Retry sessions show up as separate entries
	WriteSessions [][]string
	// Number of BulkWrite calls
	BulkWrites int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections:   map[string]map[string]map[string]any{},
		DeleteErrs:    map[int]error{},
		WriteFailures: map[string]int{},
	}
}

// Put stores a document directly, bypassing failure injection and call recording.
func (s *MemoryStore) Put(collection string, id string, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(collection)[id] = data
}

// Documents returns a copy of the documents in collection, keyed by id.
func (s *MemoryStore) Documents(collection string) map[string]map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	rv := make(map[string]map[string]any, len(s.collections[collection]))
	for id, data := range s.collections[collection] {
		rv[id] = data
	}
	return rv
}

func (s *MemoryStore) ListDocumentRefs(_ context.Context, collection string) ([]*firestore.DocumentRef, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.collections[collection]))
	for id := range s.collections[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return slices.Map(ids, func(id string) *firestore.DocumentRef {
		return &firestore.DocumentRef{
			ID:   id,
			Path: fmt.Sprintf("projects/test/databases/(default)/documents/%s/%s", collection, id),
			Parent: &firestore.CollectionRef{
				ID: collection,
			},
		}
	}), nil
}

func (s *MemoryStore) DeleteBatch(_ context.Context, refs []*firestore.DocumentRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(refs) > docstore.MaxBatchSize {
		return errors.Errorf("cannot delete %d documents in one batch, the maximum is %d", len(refs), docstore.MaxBatchSize)
	}
	s.DeleteBatches = append(s.DeleteBatches, slices.Map(refs, func(ref *firestore.DocumentRef) string { return ref.ID }))
	if err := s.DeleteErrs[len(s.DeleteBatches)]; err != nil {
		return err
	}
	for _, ref := range refs {
		delete(s.collection(ref.Parent.ID), ref.ID)
	}
	return nil
}

func (s *MemoryStore) BulkWrite(ctx context.Context, collection string, docs []docstore.Document, policy retry.Policy) error {
	s.mu.Lock()
	s.BulkWrites++
	s.mu.Unlock()
	return docstore.WriteWithRetry(ctx, docs, policy, func(_ context.Context, docs []docstore.Document) ([]docstore.Document, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.WriteSessions = append(s.WriteSessions, slices.Map(docs, func(d docstore.Document) string { return d.ID }))
		var failed []docstore.Document
		var result *multierror.Error
		seen := make(map[string]bool, len(docs))
		for _, doc := range docs {
			// one write per document and session, like firestore.BulkWriter
			if seen[doc.ID] {
				failed = append(failed, doc)
				result = multierror.Append(result, errors.Errorf("duplicate write for %s/%s", collection, doc.ID))
				continue
			}
			seen[doc.ID] = true
			if s.WriteFailures[doc.ID] > 0 {
				s.WriteFailures[doc.ID]--
				failed = append(failed, doc)
				result = multierror.Append(result, status.Errorf(codes.Unavailable, "write of %s failed", doc.ID))
				continue
			}
			s.collection(collection)[doc.ID] = doc.Data
		}
		return failed, result.ErrorOrNil()
	})
}

func (s *MemoryStore) collection(name string) map[string]map[string]any {
	c, ok := s.collections[name]
	if !ok {
		c = map[string]map[string]any{}
		s.collections[name] = c
	}
	return c
}
