package docstore

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npsdata/bqfirestoresync/internal/common/retry"
)

const emulatorHostEnvVar = "FIRESTORE_EMULATOR_HOST"

// withEmulatorStore runs action against a Firestore emulator if one has been configured and skips the test otherwise.
// Each test gets a collection of its own.
func withEmulatorStore(t *testing.T, action func(ctx context.Context, store *FirestoreStore, collection string)) {
	t.Helper()
	if os.Getenv(emulatorHostEnvVar) == "" {
		t.Skipf("%s is not set", emulatorHostEnvVar)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := NewFirestoreStore(ctx, "test-project")
	require.NoError(t, err)
	defer store.Close()

	action(ctx, store, "test-"+uuid.NewString())
}

func TestFirestoreStore_WriteListDelete(t *testing.T) {
	withEmulatorStore(t, func(ctx context.Context, store *FirestoreStore, collection string) {
		toWrite := make([]Document, 0, 30)
		for i := 0; i < 30; i++ {
			toWrite = append(toWrite, Document{
				ID:   uuid.NewString(),
				Data: map[string]any{"index": int64(i), "name": "row"},
			})
		}
		require.NoError(t, store.BulkWrite(ctx, collection, toWrite, retry.Policy{MaxAttempts: 3}))

		refs, err := store.ListDocumentRefs(ctx, collection)
		require.NoError(t, err)
		assert.Len(t, refs, 30)

		require.NoError(t, store.DeleteBatch(ctx, refs[:10]))
		refs, err = store.ListDocumentRefs(ctx, collection)
		require.NoError(t, err)
		assert.Len(t, refs, 20)

		require.NoError(t, store.DeleteBatch(ctx, refs))
		refs, err = store.ListDocumentRefs(ctx, collection)
		require.NoError(t, err)
		assert.Empty(t, refs)
	})
}

func TestFirestoreStore_BulkWriteOverwrites(t *testing.T) {
	withEmulatorStore(t, func(ctx context.Context, store *FirestoreStore, collection string) {
		policy := retry.Policy{MaxAttempts: 3}
		require.NoError(t, store.BulkWrite(ctx, collection, []Document{{ID: "1", Data: map[string]any{"a": "old", "b": "old"}}}, policy))
		require.NoError(t, store.BulkWrite(ctx, collection, []Document{{ID: "1", Data: map[string]any{"a": "new"}}}, policy))

		snap, err := store.client.Collection(collection).Doc("1").Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "new"}, snap.Data())
	})
}

func TestFirestoreStore_DeleteBatchTooLarge(t *testing.T) {
	store := &FirestoreStore{}
	refs := make([]*firestore.DocumentRef, MaxBatchSize+1)
	err := store.DeleteBatch(context.Background(), refs)
	assert.Error(t, err)
}

func TestFirestoreStore_BulkWriteDuplicateIds(t *testing.T) {
	withEmulatorStore(t, func(ctx context.Context, store *FirestoreStore, collection string) {
		toWrite := []Document{
			{ID: "42", Data: map[string]any{"score": int64(1)}},
			{ID: "42", Data: map[string]any{"score": int64(2)}},
			{ID: "42", Data: map[string]any{"score": int64(3)}},
		}
		policy := retry.Policy{MaxAttempts: 1, RetryIf: IsTransient}
		require.NoError(t, store.BulkWrite(ctx, collection, toWrite, policy))

		snap, err := store.client.Collection(collection).Doc("42").Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"score": int64(3)}, snap.Data())
	})
}
