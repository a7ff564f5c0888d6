package syncer

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clock "k8s.io/utils/clock/testing"

	"github.com/npsdata/bqfirestoresync/internal/common/jobcontext"
	"github.com/npsdata/bqfirestoresync/internal/common/retry"
	"github.com/npsdata/bqfirestoresync/internal/docstore"
	"github.com/npsdata/bqfirestoresync/internal/docstore/testfixtures"
	"github.com/npsdata/bqfirestoresync/internal/syncer/mocks"
	"github.com/npsdata/bqfirestoresync/internal/warehouse"
)

const (
	testCollection = "nps-data"
	testQuery      = "SELECT * FROM `test-project.testdataset.nps_data_final`"
)

var (
	testTable = warehouse.TableRef{Project: "test-project", Dataset: "testdataset", Table: "nps_data_final"}
	testJob   = &warehouse.QueryJob{ID: "job-1", Location: "EU"}
	testTime  = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func testParams() Params {
	return Params{
		Table:           testTable,
		Collection:      testCollection,
		DeleteBatchSize: 500,
		WriteChunkSize:  5000,
		Retry:           retry.Policy{MaxAttempts: 3},
	}
}

func rows(n int) []warehouse.Row {
	rv := make([]warehouse.Row, n)
	for i := range rv {
		rv[i] = warehouse.Row{"score": int64(i % 11), "comment": fmt.Sprintf("comment %d", i)}
	}
	return rv
}

func docIds(from, to int) []string {
	rv := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		rv = append(rv, fmt.Sprintf("doc-%d", i))
	}
	return rv
}

func seed(store *testfixtures.MemoryStore, n int) {
	for i := 0; i < n; i++ {
		store.Put(testCollection, fmt.Sprintf("old-%04d", i), map[string]any{"stale": true})
	}
}

func expectQuery(wh *mocks.MockWarehouse, result []warehouse.Row) {
	wh.EXPECT().RunQuery(gomock.Any(), testQuery).Return(testJob, nil)
	wh.EXPECT().FetchResults(gomock.Any(), testJob).Return(result, nil)
}

func newSyncer(t *testing.T, params Params, wh warehouse.Warehouse, store docstore.Store) *Syncer {
	s, err := New(params, wh, store, clock.NewFakePassiveClock(testTime))
	require.NoError(t, err)
	return s
}

func TestRun_ReplacesCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	wh := mocks.NewMockWarehouse(ctrl)
	store := testfixtures.NewMemoryStore()
	seed(store, 3)
	result := []warehouse.Row{
		{"id": "r1", "score": int64(10)},
		{"id": "r2", "score": int64(7)},
	}
	expectQuery(wh, result)

	s := newSyncer(t, testParams(), wh, store)
	report, err := s.Run(jobcontext.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]map[string]any{
		"r1": {"id": "r1", "score": int64(10)},
		"r2": {"id": "r2", "score": int64(7)},
	}, store.Documents(testCollection))
	assert.Equal(t, Done, s.Phase())
	assert.Equal(t, &Report{
		RunId:         s.RunId(),
		Deleted:       3,
		DeleteBatches: 1,
		Rows:          2,
		Chunks:        1,
		Written:       2,
	}, report)
}

func TestRun_DeletesInBoundedBatches(t *testing.T) {
	tests := map[string]struct {
		existing        int
		batchSize       int
		expectedBatches []int
	}{
		"empty collection":   {existing: 0, batchSize: 500, expectedBatches: nil},
		"single batch":       {existing: 499, batchSize: 500, expectedBatches: []int{499}},
		"exact multiple":     {existing: 1000, batchSize: 500, expectedBatches: []int{500, 500}},
		"remainder":          {existing: 1201, batchSize: 500, expectedBatches: []int{500, 500, 201}},
		"smaller batch size": {existing: 7, batchSize: 3, expectedBatches: []int{3, 3, 1}},
		"batch size one":     {existing: 2, batchSize: 1, expectedBatches: []int{1, 1}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			wh := mocks.NewMockWarehouse(ctrl)
			store := testfixtures.NewMemoryStore()
			seed(store, tc.existing)
			expectQuery(wh, nil)

			params := testParams()
			params.DeleteBatchSize = tc.batchSize
			report, err := newSyncer(t, params, wh, store).Run(jobcontext.Background())
			require.NoError(t, err)

			var sizes []int
			for _, batch := range store.DeleteBatches {
				sizes = append(sizes, len(batch))
			}
			assert.Equal(t, tc.expectedBatches, sizes)
			assert.Equal(t, tc.existing, report.Deleted)
			assert.Equal(t, len(tc.expectedBatches), report.DeleteBatches)
			assert.Empty(t, store.Documents(testCollection))
		})
	}
}

func TestRun_WritesChunksInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	wh := mocks.NewMockWarehouse(ctrl)
	store := testfixtures.NewMemoryStore()
	expectQuery(wh, rows(12))

	params := testParams()
	params.WriteChunkSize = 5
	report, err := newSyncer(t, params, wh, store).Run(jobcontext.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, store.BulkWrites)
	assert.Equal(t, [][]string{docIds(0, 5), docIds(5, 10), docIds(10, 12)}, store.WriteSessions)
	assert.Len(t, store.Documents(testCollection), 12)
	assert.Equal(t, 3, report.Chunks)
	assert.Equal(t, 12, report.Written)
}

func TestRun_IdsIndependentOfChunkSize(t *testing.T) {
	result := rows(9)
	result[4]["id"] = int64(1234)

	var collections []map[string]map[string]any
	for _, chunkSize := range []int{1, 4, 9, 5000} {
		ctrl := gomock.NewController(t)
		wh := mocks.NewMockWarehouse(ctrl)
		store := testfixtures.NewMemoryStore()
		expectQuery(wh, result)

		params := testParams()
		params.WriteChunkSize = chunkSize
		_, err := newSyncer(t, params, wh, store).Run(jobcontext.Background())
		require.NoError(t, err)
		collections = append(collections, store.Documents(testCollection))
	}
	assert.Contains(t, collections[0], "1234")
	assert.Contains(t, collections[0], "doc-8")
	assert.NotContains(t, collections[0], "doc-4")
	for _, c := range collections[1:] {
		assert.Equal(t, collections[0], c)
	}
}

func TestRun_NoRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	wh := mocks.NewMockWarehouse(ctrl)
	store := testfixtures.NewMemoryStore()
	seed(store, 4)
	expectQuery(wh, []warehouse.Row{})

	s := newSyncer(t, testParams(), wh, store)
	report, err := s.Run(jobcontext.Background())
	require.NoError(t, err)

	assert.Empty(t, store.Documents(testCollection))
	assert.Equal(t, 0, store.BulkWrites)
	assert.Equal(t, 0, report.Rows)
	assert.Equal(t, 0, report.Chunks)
	assert.Equal(t, Done, s.Phase())
}

func TestRun_RetriedWritesAreTransparent(t *testing.T) {
	ctrl := gomock.NewController(t)
	wh := mocks.NewMockWarehouse(ctrl)
	store := testfixtures.NewMemoryStore()
	store.WriteFailures["doc-1"] = 2
	expectQuery(wh, rows(3))

	report, err := newSyncer(t, testParams(), wh, store).Run(jobcontext.Background())
	require.NoError(t, err)

	assert.Equal(t, [][]string{docIds(0, 3), {"doc-1"}, {"doc-1"}}, store.WriteSessions)
	assert.Len(t, store.Documents(testCollection), 3)
	assert.Equal(t, 3, report.Written)
}

func TestRun_Failures(t *testing.T) {
	listErr := errors.New("list failed")
	queryErr := errors.New("query failed")
	fetchErr := errors.New("job failed")

	tests := map[string]struct {
		setup            func(wh *mocks.MockWarehouse, store *testfixtures.MemoryStore)
		expectedPhase    Phase
		expectedErr      error
		expectedDeleted  int
		expectedBatches  int
		expectedSessions int
		remaining        int
	}{
		"listing fails": {
			setup: func(_ *mocks.MockWarehouse, store *testfixtures.MemoryStore) {
				store.ListErr = listErr
			},
			expectedPhase: Clearing,
			expectedErr:   listErr,
			remaining:     600,
		},
		"second delete batch fails": {
			setup: func(_ *mocks.MockWarehouse, store *testfixtures.MemoryStore) {
				store.DeleteErrs[2] = errors.New("commit failed")
			},
			expectedPhase:   Clearing,
			expectedDeleted: 500,
			expectedBatches: 2,
			remaining:       100,
		},
		"query fails to start": {
			setup: func(wh *mocks.MockWarehouse, _ *testfixtures.MemoryStore) {
				wh.EXPECT().RunQuery(gomock.Any(), testQuery).Return(nil, queryErr)
			},
			expectedPhase:   Querying,
			expectedErr:     queryErr,
			expectedDeleted: 600,
			expectedBatches: 2,
		},
		"query job fails": {
			setup: func(wh *mocks.MockWarehouse, _ *testfixtures.MemoryStore) {
				wh.EXPECT().RunQuery(gomock.Any(), testQuery).Return(testJob, nil)
				wh.EXPECT().FetchResults(gomock.Any(), testJob).Return(nil, fetchErr)
			},
			expectedPhase:   Querying,
			expectedErr:     fetchErr,
			expectedDeleted: 600,
			expectedBatches: 2,
		},
		"write retries exhausted": {
			setup: func(wh *mocks.MockWarehouse, store *testfixtures.MemoryStore) {
				expectQuery(wh, rows(2))
				store.WriteFailures["doc-1"] = 10
			},
			expectedPhase:    Writing,
			expectedDeleted:  600,
			expectedBatches:  2,
			expectedSessions: 3,
			remaining:        1,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			wh := mocks.NewMockWarehouse(ctrl)
			store := testfixtures.NewMemoryStore()
			seed(store, 600)
			tc.setup(wh, store)

			s := newSyncer(t, testParams(), wh, store)
			report, err := s.Run(jobcontext.Background())
			require.Error(t, err)

			var phaseErr *ErrPhase
			require.ErrorAs(t, err, &phaseErr)
			assert.Equal(t, tc.expectedPhase, phaseErr.Phase)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
			assert.Equal(t, Failed, s.Phase())
			assert.Equal(t, tc.expectedDeleted, report.Deleted)
			assert.Len(t, store.DeleteBatches, tc.expectedBatches)
			assert.Len(t, store.WriteSessions, tc.expectedSessions)
			assert.Len(t, store.Documents(testCollection), tc.remaining)
		})
	}
}

func TestRun_OnlyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	wh := mocks.NewMockWarehouse(ctrl)
	expectQuery(wh, nil)

	s := newSyncer(t, testParams(), wh, testfixtures.NewMemoryStore())
	_, err := s.Run(jobcontext.Background())
	require.NoError(t, err)

	_, err = s.Run(jobcontext.Background())
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := testfixtures.NewMemoryStore()
	seed(store, 501)

	s := newSyncer(t, testParams(), mocks.NewMockWarehouse(ctrl), store)
	report, err := s.Clear(jobcontext.Background())
	require.NoError(t, err)

	assert.Empty(t, store.Documents(testCollection))
	assert.Equal(t, 501, report.Deleted)
	assert.Equal(t, 2, report.DeleteBatches)
	assert.Equal(t, 0, store.BulkWrites)
}

func TestExtract(t *testing.T) {
	ctrl := gomock.NewController(t)
	wh := mocks.NewMockWarehouse(ctrl)
	store := mocks.NewMockStore(ctrl)
	expectQuery(wh, rows(7))

	report, err := newSyncer(t, testParams(), wh, store).Extract(jobcontext.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, report.Rows)
	assert.Equal(t, 0, report.Written)
}

func TestRun_PassesRetryPolicyToStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	wh := mocks.NewMockWarehouse(ctrl)
	store := mocks.NewMockStore(ctrl)
	params := testParams()

	gomock.InOrder(
		store.EXPECT().ListDocumentRefs(gomock.Any(), testCollection).Return(nil, nil),
		wh.EXPECT().RunQuery(gomock.Any(), testQuery).Return(testJob, nil),
		wh.EXPECT().FetchResults(gomock.Any(), testJob).Return(rows(1), nil),
		store.EXPECT().
			BulkWrite(gomock.Any(), testCollection, gomock.Len(1), gomock.Any()).
			DoAndReturn(func(_ interface{}, _ string, docs []docstore.Document, policy retry.Policy) error {
				assert.Equal(t, "doc-0", docs[0].ID)
				assert.Equal(t, params.Retry.MaxAttempts, policy.MaxAttempts)
				return nil
			}),
	)

	_, err := newSyncer(t, params, wh, store).Run(jobcontext.Background())
	require.NoError(t, err)
}

func TestNew_InvalidParams(t *testing.T) {
	tests := map[string]func(p *Params){
		"no collection":          func(p *Params) { p.Collection = "" },
		"no table":               func(p *Params) { p.Table.Table = "" },
		"zero delete batch size": func(p *Params) { p.DeleteBatchSize = 0 },
		"oversized delete batch": func(p *Params) { p.DeleteBatchSize = docstore.MaxBatchSize + 1 },
		"zero write chunk size":  func(p *Params) { p.WriteChunkSize = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			params := testParams()
			mutate(&params)
			_, err := New(params, nil, nil, clock.NewFakePassiveClock(testTime))
			assert.Error(t, err)
		})
	}
}

func TestRun_RepeatedIdsKeepLastRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	wh := mocks.NewMockWarehouse(ctrl)
	store := testfixtures.NewMemoryStore()
	result := make([]warehouse.Row, 0, 12)
	for i := 0; i < 11; i++ {
		result = append(result, warehouse.Row{"id": int64(42), "score": int64(i)})
	}
	result = append(result, warehouse.Row{"score": int64(5)})
	expectQuery(wh, result)

	params := testParams()
	params.Retry = retry.Policy{MaxAttempts: 10, RetryIf: docstore.IsTransient}
	report, err := newSyncer(t, params, wh, store).Run(jobcontext.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]map[string]any{
		"42":     {"id": int64(42), "score": int64(10)},
		"doc-11": {"score": int64(5)},
	}, store.Documents(testCollection))
	assert.Equal(t, [][]string{{"42", "doc-11"}}, store.WriteSessions)
	assert.Equal(t, 12, report.Rows)
}
