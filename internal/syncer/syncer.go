package syncer

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/npsdata/bqfirestoresync/internal/common/jobcontext"
	"github.com/npsdata/bqfirestoresync/internal/common/slices"
	"github.com/npsdata/bqfirestoresync/internal/docstore"
	"github.com/npsdata/bqfirestoresync/internal/warehouse"
)

// Syncer replaces the contents of a document collection with the rows of a warehouse table.
// A Syncer performs a single run; create a new one for every run.
type Syncer struct {
	params    Params
	warehouse warehouse.Warehouse
	store     docstore.Store
	clock     clock.PassiveClock
	runId     string

	mu    sync.Mutex
	phase Phase
}

func New(params Params, source warehouse.Warehouse, destination docstore.Store, clk clock.PassiveClock) (*Syncer, error) {
	if err := params.validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid sync parameters")
	}
	return &Syncer{
		params:    params,
		warehouse: source,
		store:     destination,
		clock:     clk,
		runId:     uuid.NewString(),
		phase:     Idle,
	}, nil
}

// RunId identifies the run in logs and in its Report.
func (s *Syncer) RunId() string {
	return s.runId
}

// Phase returns the phase the run is currently in.
func (s *Syncer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Run empties the collection, queries the table and writes every row to the collection as a document.
// The phases run strictly one after the other and the first error ends the run. Documents deleted or
// written before a failure stay deleted or written. A table with no rows leaves the collection empty.
func (s *Syncer) Run(ctx *jobcontext.Context) (*Report, error) {
	return s.execute(ctx, func(ctx *jobcontext.Context, report *Report) error {
		if err := s.clear(ctx, report); err != nil {
			return err
		}
		rows, err := s.extract(ctx, report)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			ctx.Log.Info("Query returned no rows; nothing to write")
			return nil
		}
		return s.write(ctx, rows, report)
	})
}

// Clear only empties the collection.
func (s *Syncer) Clear(ctx *jobcontext.Context) (*Report, error) {
	return s.execute(ctx, func(ctx *jobcontext.Context, report *Report) error {
		return s.clear(ctx, report)
	})
}

// Extract only runs the query. The collection is left untouched and the rows are discarded once counted.
func (s *Syncer) Extract(ctx *jobcontext.Context) (*Report, error) {
	return s.execute(ctx, func(ctx *jobcontext.Context, report *Report) error {
		_, err := s.extract(ctx, report)
		return err
	})
}

func (s *Syncer) execute(ctx *jobcontext.Context, steps func(*jobcontext.Context, *Report) error) (*Report, error) {
	if phase := s.Phase(); phase != Idle {
		return nil, errors.Errorf("run %s has already started and is %s", s.runId, phase)
	}
	ctx = jobcontext.WithLogFields(ctx, logrus.Fields{
		"runId":      s.runId,
		"collection": s.params.Collection,
	})
	start := s.clock.Now()
	report := &Report{RunId: s.runId}
	err := steps(ctx, report)
	report.Elapsed = s.clock.Since(start)
	if err != nil {
		failedIn := s.transition(ctx, Failed)
		return report, &ErrPhase{Phase: failedIn, Err: err}
	}
	s.transition(ctx, Done)
	ctx.Log.Infof("Sync finished in %s: deleted %d documents, wrote %d of %d rows", report.Elapsed, report.Deleted, report.Written, report.Rows)
	return report, nil
}

// transition moves the run to next and returns the phase it was in.
func (s *Syncer) transition(ctx *jobcontext.Context, next Phase) Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.phase
	s.phase = next
	ctx.Log.Debugf("Phase %s -> %s", prev, next)
	return prev
}

func (s *Syncer) clear(ctx *jobcontext.Context, report *Report) error {
	s.transition(ctx, Clearing)
	ctx.Log.Infof("Clearing collection %s", s.params.Collection)
	refs, err := s.store.ListDocumentRefs(ctx, s.params.Collection)
	if err != nil {
		return errors.WithMessagef(err, "error listing documents in %s", s.params.Collection)
	}
	if len(refs) == 0 {
		ctx.Log.Infof("Collection %s is already empty", s.params.Collection)
		return nil
	}
	batches := slices.Chunk(refs, s.params.DeleteBatchSize)
	ctx.Log.Infof("Deleting %d documents in %d batches", len(refs), len(batches))
	for i, batch := range batches {
		batchStart := s.clock.Now()
		if err := s.store.DeleteBatch(ctx, batch); err != nil {
			return errors.WithMessagef(err, "error deleting batch %d of %d", i+1, len(batches))
		}
		report.DeleteBatches++
		report.Deleted += len(batch)
		ctx.Log.Infof("Deleted batch %d of %d (%d documents) in %s", i+1, len(batches), len(batch), s.clock.Since(batchStart))
	}
	ctx.Log.Infof("Deleted %d documents from %s", report.Deleted, s.params.Collection)
	return nil
}

func (s *Syncer) extract(ctx *jobcontext.Context, report *Report) ([]warehouse.Row, error) {
	s.transition(ctx, Querying)
	sql := warehouse.SelectAllQuery(s.params.Table)
	ctx.Log.Infof("Running query: %s", sql)
	job, err := s.warehouse.RunQuery(ctx, sql)
	if err != nil {
		return nil, errors.WithMessagef(err, "error starting query on %s", s.params.Table)
	}
	ctx.Log.WithField("jobId", job.ID).Infof("Waiting for query job to complete")
	rows, err := s.warehouse.FetchResults(ctx, job)
	if err != nil {
		return nil, errors.WithMessagef(err, "error fetching results of job %s", job.ID)
	}
	report.Rows = len(rows)
	ctx.Log.Infof("Query returned %d rows", len(rows))
	return rows, nil
}

func (s *Syncer) write(ctx *jobcontext.Context, rows []warehouse.Row, report *Report) error {
	s.transition(ctx, Writing)
	chunks := slices.Chunk(rows, s.params.WriteChunkSize)
	ctx.Log.Infof("Writing %d documents in %d chunks of up to %d", len(rows), len(chunks), s.params.WriteChunkSize)
	for i, chunk := range chunks {
		chunkStart := s.clock.Now()
		docs := BuildDocuments(chunk, i*s.params.WriteChunkSize)
		if err := s.store.BulkWrite(ctx, s.params.Collection, docs, s.params.Retry); err != nil {
			return errors.WithMessagef(err, "error writing chunk %d of %d", i+1, len(chunks))
		}
		report.Chunks++
		report.Written += len(docs)
		ctx.Log.Infof("Wrote chunk %d of %d (%s) in %s", i+1, len(chunks), progress(report.Written, len(rows)), s.clock.Since(chunkStart))
	}
	return nil
}

func progress(done, total int) string {
	return fmt.Sprintf("%d/%d documents", done, total)
}
