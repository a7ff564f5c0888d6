package warehouse

import (
	"context"

	"cloud.google.com/go/bigquery"
)

// Row is a single result row keyed by column name. Values are passed on as they were read,
// apart from the conversions done by convertRow.
type Row map[string]any

// QueryJob is a handle to a query that has been submitted to the warehouse.
type QueryJob struct {
	ID       string
	Location string
	job      *bigquery.Job
}

// Warehouse runs queries against the source data warehouse.
type Warehouse interface {
	// RunQuery submits sql for asynchronous execution.
	RunQuery(ctx context.Context, sql string) (*QueryJob, error)
	// FetchResults waits for job to finish and returns every row it produced.
	// The whole result set is held in memory.
	FetchResults(ctx context.Context, job *QueryJob) ([]Row, error)
}
