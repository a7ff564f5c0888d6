package warehouse

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// BigQueryWarehouse is a Warehouse backed by BigQuery.
type BigQueryWarehouse struct {
	client *bigquery.Client
	// Location the queries run in. Empty lets BigQuery work it out from the referenced tables.
	location string
}

func NewBigQueryWarehouse(ctx context.Context, projectId string, location string, opts ...option.ClientOption) (*BigQueryWarehouse, error) {
	client, err := bigquery.NewClient(ctx, projectId, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating bigquery client for project %s", projectId)
	}
	return &BigQueryWarehouse{client: client, location: location}, nil
}

func (w *BigQueryWarehouse) RunQuery(ctx context.Context, sql string) (*QueryJob, error) {
	q := w.client.Query(sql)
	q.Location = w.location
	job, err := q.Run(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error submitting query")
	}
	log.Debugf("Submitted query job %s", job.ID())
	return &QueryJob{ID: job.ID(), Location: job.Location(), job: job}, nil
}

func (w *BigQueryWarehouse) FetchResults(ctx context.Context, job *QueryJob) ([]Row, error) {
	if job == nil || job.job == nil {
		return nil, errors.New("query job was not submitted by this warehouse")
	}
	status, err := job.job.Wait(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "error waiting for query job %s", job.ID)
	}
	if err := status.Err(); err != nil {
		return nil, errors.Wrapf(err, "query job %s failed", job.ID)
	}
	it, err := job.job.Read(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading results of query job %s", job.ID)
	}
	rows := make([]Row, 0, it.TotalRows)
	for {
		var values map[string]bigquery.Value
		err := it.Next(&values)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "error reading row %d of query job %s", len(rows), job.ID)
		}
		rows = append(rows, convertRow(values, it.Schema))
	}
	return rows, nil
}

func (w *BigQueryWarehouse) Close() error {
	return w.client.Close()
}
