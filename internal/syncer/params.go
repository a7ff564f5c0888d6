package syncer

import (
	"github.com/pkg/errors"

	"github.com/npsdata/bqfirestoresync/internal/common/retry"
	"github.com/npsdata/bqfirestoresync/internal/docstore"
	"github.com/npsdata/bqfirestoresync/internal/syncer/configuration"
	"github.com/npsdata/bqfirestoresync/internal/warehouse"
)

// Params is everything a Syncer needs to know about a run.
type Params struct {
	// Fully qualified table every row is read from
	Table warehouse.TableRef
	// Collection that is emptied and then repopulated
	Collection      string
	DeleteBatchSize int
	WriteChunkSize  int
	// Policy applied to every bulk write
	Retry retry.Policy
}

// ParamsFromConfig builds Params from config. projectId is used for the source table if its
// reference does not name a project.
func ParamsFromConfig(config configuration.SyncConfiguration, projectId string) Params {
	policy := retry.Policy{
		MaxAttempts:    config.Retry.MaxAttempts,
		InitialBackoff: config.Retry.InitialBackoff,
		MaxBackoff:     config.Retry.MaxBackoff,
		RetryIf:        retry.Always,
	}
	if config.Retry.TransientOnly {
		policy.RetryIf = docstore.IsTransient
	}
	return Params{
		Table:           config.Source.Table.WithDefaultProject(projectId),
		Collection:      config.Destination.Collection,
		DeleteBatchSize: config.Destination.DeleteBatchSize,
		WriteChunkSize:  config.Destination.WriteChunkSize,
		Retry:           policy,
	}
}

func (p Params) validate() error {
	if p.Collection == "" {
		return errors.New("collection must be set")
	}
	if p.Table.Dataset == "" || p.Table.Table == "" {
		return errors.Errorf("table %q must name a dataset and a table", p.Table)
	}
	if p.DeleteBatchSize < 1 || p.DeleteBatchSize > docstore.MaxBatchSize {
		return errors.Errorf("delete batch size must be between 1 and %d, got %d", docstore.MaxBatchSize, p.DeleteBatchSize)
	}
	if p.WriteChunkSize < 1 {
		return errors.Errorf("write chunk size must be positive, got %d", p.WriteChunkSize)
	}
	return nil
}
