package configuration

import (
	"github.com/pkg/errors"

	commonconfig "github.com/npsdata/bqfirestoresync/internal/common/config"
)

func (c SyncConfiguration) Validate() error {
	if err := commonconfig.Validate(c); err != nil {
		return err
	}
	if c.Source.Table.Dataset == "" || c.Source.Table.Table == "" {
		return errors.New("source.table must name both a dataset and a table")
	}
	if c.Destination.DeleteBatchSize > MaxDeleteBatchSize {
		return errors.Errorf("destination.deleteBatchSize must be at most %d", MaxDeleteBatchSize)
	}
	return errors.WithMessage(c.Logging.Validate(), "invalid logging config")
}
