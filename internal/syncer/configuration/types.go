package configuration

import (
	"time"

	"github.com/npsdata/bqfirestoresync/internal/common/logging"
	"github.com/npsdata/bqfirestoresync/internal/docstore"
	"github.com/npsdata/bqfirestoresync/internal/warehouse"
)

type SyncConfiguration struct {
	// Path to the service account key the job authenticates with
	CredentialsFile string `validate:"required"`
	Source          SourceConfig
	Destination     DestinationConfig
	Retry           RetryConfig
	Logging         logging.Config
}

type SourceConfig struct {
	// Table every row is read from. The project may be omitted, in which case the
	// project of the service account is used.
	Table warehouse.TableRef
	// Location to run the query in, e.g. EU. Optional
	Location string
}

type DestinationConfig struct {
	// Collection that is emptied and then repopulated
	Collection string `validate:"required"`
	// Number of documents deleted per commit. Bounded by what Firestore accepts in one commit
	DeleteBatchSize int `validate:"required,gt=0,lte=500"`
	// Maximum number of documents written per bulk write session
	WriteChunkSize int `validate:"required,gt=0"`
}

type RetryConfig struct {
	// Number of times a document write is attempted before the run fails
	MaxAttempts uint `validate:"required,gte=1"`
	// Wait before the first retry. Doubles after each further failure
	InitialBackoff time.Duration `validate:"gte=0"`
	// Upper bound on the wait between retries
	MaxBackoff time.Duration `validate:"gtefield=InitialBackoff"`
	// Only retry failures Firestore reports as temporary, rather than every failure
	TransientOnly bool
}

// MaxDeleteBatchSize is the upper bound on DestinationConfig.DeleteBatchSize.
const MaxDeleteBatchSize = docstore.MaxBatchSize
