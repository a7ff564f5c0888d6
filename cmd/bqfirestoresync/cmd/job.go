package cmd

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"

	"github.com/npsdata/bqfirestoresync/internal/common/app"
	"github.com/npsdata/bqfirestoresync/internal/common/credentials"
	"github.com/npsdata/bqfirestoresync/internal/common/jobcontext"
	"github.com/npsdata/bqfirestoresync/internal/common/logging"
	"github.com/npsdata/bqfirestoresync/internal/docstore"
	"github.com/npsdata/bqfirestoresync/internal/syncer"
	"github.com/npsdata/bqfirestoresync/internal/syncer/configuration"
	"github.com/npsdata/bqfirestoresync/internal/warehouse"
)

// action is the part of a sync a command performs.
type action func(s *syncer.Syncer, ctx *jobcontext.Context) (*syncer.Report, error)

// runJob loads the configuration, connects to both ends and performs action. Any failure is logged
// here, so the returned error only serves to set the exit code.
func runJob(cmd *cobra.Command, timeout time.Duration, do action) (*syncer.Report, configuration.SyncConfiguration, error) {
	config, err := loadConfig(cmd)
	if err != nil {
		log.WithError(err).Error("Invalid configuration")
		return nil, config, err
	}

	root := jobcontext.New(context.Background(), log.WithField("command", cmd.Name()))
	ctx, cancel := jobcontext.WithTimeout(app.CreateContextWithShutdown(root), timeout)
	defer cancel()

	s, closeClients, err := newSyncer(ctx, config)
	if err != nil {
		logging.WithStacktrace(ctx.Log, err).Error("Failed to set up sync")
		return nil, config, err
	}
	defer closeClients()

	report, err := do(s, ctx)
	if err != nil {
		logger := ctx.Log.WithField("runId", s.RunId())
		var phaseErr *syncer.ErrPhase
		if errors.As(err, &phaseErr) {
			logger = logger.WithField("phase", phaseErr.Phase.String())
		}
		logging.WithStacktrace(logger, err).Error("Sync failed")
		return report, config, err
	}
	return report, config, nil
}

// connect opens the clients for both ends of a sync and returns a func that closes them.
var connect = func(ctx context.Context, sa *credentials.ServiceAccount, config configuration.SyncConfiguration) (warehouse.Warehouse, docstore.Store, func(), error) {
	source, err := warehouse.NewBigQueryWarehouse(ctx, sa.ProjectId, config.Source.Location, sa.ClientOptions()...)
	if err != nil {
		return nil, nil, nil, err
	}
	destination, err := docstore.NewFirestoreStore(ctx, sa.ProjectId, sa.ClientOptions()...)
	if err != nil {
		closeLogged(source.Close, "bigquery")
		return nil, nil, nil, err
	}
	return source, destination, func() {
		closeLogged(source.Close, "bigquery")
		closeLogged(destination.Close, "firestore")
	}, nil
}

func newSyncer(ctx *jobcontext.Context, config configuration.SyncConfiguration) (*syncer.Syncer, func(), error) {
	sa, err := credentials.Load(config.CredentialsFile)
	if err != nil {
		return nil, nil, err
	}
	params := syncer.ParamsFromConfig(config, sa.ProjectId)
	ctx.Log.Infof("Syncing %s into collection %s of project %s", params.Table, params.Collection, sa.ProjectId)

	source, destination, closeClients, err := connect(ctx, sa, config)
	if err != nil {
		return nil, nil, err
	}
	s, err := syncer.New(params, source, destination, clock.RealClock{})
	if err != nil {
		closeClients()
		return nil, nil, err
	}
	return s, closeClients, nil
}

func closeLogged(closeFn func() error, name string) {
	if err := closeFn(); err != nil {
		log.WithError(err).Warnf("Error closing %s client", name)
	}
}
