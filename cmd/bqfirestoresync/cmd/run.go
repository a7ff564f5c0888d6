package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/npsdata/bqfirestoresync/internal/common/jobcontext"
	"github.com/npsdata/bqfirestoresync/internal/syncer"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Empties the collection and repopulates it from the table",
		RunE:  runSync,
	}
	cmd.Flags().Duration(
		"timeout",
		0,
		"Duration after which the sync will fail if it has not completed. Zero means no limit")
	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return errors.WithStack(err)
	}
	_, _, err = runJob(cmd, timeout, func(s *syncer.Syncer, ctx *jobcontext.Context) (*syncer.Report, error) {
		return s.Run(ctx)
	})
	return err
}
