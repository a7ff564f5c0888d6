package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npsdata/bqfirestoresync/internal/common/jobcontext"
	"github.com/npsdata/bqfirestoresync/internal/syncer"
)

func queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query",
		Short: "Runs the query and reports what a sync would write, leaving the collection untouched",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, config, err := runJob(cmd, 0, func(s *syncer.Syncer, ctx *jobcontext.Context) (*syncer.Report, error) {
				return s.Extract(ctx)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows would be written to %s in %d chunks\n",
				report.Rows, config.Destination.Collection, chunks(report.Rows, config.Destination.WriteChunkSize))
			return nil
		},
	}
}

func chunks(rows int, chunkSize int) int {
	return (rows + chunkSize - 1) / chunkSize
}
