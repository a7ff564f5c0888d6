package cmd

import (
	"github.com/spf13/cobra"

	"github.com/npsdata/bqfirestoresync/internal/common/jobcontext"
	"github.com/npsdata/bqfirestoresync/internal/syncer"
)

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Deletes every document in the collection without repopulating it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, err := runJob(cmd, 0, func(s *syncer.Syncer, ctx *jobcontext.Context) (*syncer.Report, error) {
				return s.Clear(ctx)
			})
			return err
		},
	}
}
