package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/npsdata/bqfirestoresync/internal/common"
	commonconfig "github.com/npsdata/bqfirestoresync/internal/common/config"
	"github.com/npsdata/bqfirestoresync/internal/common/logging"
	"github.com/npsdata/bqfirestoresync/internal/syncer/configuration"
)

const (
	CustomConfigLocation string = "config"
	CredentialsFile      string = "credentials"
)

// Directory holding the base config.yaml
var defaultConfigPath = "./config/bqfirestoresync"

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bqfirestoresync",
		SilenceUsage:  true,
		SilenceErrors: true,
		Short:         "Replaces a Firestore collection with the contents of a BigQuery table",
	}

	cmd.PersistentFlags().StringSlice(
		CustomConfigLocation,
		[]string{},
		"Fully qualified path to application configuration file (for multiple config files repeat this arg or separate paths with commas)")
	cmd.PersistentFlags().String(
		CredentialsFile,
		"",
		"Path to the service account key file. Overrides credentialsFile from the config")

	cmd.AddCommand(
		runCmd(),
		clearCmd(),
		queryCmd(),
	)

	return cmd
}

func loadConfig(cmd *cobra.Command) (configuration.SyncConfiguration, error) {
	var config configuration.SyncConfiguration
	userSpecifiedConfigs, err := cmd.Flags().GetStringSlice(CustomConfigLocation)
	if err != nil {
		return config, errors.WithStack(err)
	}

	err = common.LoadConfig(&config, defaultConfigPath, userSpecifiedConfigs,
		common.FlagBinding{Key: "credentialsFile", Flag: cmd.Flags().Lookup(CredentialsFile)})
	if err != nil {
		return config, err
	}

	err = config.Validate()
	if err != nil {
		commonconfig.LogValidationErrors(err)
		return config, err
	}
	return config, logging.Configure(config.Logging)
}
