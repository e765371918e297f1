package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mu2e/jobdef/internal/common/config"
	"github.com/mu2e/jobdef/internal/common/logging"
	"github.com/mu2e/jobdef/internal/jobdefctl"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobdefctl",
		Short: "jobdefctl inspects and creates Mu2e job-set archives.",
		Long: `jobdefctl answers questions about the jobs of a job set: how many there are, what each reads and
writes, and which job has a given sequencer or reads a given file.

Archives are named by path, or by file name relative to the configured archive directory.`,
		// Errors are logged and turned into exit codes by main.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().String("config", "", "config file (default is $HOME/.jobdefctl.yaml)")
	cmd.PersistentFlags().String("logLevel", "info", "log level: trace, debug, info, warn or error")
	viper.BindPFlag("logLevel", cmd.PersistentFlags().Lookup("logLevel"))
	cmd.PersistentFlags().String("archiveDir", "", "directory to find archives in when they are not given as paths")
	viper.BindPFlag("archiveDir", cmd.PersistentFlags().Lookup("archiveDir"))

	cmd.AddCommand(
		njobsCmd(),
		datasetsCmd(),
		indexCmd(),
		planCmd(),
		fclCmd(),
		iodetailCmd(),
		createCmd(),
		versionCmd(),
	)

	return cmd
}

// initParams loads configuration into the app, which then writes to the command's output.
func initParams(cmd *cobra.Command, app *jobdefctl.App) error {
	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	c, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	if err := logging.SetLevel(c.LogLevel); err != nil {
		return err
	}
	app.Params.Configure(c)
	app.Out = cmd.OutOrStdout()
	return nil
}
