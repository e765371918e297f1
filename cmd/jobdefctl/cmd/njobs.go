package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mu2e/jobdef/internal/jobdefctl"
)

func njobsCmd() *cobra.Command {
	a := jobdefctl.New()
	cmd := &cobra.Command{
		Use:   "njobs <archive>",
		Short: "Print the number of jobs in a job set",
		Long:  `Print the number of jobs in a job set. 0 means the job set is unlimited.`,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.NumJobs(args[0])
		},
	}
	return cmd
}
