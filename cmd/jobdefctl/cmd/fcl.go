package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mu2e/jobdef/internal/jobdefctl"
)

func fclCmd() *cobra.Command {
	a := jobdefctl.New()
	cmd := &cobra.Command{
		Use:   "fcl <archive>",
		Short: "Print the configuration of one job",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := cmd.Flags().GetInt("index")
			if err != nil {
				return err
			}
			return a.FCL(args[0], index)
		},
	}
	addIndexFlag(cmd)
	return cmd
}
