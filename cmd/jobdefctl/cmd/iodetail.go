package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mu2e/jobdef/internal/jobdefctl"
)

func iodetailCmd() *cobra.Command {
	a := jobdefctl.New()
	cmd := &cobra.Command{
		Use:   "iodetail <archive>",
		Short: "Print where one job reads its inputs from and the files it writes",
		Long: `Print the files one job reads, as the paths they are staged at, followed by the files it writes.

Lines are prefixed with "in" or "out" and a tab.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := cmd.Flags().GetInt("index")
			if err != nil {
				return err
			}
			location, err := cmd.Flags().GetString("location")
			if err != nil {
				return err
			}
			protocol, err := cmd.Flags().GetString("protocol")
			if err != nil {
				return err
			}
			return a.IODetail(args[0], index, location, protocol)
		},
	}
	addIndexFlag(cmd)
	cmd.Flags().String("location", "", "Where inputs are stored: disk, tape, scratch or dir:<path> (default from config)")
	cmd.Flags().String("protocol", "", "How inputs are read: file or root (default from config)")
	return cmd
}
