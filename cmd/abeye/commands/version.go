package commands

import (
	"github.com/spf13/cobra"

	"github.com/oeb25/abeye"
	"github.com/oeb25/abeye/internal/cliutil"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	var build bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the abeye version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if build {
				cliutil.Writef(cmd.OutOrStdout(), "%s\n", abeye.BuildInfo())
				return nil
			}
			cliutil.Writef(cmd.OutOrStdout(), "abeye %s\n", abeye.Version())
			return nil
		},
	}
	cmd.Flags().BoolVar(&build, "build", false, "print commit and Go version too")
	return cmd
}
