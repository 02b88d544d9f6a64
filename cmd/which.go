package cmd

import (
	"fmt"
	"os"

	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/cobra"
)

// whichCmd resolves commands the same way the shell does.
var whichCmd = &cobra.Command{
	Use:   "which COMMAND...",
	Short: "Locate a command the way the shell would.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		env := vos.NewMapEnvFrom(vos.EnvironFunc(os.Environ))
		return which(cmd, vos.NewOsFs(), env, args)
	},
}

// which prints the resolved path of each name. Every name is tried even if
// an earlier one is missing.
func which(cmd *cobra.Command, fsys vos.VFS, env vos.VEnv, names []string) error {
	missing := 0
	for _, name := range names {
		path, err := vos.LookPath(fsys, env, name)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", name, err)
			missing++
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d commands not found", missing, len(names))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(whichCmd)
}
