package cmd

import (
	"fmt"

	"github.com/josephlewis42/minish/core/shell"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the commands the shell handles itself.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, v := range shell.BuiltinNames() {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
