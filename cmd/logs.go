package cmd

import (
	"os"
	"time"

	"github.com/josephlewis42/minish/core/ttylog"
	"github.com/spf13/cobra"
)

var idleTimeLimit time.Duration

var recordingCmd = &cobra.Command{
	Use:     "recording",
	Aliases: []string{"rec"},
	Short:   "Explore session recordings.",
}

// playCommand replays a recording with its original timing.
var playCommand = &cobra.Command{
	Use:   "play FILE",
	Short: "Replay a recorded session in the terminal.",
	Long:  `Plays a recorded session back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		sink = ttylog.NewRealTimePlayback(idleTimeLimit, sink)
		return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), sink)
	},
}

// catCommand prints a recording without pauses.
var catCommand = &cobra.Command{
	Use:   "cat FILE",
	Short: "Print full output of a recorded session to a terminal.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), sink)
	},
}

func init() {
	rootCmd.AddCommand(recordingCmd)
	recordingCmd.AddCommand(playCommand)
	recordingCmd.AddCommand(catCommand)

	playCommand.Flags().DurationVarP(&idleTimeLimit, "idle-time-limit", "i", 2*time.Second, "Maximum time output can be idle. (e.g. 3s, 2m, 100ms)")
}
