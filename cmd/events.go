package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/josephlewis42/minish/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the session event log.",
}

var reportCommand = &cobra.Command{
	Use:   "report [FILE]",
	Short: "Show a report of events from FILE or the configured event_log.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := openEventLog(args)
		if err != nil {
			return err
		}
		defer fd.Close()

		var report logger.Report
		if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func openEventLog(args []string) (io.ReadCloser, error) {
	if len(args) > 0 {
		return os.Open(args[0])
	}

	config, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if config.EventLog == "" {
		return nil, errors.New("no event log given and event_log is not configured")
	}
	return config.ReadEventLog()
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
}
