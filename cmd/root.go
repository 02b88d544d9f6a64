package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/josephlewis42/minish/core/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(afero.NewOsFs(), cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minish",
	Short: "A minimal interactive shell.",
	Long: `A minimal interactive shell.

Each line read from standard input is split on whitespace and run as a
command found on $PATH. The built-ins exit and env are handled by the shell.
The shell stops at end of input or when exit is run.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return runShell(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file, or directory containing config.yaml")
}
