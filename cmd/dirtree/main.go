// Command dirtree drives an in-memory directory tree from the shell,
// one process invocation at a time — handy for smoke-testing the
// library and, via the stress subcommand, for watching the
// concurrency protocol under real contention.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	debug bool
	log   = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "dirtree",
	Short: "Exercise an in-memory concurrent directory tree",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "trace every operation")
	rootCmd.AddCommand(listCmd, createCmd, removeCmd, moveCmd, stressCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
