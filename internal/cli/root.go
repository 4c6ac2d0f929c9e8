// Package cli wires the engine, the session store and the graph renderers
// into a cobra command tree. The interactive shell under "play" is the main
// entry point; the other commands are one-shot queries and session
// management.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/DevJPM/sh-support/internal/config"
	"github.com/DevJPM/sh-support/internal/store"
)

var (
	cfg config.Config
	log = logrus.New()

	rootCmd = &cobra.Command{
		Use:   "sh-support",
		Short: "Deductive assistant for Secret Hitler",
		Long: `sh-support tracks a running game of Secret Hitler and answers
probability questions about it: role distributions consistent with the
observed claims, exact draw chances for the current shuffle, and a
probability-annotated tree of who must be lying.

Start an interactive session:
  sh-support play --players 7

One-shot deck math needs no session:
  sh-support deck dist 6 11 3`,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	cfg = config.Load()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
}

func openStore() (*store.Store, error) {
	return store.Open(cfg.DatabasePath)
}
