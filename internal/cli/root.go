// Package cli defines the swiftserve command line.
package cli

import (
	"fmt"
	"os"

	"github.com/corray333/swiftserve/internal/app"
	"github.com/corray333/swiftserve/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Running the root command serves the API.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	serve := func(*cobra.Command, []string) {
		config.MustInit(cfgFile)
		app.MustNewApp().Run()
	}

	root := &cobra.Command{
		Use:   "swiftserve",
		Short: "Just-in-time meal ordering service",
		Long: `swiftserve books meals against a restaurant's preparation timeline so the
food is ready when the consumer arrives, and drives every order through its
lifecycle from booking to pickup.`,
		Run: serve,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or /etc/swiftserve/config.yaml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP and gRPC servers with the lifecycle worker",
			Args:  cobra.NoArgs,
			Run:   serve,
		},
		newEvaluateCmd(),
		newClassifyCmd(),
	)

	return root
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
