// Command accordcore is a cobra-based CLI for the dealiasing/superobing
// core, structured the way spatialmodel-inmap's cmd/inmap wraps its
// inmaputil.Root command: a root command with a persistent --config flag
// and one subcommand per operation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "accordcore",
	Short: "Doppler dealiasing and superobing core for OPERA ODIM-H5 polar volumes.",
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML settings file (defaults are used if omitted)")
	rootCmd.AddCommand(processCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
