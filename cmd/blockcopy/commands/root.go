package commands

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "blockcopy",
	Short: "Block-level copy of a source device or snapshot to a destination device",
	Long: `blockcopy copies a contiguous byte range from a source device or
snapshot to a destination device or partition, bypassing the OS file
cache and keeping multiple asynchronous reads and writes in flight to
saturate disk bandwidth.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(copyCmd)
}
