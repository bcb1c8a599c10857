// Command blockcopy performs a high-throughput, block-level copy of a
// contiguous byte range from a source device or snapshot to a
// destination device or partition.
package main

import (
	"fmt"
	"os"

	"github.com/logesh11exe/BlockCopier/cmd/blockcopy/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
