// Command physres resolves the physical attack phase of a scenario and
// prints, and optionally archives, the reports it produces.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
