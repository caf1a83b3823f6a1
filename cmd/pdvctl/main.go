// Command pdvctl runs back-office maintenance jobs against the same store
// the API uses: schema migrations, monthly bill generation and report
// exports.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
