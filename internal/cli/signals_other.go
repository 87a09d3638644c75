//go:build !unix

package cli

import "os"

// shutdownSignals lists the signals that end long-running commands.
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
