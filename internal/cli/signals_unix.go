//go:build unix

package cli

import (
	"os"

	"golang.org/x/sys/unix"
)

// shutdownSignals lists the signals that end long-running commands.
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt, unix.SIGTERM, unix.SIGHUP}
}
