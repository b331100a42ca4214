package cmd

import "os"

// shutdownSignals lists the OS signals that trigger graceful shutdown.
// signals_unix.go adds SIGTERM on non-Windows platforms.
var shutdownSignals = []os.Signal{os.Interrupt}
