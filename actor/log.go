package actor

import "github.com/btcsuite/btclog/v2"

// Subsystem is the four-letter tag this package's logger identifies
// itself with, following the lnd subsystem-logger convention.
const Subsystem = "ACTR"

// log is the package-wide logger. It defaults to a disabled logger so
// importing this package is silent until a caller opts in with
// UseLogger, matching btclog's standard bootstrapping idiom.
var log = btclog.Disabled

// UseLogger installs logger, unchanged, as the package's logger; callers
// create it under the Subsystem tag themselves. Call this once during
// application startup, before spawning any engine.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// DisableLog disables all logging output from this package.
func DisableLog() {
	log = btclog.Disabled
}
