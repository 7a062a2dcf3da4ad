package check

// Exit codes form the contract with calling automation and must not
// change. Transport, authentication, parse, and configuration failures
// all map to ExitError before validation is ever attempted.
const (
	ExitAllGood        = 0
	ExitMissingSensors = 1 // count mismatch, in either direction
	ExitOutOfRange     = 2
	ExitError          = 255
)

// Resolve maps a validation result to exactly one exit code. A count
// mismatch outranks range violations: a wrong inventory points at a
// hardware or deployment problem, while out-of-range values may be
// mere drift.
func Resolve(res Result) int {
	if !res.CountOK {
		return ExitMissingSensors
	}
	if len(res.Violations) > 0 {
		return ExitOutOfRange
	}
	return ExitAllGood
}
