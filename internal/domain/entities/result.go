package entities

// VerificationResult is the outcome of verifying one channel's artifacts
// against the local build.
type VerificationResult struct {
	Channel string
	Matched bool
	// Err records the fetch or compare failure that produced a
	// non-matching result, nil for a genuine content mismatch.
	Err error
}

// RunReport aggregates per-channel results and the warnings collected along
// the way into the final outcome of a verification run.
type RunReport struct {
	Version  string
	Results  []VerificationResult
	Warnings []string
	// SigningRequested and SigningErr describe the optional signing phase.
	// A signing failure never changes the verification outcome.
	SigningRequested bool
	SigningSkipped   bool
	SigningErr       error
}

// AddWarning records a warning line. Warnings are reported at the end of the
// run and never affect the exit status.
func (r *RunReport) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AllMatched reports whether every attempted channel's artifacts were
// byte-identical to the local build. Channels that were never attempted
// (e.g. skipped via configuration) do not participate.
func (r *RunReport) AllMatched() bool {
	for _, res := range r.Results {
		if !res.Matched {
			return false
		}
	}

	return true
}

// ExitCode maps the aggregated outcome to the process exit status: 0 only if
// every attempted channel matched.
func (r *RunReport) ExitCode() int {
	if r.AllMatched() {
		return 0
	}

	return 1
}
