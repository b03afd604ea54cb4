package cli

// TabWidth is the width of tabs in formatted output.
const TabWidth = 2

// Process exit codes. Scripts drive rollouts off these, so they are part of
// the CLI contract.
const (
	// ExitOK: requested services are installed and running.
	ExitOK = 0
	// ExitInstallFailed: an install aborted before completing placement.
	ExitInstallFailed = 1
	// ExitUsage: bad arguments or unusable configuration.
	ExitUsage = 2
	// ExitNotRunning: files placed correctly but a service is not active.
	ExitNotRunning = 3
)

// ExitError carries a specific process exit code up to main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit"
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
