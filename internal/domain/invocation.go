package domain

// Invocation is the raw result of one scanner process execution.
type Invocation struct {
	ExitCode int    // -1 when the process could not be started
	Stdout   string
	Stderr   string
	Err      error // filled when the process could not be started or was killed
}
