package scanner

import (
	"fmt"
	"strings"
)

// scanFlags is the fixed, non-configurable flag set passed to clamscan.
// Together they guarantee that a clean file produces empty stdout, which the
// interpreter relies on.
var scanFlags = []string{"--no-summary", "--infected", "--suppress-ok-results"}

// Args builds the clamscan argument vector for path. Paths containing a
// double quote are rejected rather than escaped; the upload store generates
// names from a controlled character set, so this only trips on misuse.
func Args(path string) ([]string, error) {
	if strings.Contains(path, `"`) {
		return nil, fmt.Errorf("path %q contains a double quote", path)
	}

	args := make([]string, 0, len(scanFlags)+1)
	args = append(args, scanFlags...)
	args = append(args, path)

	return args, nil
}

// CommandLine renders the full command for logging and the info endpoint,
// with the path placeholder quoted the way a shell invocation would be.
func CommandLine(enginePath string) string {
	return fmt.Sprintf("%s %s \"<path>\"", enginePath, strings.Join(scanFlags, " "))
}
