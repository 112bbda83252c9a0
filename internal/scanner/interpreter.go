package scanner

import (
	"strings"

	"github.com/nicholasadamou/avscan-api/internal/domain"
)

// Fallback report texts used when the engine produced no output for the
// corresponding verdict.
const (
	cleanFallback    = "File is clean - no threats detected"
	infectedFallback = "Virus detected"
	unknownFailure   = "Unknown error"
)

// Interpret maps a finished invocation onto a scan outcome following the
// clamscan exit-code convention: 0 clean, 1 threat found, anything else an
// operational failure. Exit code 1 is the engine's designated "virus found"
// signal and must never be treated as an error.
func Interpret(inv *domain.Invocation) domain.Outcome {
	if inv.Err == nil {
		switch inv.ExitCode {
		case 0:
			return domain.Clean(firstNonEmpty(strings.TrimSpace(inv.Stdout), cleanFallback))
		case 1:
			return domain.Infected(firstNonEmpty(strings.TrimSpace(inv.Stdout), infectedFallback))
		}
	}

	details := strings.TrimSpace(inv.Stderr)
	if details == "" && inv.Err != nil {
		details = inv.Err.Error()
	}
	if details == "" {
		details = unknownFailure
	}

	return domain.Failed(details)
}

func firstNonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
