package scanner_test

import (
	"errors"
	"testing"

	"github.com/nicholasadamou/avscan-api/internal/domain"
	"github.com/nicholasadamou/avscan-api/internal/scanner"
	"github.com/stretchr/testify/assert"
)

func TestInterpret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		inv  *domain.Invocation
		want domain.Outcome
	}{
		{
			name: "clean with empty stdout",
			inv:  &domain.Invocation{ExitCode: 0},
			want: domain.Clean("File is clean - no threats detected"),
		},
		{
			name: "clean with engine output",
			inv:  &domain.Invocation{ExitCode: 0, Stdout: "scan notes\n"},
			want: domain.Clean("scan notes"),
		},
		{
			name: "infected with report",
			inv:  &domain.Invocation{ExitCode: 1, Stdout: "b.exe: Eicar-Test-Signature FOUND\n"},
			want: domain.Infected("b.exe: Eicar-Test-Signature FOUND"),
		},
		{
			name: "infected with empty stdout",
			inv:  &domain.Invocation{ExitCode: 1},
			want: domain.Infected("Virus detected"),
		},
		{
			name: "engine error with stderr",
			inv:  &domain.Invocation{ExitCode: 2, Stderr: "ERROR: Can't access database directory\n"},
			want: domain.Failed("ERROR: Can't access database directory"),
		},
		{
			name: "engine error with no output at all",
			inv:  &domain.Invocation{ExitCode: 2},
			want: domain.Failed("Unknown error"),
		},
		{
			name: "spawn failure uses error message",
			inv:  &domain.Invocation{ExitCode: -1, Err: errors.New(`exec: "clamscan": executable file not found in $PATH`)},
			want: domain.Failed(`exec: "clamscan": executable file not found in $PATH`),
		},
		{
			name: "spawn failure prefers stderr over error",
			inv:  &domain.Invocation{ExitCode: -1, Stderr: "permission denied\n", Err: errors.New("fork failed")},
			want: domain.Failed("permission denied"),
		},
		{
			name: "killed process fails even with exit code 1",
			inv:  &domain.Invocation{ExitCode: 1, Err: errors.New("scanner terminated: context deadline exceeded")},
			want: domain.Failed("scanner terminated: context deadline exceeded"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, scanner.Interpret(tt.inv))
		})
	}
}
