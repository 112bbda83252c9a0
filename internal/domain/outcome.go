package domain

// Outcome is the interpreted result of a scan request. RawOutput carries the
// engine's verbatim report for clean and infected verdicts; Details carries
// the diagnostic text for failed ones.
type Outcome struct {
	Verdict   Verdict
	RawOutput string
	Details   string
}

func Clean(rawOutput string) Outcome {
	return Outcome{Verdict: VerdictClean, RawOutput: rawOutput}
}

func Infected(rawOutput string) Outcome {
	return Outcome{Verdict: VerdictInfected, RawOutput: rawOutput}
}

func Failed(details string) Outcome {
	return Outcome{Verdict: VerdictFailed, Details: details}
}
