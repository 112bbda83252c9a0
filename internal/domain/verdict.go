package domain

type Verdict string

const (
	VerdictClean    Verdict = "clean"
	VerdictInfected Verdict = "infected"
	VerdictFailed   Verdict = "failed"
)
