package domain

// Upload describes a single uploaded file persisted to the temporary store.
// OriginalName and MimeType come from the client and are display-only; the
// scan pipeline keys everything off Path, which the store generates itself.
type Upload struct {
	Path         string
	OriginalName string
	MimeType     string
	Size         int64
}
