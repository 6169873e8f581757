package dashboard

import "errors"

// Error taxonomy for the data-binding layer. Fetch failures are recovered
// locally (previous snapshot retained, error logged); write failures are
// surfaced to the command caller with no local mutation.
var (
	ErrUnauthenticated = errors.New("write requires an authenticated caller")
	ErrWriteFailed     = errors.New("remote store rejected the write")
	ErrFetchFailed     = errors.New("collection fetch failed")
)
