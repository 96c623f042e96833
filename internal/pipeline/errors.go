package pipeline

import "github.com/infomate/veracity/internal/model"

// InputError rejects a request before any I/O happens.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// FetchError wraps a failure to acquire rendered HTML; it maps to a server
// error since it reflects infrastructure, not request content.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch failed: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError reports that the page was fetched but yielded too little
// article content to score. Partial carries whatever facts were extracted
// so clients can diagnose which field failed.
type ExtractionError struct {
	Message string
	Partial *model.Analysis
}

func (e *ExtractionError) Error() string { return e.Message }
