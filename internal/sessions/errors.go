package sessions

import "errors"

var (
	// ErrExtractionFailed means no text could be recovered from a document.
	ErrExtractionFailed = errors.New("no text could be extracted from the document")
	// ErrSessionClosed is returned when analyzing on a disposed session.
	ErrSessionClosed = errors.New("session closed")
	// ErrNotFound is returned by the registry for unknown session ids.
	ErrNotFound = errors.New("session not found")
)

// NotReadyMessage is returned by text operations invoked before any resume
// has been analyzed.
const NotReadyMessage = "Please analyze a resume first."
