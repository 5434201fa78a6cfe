package session

import "errors"

var (
	// ErrInvalidInputFormat - non-PDF upload; the session keeps its current
	// state and only records the message.
	ErrInvalidInputFormat = errors.New("only PDF documents are supported")
	// ErrExtractionFailure is terminal for the session until a re-upload.
	ErrExtractionFailure = errors.New("failed to extract text from document")
	ErrTransformFailure  = errors.New("transform action failed")
	ErrNotReady          = errors.New("no document is ready")
	ErrNoDocument        = errors.New("document text is empty")
	ErrTransformBusy     = errors.New("a transform action is already in flight")
	ErrChatBusy          = errors.New("a chat turn is already in flight")
	ErrBlankMessage      = errors.New("chat message is blank")
	ErrEmptyDraft        = errors.New("draft is empty")
	// ErrSessionReplaced marks a late result discarded because a newer load
	// or close bumped the session generation first.
	ErrSessionReplaced = errors.New("session was replaced while the call was in flight")
)
