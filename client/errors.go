package client

import "errors"

// Kind classifies a client error
type Kind string

const (
	// KindNotLoggedIn means the call needs a session and none was given.
	// No request is made.
	KindNotLoggedIn Kind = "not_logged_in"
	// KindNetwork is a transport failure: no HTTP response was received.
	KindNetwork Kind = "network"
	// KindServer is a non-2xx response or an unreadable body.
	KindServer Kind = "server"
	// KindValidation is a client-side validation failure. No request is made.
	KindValidation Kind = "validation"
)

// Error is returned by every client operation
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int               // set for KindServer when a response was received
	Fields     map[string]string // set for KindValidation
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind != KindNetwork {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a client error, or "" for any other error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

func errNotLoggedIn() *Error {
	return &Error{Kind: KindNotLoggedIn, Message: "Not logged in"}
}
