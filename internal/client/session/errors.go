package session

import "errors"

var (
	// ErrSessionNotCreated means the auth call succeeded but no identity
	// could be confirmed afterwards.
	ErrSessionNotCreated = errors.New("session not created")

	// ErrSuperseded means a later login or logout took over before this
	// action could commit.
	ErrSuperseded = errors.New("superseded by a newer session change")

	errNoIdentity = errors.New("no identity in response")
)

// ActionError is a failed login/signup with a message fit for the end user.
type ActionError struct {
	Action  string
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return e.Message
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
