// Package session decides whether the client is logged in.
//
// The Reconciler drives a three-state machine (Unknown, Authenticated,
// Anonymous) from server responses and keeps three pieces of state in step:
// the published State, the bearer token (package token) and the session hint
// (package hint). Every network failure is translated into a transition;
// nothing escapes except user-facing *ActionError values from Login, Signup
// and GoogleSignup.
//
// Mount schedules the authoritative current-user check behind a short
// debounce and returns a cancellable Task. A task that was cancelled, or that
// a later Login/Signup/Logout superseded, publishes nothing.
package session
