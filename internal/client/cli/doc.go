// Package cli provides the interactive command-line client for the
// e-learning platform.
//
// Start-up mirrors the web client: the stored token is re-armed, the session
// hint picks an optimistic prompt, and a debounced current-user check settles
// the real status. A background watcher flips between online and offline
// based on the health endpoint.
//
// Commands:
//   - login / signup / google / logout
//   - whoami, status, reset
//   - quiz <topic>, progress <courseId> [seconds], certificate <courseId>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
