// Package api is the HTTP client for the e-learning platform's REST API.
//
// # Overview
//
//  1. Client and LearningClient describe the endpoints the session client and
//     the CLI consume. Paths are fixed by the server and must not change.
//  2. HTTPClient implements both over net/http with a cookie jar, so session
//     cookies are sent back like a browser with credentials included.
//  3. Headers is the shared set of default request headers. The token store is
//     its only writer for the Authorization field.
//
// # Error Handling
//
// Non-2xx responses become *StatusError; use StatusOf to read the code.
// StatusError unwraps to ErrUnauthorized (401, 403) or ErrUnavailable (502,
// 503, 504). Transport failures and timeouts wrap ErrUnavailable and carry no
// status.
//
// Response bodies are decoded with identity.Decode. A body that is not JSON is
// returned as a plain string so callers can still inspect it.
package api
