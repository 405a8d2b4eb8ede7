package euskalmet

import "errors"

var (
	// ErrAuthFailed means the API rejected our credentials (HTTP 401/403)
	// or the private key cannot sign a token. Polling must stop until the
	// credentials are reconfigured.
	ErrAuthFailed = errors.New("euskalmet: authentication failed")

	// ErrTemporary covers network-level failures and upstream hiccups on a
	// required call. The cycle is lost; the next scheduled tick retries.
	ErrTemporary = errors.New("euskalmet: temporary update failure")

	// ErrTransport is a network-level failure on a single request
	// (connection refused, timeout, DNS).
	ErrTransport = errors.New("euskalmet: transport error")

	// ErrUpstream is a non-2xx response outside the auth range.
	ErrUpstream = errors.New("euskalmet: unexpected upstream status")
)
