// Package errs defines the classified error kinds shared by the feed
// decoders, the bus client, and the aggregation engine. The transport layer
// maps these onto protocol-level statuses.
package errs

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a valid-but-empty-result condition: no static geometry
// for a route, no feed mapping for a line. It is not an upstream failure.
var ErrNotFound = errors.New("not found")

// UpstreamError wraps a failed upstream call. StatusCode is zero for
// transport-level failures (timeout, connection refused, malformed envelope).
type UpstreamError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Auth reports whether the upstream rejected our credentials or quota.
// This indicates a configuration problem rather than transient unavailability.
func (e *UpstreamError) Auth() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsNotFound reports whether err is the not-found condition.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAuth reports whether err is an upstream auth/quota rejection.
func IsAuth(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Auth()
}
