// Package botguard hooks optional attestation into InnerTube requests.
// Caption listing occasionally answers 403 without a valid token; a Solver
// can produce one and the request is retried once with it applied.
package botguard

import (
	"context"
	"time"
)

// Mode defines how attestation is used.
type Mode int

const (
	// Off disables attestation entirely.
	Off Mode = iota
	// Auto performs attestation on demand, after a 403 response.
	Auto
	// Force runs attestation before every InnerTube call.
	Force
)

// Input carries the parameters that influence an attestation result.
type Input struct {
	UserAgent     string
	PageURL       string
	ClientName    string
	ClientVersion string
	VisitorID     string
}

// Output is an attestation result applied to InnerTube request headers.
type Output struct {
	Token     string
	ExpiresAt time.Time
}

// Solver produces attestation tokens.
type Solver interface {
	Attest(ctx context.Context, input Input) (Output, error)
}

// Cache optionally stores outputs keyed by input characteristics.
type Cache interface {
	Get(key string) (Output, bool)
	Set(key string, value Output)
}

// KeyFromInput derives a cache key from the Input fields that influence
// the attestation result.
func KeyFromInput(in Input) string {
	return in.UserAgent + "|" + in.ClientName + "|" + in.ClientVersion + "|" + in.VisitorID
}
