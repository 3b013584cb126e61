//go:build !botguard

package botguard

import "context"

// GojaSolver is a stub when the 'botguard' build tag is not enabled.
type GojaSolver struct{}

// NewGojaSolverWithScript returns nil to indicate attestation is unavailable
// in this build.
func NewGojaSolverWithScript(scriptPath string) *GojaSolver { return nil }

func (s *GojaSolver) Attest(ctx context.Context, input Input) (Output, error) {
	return Output{}, nil
}
