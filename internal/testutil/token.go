package testutil

// FixedTokenGenerator generates the same call token every time.
//
// This enables deterministic test execution and golden snapshot
// comparison: the same migration with the same FixedTokenGenerator
// produces byte-identical result snapshots.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for
// concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a fixed call-token generator.
// If token is empty, Generate() returns "test-call-default".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-call-default"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed call token.
//
// Implements migrate.TokenGenerator.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
